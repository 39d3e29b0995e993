package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"golang.org/x/exp/slices"

	"github.com/leonardinius/goexpr/internal/interpreter"
)

const (
	ModeEval = "eval"
	ModeAsm  = "asm"
	ModeAST  = "ast"
	ModeRPN  = "rpn"
	ModeDump = "dump"
)

// Modes lists every output mode the CLI understands.
var Modes = []string{ModeEval, ModeAsm, ModeAST, ModeRPN, ModeDump}

type Config struct {
	Mode           string       `yaml:"mode"`
	Prompt         string       `yaml:"prompt"`
	LogLevel       string       `yaml:"log_level"`
	StrictDivision bool         `yaml:"strict_division"`
	Precision      int          `yaml:"precision"`
	Server         ServerConfig `yaml:"server"`
}

type ServerConfig struct {
	Port           string   `yaml:"port"`
	CorsOrigins    []string `yaml:"cors_origins"`
	MaxSourceBytes int      `yaml:"max_source_bytes"`
}

func Default() *Config {
	return &Config{
		Mode:      ModeEval,
		Prompt:    "> ",
		LogLevel:  "info",
		Precision: -1,
		Server: ServerConfig{
			Port:           "8080",
			CorsOrigins:    []string{"*"},
			MaxSourceBytes: 4096,
		},
	}
}

// Load builds the configuration from defaults, the optional YAML file at path,
// the .env file and the process environment, in that order.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv("GOEXPR_CONFIG")
	}
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open config: %w", err)
		}
		defer f.Close()

		if err := NewYAMLConfigLoader(f).LoadInto(cfg); err != nil {
			return nil, fmt.Errorf("load config %s: %w", path, err)
		}
	}

	LoadDotEnv(".env")

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []error

	if !slices.Contains(Modes, c.Mode) {
		errs = append(errs, fmt.Errorf("invalid mode %q, expected one of %v", c.Mode, Modes))
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if err := validatePort(c.Server.Port); err != nil {
		errs = append(errs, fmt.Errorf("invalid port: %w", err))
	}
	if err := ValidatePrecision(c.Precision); err != nil {
		errs = append(errs, err)
	}
	if c.Server.MaxSourceBytes <= 0 {
		errs = append(errs, errors.New("max_source_bytes must be positive"))
	}

	return errors.Join(errs...)
}

// ValidatePrecision accepts -1 (shortest form) up to interpreter.MaxPrecision decimals.
func ValidatePrecision(precision int) error {
	if precision < -1 || precision > interpreter.MaxPrecision {
		return fmt.Errorf("precision must be between -1 and %d", interpreter.MaxPrecision)
	}
	return nil
}

func validatePort(port string) error {
	portNum, err := strconv.Atoi(port)

	if err != nil {
		return errors.New("port must be a number")
	}

	if portNum < 1 || portNum > 65535 {
		return errors.New("port must be between 1 and 65535")
	}

	return nil
}
