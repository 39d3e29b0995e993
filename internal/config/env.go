package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads environment variables from a .env file.
// ENV_PATH overrides defaultPath. Variables already set in the process win.
// A missing file is not an error.
func LoadDotEnv(defaultPath string) {
	envPath := defaultPath
	if p := os.Getenv("ENV_PATH"); p != "" {
		envPath = p
	}

	if err := godotenv.Load(envPath); err != nil {
		slog.Debug("Skipping .env ...", "path", envPath, "error", err)
	}
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("GOEXPR_MODE"); v != "" {
		c.Mode = v
	}
	if v, ok := os.LookupEnv("GOEXPR_PROMPT"); ok {
		c.Prompt = v
	}
	if v := os.Getenv("GOEXPR_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("GOEXPR_STRICT_DIVISION"); v != "" {
		strict, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("GOEXPR_STRICT_DIVISION: %w", err)
		}
		c.StrictDivision = strict
	}
	if v := os.Getenv("GOEXPR_PRECISION"); v != "" {
		precision, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("GOEXPR_PRECISION: %w", err)
		}
		c.Precision = precision
	}
	if v := os.Getenv("PORT"); v != "" {
		c.Server.Port = v
	}
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		c.Server.CorsOrigins = splitOrigins(v)
	}
	if v := os.Getenv("GOEXPR_MAX_SOURCE_BYTES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("GOEXPR_MAX_SOURCE_BYTES: %w", err)
		}
		c.Server.MaxSourceBytes = n
	}

	return nil
}

func splitOrigins(v string) []string {
	var origins []string
	for _, origin := range strings.Split(v, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}
