package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/chzyer/readline"

	"github.com/leonardinius/goexpr/internal/codegen"
	"github.com/leonardinius/goexpr/internal/compiler"
	"github.com/leonardinius/goexpr/internal/config"
	"github.com/leonardinius/goexpr/internal/exprerrors"
	"github.com/leonardinius/goexpr/internal/interpreter"
	"github.com/leonardinius/goexpr/internal/parser"
)

// Exit codes follow sysexits.h.
const (
	ExitOK       = 0
	ExitUsage    = 64
	ExitDataErr  = 65
	ExitSoftware = 70
	ExitIOErr    = 74
)

var errUsage = errors.New("Usage: goexpr [flags] [script]")

type ExprApp struct {
	err      error
	cfg      *config.Config
	logger   *slog.Logger
	reporter exprerrors.ErrReporter
	stdin    io.ReadCloser
	stdout   io.Writer
	stderr   io.Writer
}

type AppOption func(*ExprApp)

func WithStdin(stdin io.ReadCloser) AppOption {
	return func(app *ExprApp) {
		app.stdin = stdin
	}
}

func WithStdout(stdout io.Writer) AppOption {
	return func(app *ExprApp) {
		app.stdout = stdout
	}
}

func WithStderr(stderr io.Writer) AppOption {
	return func(app *ExprApp) {
		app.stderr = stderr
	}
}

func NewExprApp(options ...AppOption) *ExprApp {
	app := &ExprApp{stdin: os.Stdin, stdout: os.Stdout, stderr: os.Stderr}
	for _, opt := range options {
		opt(app)
	}
	app.reporter = exprerrors.NewErrReporter(app.stderr)
	return app
}

type cliFlags struct {
	configPath string
	mode       string
	logLevel   string
	strictDiv  bool
	precision  int
	expr       string
}

func (app *ExprApp) parseFlags(args []string) (*cliFlags, []string, error) {
	f := &cliFlags{}
	fs := flag.NewFlagSet("goexpr", flag.ContinueOnError)
	fs.SetOutput(app.stderr)
	fs.StringVar(&f.configPath, "config", "", "Path to YAML config file")
	fs.StringVar(&f.mode, "mode", "", "Output mode: "+strings.Join(config.Modes, ", "))
	fs.StringVar(&f.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	fs.BoolVar(&f.strictDiv, "strict-div", false, "Fail on division by zero instead of yielding Inf/NaN")
	fs.IntVar(&f.precision, "precision", -2, "Decimals printed in eval mode, -1 for shortest")
	fs.StringVar(&f.expr, "e", "", "Expression to run instead of a script or the prompt")

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

func (app *ExprApp) configure(f *cliFlags) error {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return err
	}

	if f.mode != "" {
		cfg.Mode = f.mode
	}
	if f.logLevel != "" {
		cfg.LogLevel = f.logLevel
	}
	if f.strictDiv {
		cfg.StrictDivision = true
	}
	if f.precision != -2 {
		cfg.Precision = f.precision
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := config.NewLogger(cfg.LogLevel, app.stderr)
	if err != nil {
		return err
	}

	app.cfg = cfg
	app.logger = logger
	return nil
}

func (app *ExprApp) reportError(err error) {
	app.reporter.ReportError(err)
	app.err = err
}

func (app *ExprApp) Main(args []string) int {
	f, rest, err := app.parseFlags(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitOK
		}
		return ExitUsage
	}

	if err := app.configure(f); err != nil {
		app.reportError(err)
		return ExitUsage
	}

	switch {
	case f.expr != "" && len(rest) == 0:
		err = app.run(f.expr)
	case f.expr == "" && len(rest) == 1:
		err = app.runFile(rest[0])
	case f.expr == "" && len(rest) == 0:
		err = app.runPrompt()
	default:
		err = errUsage
	}

	if err != nil {
		app.reportError(err)
	}

	return app.exitCode()
}

func (app *ExprApp) exitCode() int {
	if app.err == nil {
		return ExitOK
	}

	switch exprerrors.Kind(app.err) {
	case exprerrors.KindLex, exprerrors.KindParse:
		return ExitDataErr
	case exprerrors.KindCodegen, exprerrors.KindEval:
		return ExitSoftware
	}

	if errors.Is(app.err, errUsage) {
		return ExitUsage
	}
	return ExitIOErr
}

func (app *ExprApp) resetError() {
	app.err = nil
}

func (app *ExprApp) runPrompt() error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt: app.cfg.Prompt,
		Stdin:  app.stdin,
		Stdout: app.stdout,
		Stderr: app.stderr,
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if err != nil {
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if mode, ok := strings.CutPrefix(line, ":mode"); ok {
			app.switchMode(strings.TrimSpace(mode))
			continue
		}

		if err = app.run(line); err != nil {
			app.reportError(err)
			app.resetError()
		}
	}
}

func (app *ExprApp) switchMode(mode string) {
	if mode == "" {
		fmt.Fprintln(app.stdout, app.cfg.Mode)
		return
	}

	previous := app.cfg.Mode
	app.cfg.Mode = mode
	if err := app.cfg.Validate(); err != nil {
		app.cfg.Mode = previous
		app.reporter.ReportError(err)
		return
	}
	app.logger.Debug("Switched mode", "from", previous, "to", mode)
}

func (app *ExprApp) runFile(scriptPath string) error {
	bytes, err := os.ReadFile(scriptPath)
	if err != nil {
		return err
	}

	return app.run(string(bytes))
}

func (app *ExprApp) run(input string) error {
	app.logger.Debug("Running", "mode", app.cfg.Mode, "bytes", len(input))

	unit, err := compiler.ParseUnit(input)
	if err != nil {
		return err
	}
	if len(unit.Remaining) > 0 {
		app.logger.Warn("Ignoring input after the expression",
			"tokens", len(unit.Remaining), "offset", unit.Remaining[0].Offset)
	}

	return app.emit(unit.Expr)
}

func (app *ExprApp) emit(expr parser.Expr) error {
	switch app.cfg.Mode {
	case config.ModeAsm:
		e := codegen.NewEmitter()
		lines, err := e.Emit(expr)
		if err != nil {
			return err
		}
		return e.Format(app.stdout, lines)
	case config.ModeAST:
		_, err := fmt.Fprintln(app.stdout, parser.NewAstPrinter().Print(expr))
		return err
	case config.ModeRPN:
		_, err := fmt.Fprintln(app.stdout, parser.NewRPNPrinter().Print(expr))
		return err
	case config.ModeDump:
		_, err := fmt.Fprint(app.stdout, parser.Dump(expr))
		return err
	}

	return app.interpret(expr)
}

func (app *ExprApp) interpret(expr parser.Expr) error {
	opts := []interpreter.InterpreterOption{interpreter.WithPrecision(app.cfg.Precision)}
	if app.cfg.StrictDivision {
		opts = append(opts, interpreter.WithStrictDivision())
	}

	out, err := interpreter.NewInterpreter(opts...).Interpret(expr)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(app.stdout, out)
	return err
}
