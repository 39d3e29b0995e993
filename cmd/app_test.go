package cmd

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/leonardinius/goexpr/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolateEnv(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	t.Setenv("ENV_PATH", filepath.Join(dir, "missing.env"))
	for _, key := range []string{"GOEXPR_CONFIG", "GOEXPR_MODE", "GOEXPR_LOG_LEVEL", "GOEXPR_STRICT_DIVISION", "GOEXPR_PRECISION", "PORT", "CORS_ORIGINS", "GOEXPR_MAX_SOURCE_BYTES"} {
		t.Setenv(key, "")
	}
	return dir
}

func newTestApp() (*ExprApp, *bytes.Buffer, *bytes.Buffer) {
	stdout, stderr := new(bytes.Buffer), new(bytes.Buffer)
	app := NewExprApp(
		WithStdin(io.NopCloser(new(bytes.Buffer))),
		WithStdout(stdout),
		WithStderr(stderr),
	)
	return app, stdout, stderr
}

func TestMainExpression(t *testing.T) {
	testcases := []struct {
		name   string
		args   []string
		stdout string
		code   int
		stderr string
	}{
		{name: `eval`, args: []string{"-e", "3 + 4 * (2 - 1);"}, stdout: "7\n"},
		{name: `eval flat fold`, args: []string{"-e", "2 + 3 * 4"}, stdout: "20\n"},
		{name: `eval precision`, args: []string{"-precision", "2", "-e", "10 / 4"}, stdout: "2.50\n"},
		{name: `eval division by zero`, args: []string{"-e", "1 / 0"}, stdout: "+Inf\n"},
		{
			name:   `asm`,
			args:   []string{"-mode", "asm", "-e", "1 + 2"},
			stdout: "mov eax, 1\npush eax\nmov eax, 2\npop ebx\nadd eax, ebx\nret\n",
		},
		{name: `ast`, args: []string{"-mode", "ast", "-e", "3 + 4 * (2 - 1)"}, stdout: "(* (+ 3 4) (- 2 1))\n"},
		{name: `rpn`, args: []string{"-mode", "rpn", "-e", "3 + 4 * (2 - 1)"}, stdout: "3 4 + 2 1 - *\n"},
		{
			name:   `lex error`,
			args:   []string{"-e", "1 + @"},
			code:   ExitDataErr,
			stderr: "ERROR (lex) [line 1] lex error at offset 4: unexpected character. '@'",
		},
		{
			name:   `parse error`,
			args:   []string{"-mode", "asm", "-e", "(1 + 2"},
			code:   ExitDataErr,
			stderr: "ERROR (parse) [line 1] parse error at end (offset 6): expected ')' after expression.",
		},
		{
			name:   `strict division`,
			args:   []string{"-strict-div", "-e", "1 / 0"},
			code:   ExitSoftware,
			stderr: "ERROR (eval) [line 1] eval error at '/' (offset 2): division by zero.",
		},
		{name: `precision too large`, args: []string{"-precision", "200000000", "-e", "1"}, code: ExitUsage, stderr: "precision must be between -1 and 17"},
		{name: `invalid mode`, args: []string{"-mode", "lisp", "-e", "1"}, code: ExitUsage, stderr: `invalid mode "lisp"`},
		{name: `unknown flag`, args: []string{"-colour"}, code: ExitUsage, stderr: "flag provided but not defined"},
		{name: `expression and script`, args: []string{"-e", "1", "script.expr"}, code: ExitUsage, stderr: "Usage: goexpr"},
		{name: `too many scripts`, args: []string{"a.expr", "b.expr"}, code: ExitUsage, stderr: "Usage: goexpr"},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			isolateEnv(t)
			app, stdout, stderr := newTestApp()

			code := app.Main(tc.args)
			assert.Equal(t, tc.code, code, stderr.String())
			assert.Equal(t, tc.stdout, stdout.String())
			if tc.stderr != "" {
				assert.Contains(t, stderr.String(), tc.stderr)
			}
		})
	}
}

func TestMainDump(t *testing.T) {
	isolateEnv(t)
	app, stdout, _ := newTestApp()

	require.Equal(t, ExitOK, app.Main([]string{"-mode", "dump", "-e", "1 + 2"}))
	assert.Contains(t, stdout.String(), "ExprBinary")
	assert.Contains(t, stdout.String(), `"+"`)
}

func TestMainScriptFile(t *testing.T) {
	dir := isolateEnv(t)
	script := filepath.Join(dir, "sample.expr")
	require.NoError(t, os.WriteFile(script, []byte("(2 + 3)\n* 4;\n"), 0o600))

	app, stdout, _ := newTestApp()
	assert.Equal(t, ExitOK, app.Main([]string{script}))
	assert.Equal(t, "20\n", stdout.String())

	app, _, stderr := newTestApp()
	assert.Equal(t, ExitIOErr, app.Main([]string{filepath.Join(dir, "missing.expr")}))
	assert.Contains(t, stderr.String(), "ERROR open")
}

func TestMainConfigFile(t *testing.T) {
	dir := isolateEnv(t)
	path := filepath.Join(dir, "goexpr.yaml")
	require.NoError(t, os.WriteFile(path, []byte("mode: rpn\n"), 0o600))

	app, stdout, _ := newTestApp()
	assert.Equal(t, ExitOK, app.Main([]string{"-config", path, "-e", "1 - 2"}))
	assert.Equal(t, "1 2 -\n", stdout.String())

	app, stdout, _ = newTestApp()
	assert.Equal(t, ExitOK, app.Main([]string{"-config", path, "-mode", "eval", "-e", "1 - 2"}), "flags win over the file")
	assert.Equal(t, "-1\n", stdout.String())
}

func TestMainWarnsAboutTrailingInput(t *testing.T) {
	isolateEnv(t)
	app, stdout, stderr := newTestApp()

	assert.Equal(t, ExitOK, app.Main([]string{"-e", "1 + 1; 5 5"}))
	assert.Equal(t, "2\n", stdout.String())
	assert.Contains(t, stderr.String(), "Ignoring input after the expression")
	assert.Contains(t, stderr.String(), "tokens=2")
}

func TestSwitchMode(t *testing.T) {
	isolateEnv(t)
	app, stdout, stderr := newTestApp()
	require.NoError(t, app.configure(&cliFlags{precision: -2}))

	app.switchMode("")
	assert.Equal(t, "eval\n", stdout.String())

	app.switchMode(config.ModeRPN)
	assert.Equal(t, config.ModeRPN, app.cfg.Mode)

	app.switchMode("lisp")
	assert.Equal(t, config.ModeRPN, app.cfg.Mode, "invalid mode keeps the previous one")
	assert.Contains(t, stderr.String(), `invalid mode "lisp"`)

	stdout.Reset()
	require.NoError(t, app.run("1 + 2"))
	assert.Equal(t, "1 2 +\n", stdout.String())
}
