package server

import (
	"math"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/leonardinius/goexpr/internal/compiler"
	"github.com/leonardinius/goexpr/internal/config"
	"github.com/leonardinius/goexpr/internal/exprerrors"
	"github.com/leonardinius/goexpr/internal/interpreter"
	"github.com/leonardinius/goexpr/internal/parser"
)

type sourceRequest struct {
	Source         string `json:"source"`
	StrictDivision *bool  `json:"strict_division,omitempty"`
	Precision      *int   `json:"precision,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

type compileResponse struct {
	Instructions []string `json:"instructions"`
	Text         string   `json:"text"`
}

type evaluateResponse struct {
	Result string   `json:"result"`
	Value  *float64 `json:"value,omitempty"`
}

type parseResponse struct {
	AST       string   `json:"ast"`
	RPN       string   `json:"rpn"`
	Remaining []string `json:"remaining,omitempty"`
}

type ExprRouter struct {
	e   *echo.Echo
	cfg *config.Config
}

func NewExprRouter(e *echo.Echo, cfg *config.Config) *ExprRouter {
	return &ExprRouter{
		e:   e,
		cfg: cfg,
	}
}

func (r *ExprRouter) Bind() {
	r.e.GET("/health", r.healthHandler)
	r.e.POST("/compile", r.compileHandler)
	r.e.POST("/evaluate", r.evaluateHandler)
	r.e.POST("/parse", r.parseHandler)
}

func (r *ExprRouter) healthHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (r *ExprRouter) compileHandler(c echo.Context) error {
	req, err := r.bindSource(c)
	if err != nil {
		return err
	}

	lines, err := compiler.CompileToInstructions(req.Source)
	if err != nil {
		return pipelineError(c, err)
	}

	text := strings.Join(lines, "\n") + "\n"

	return c.JSON(http.StatusOK, compileResponse{Instructions: lines, Text: text})
}

func (r *ExprRouter) evaluateHandler(c echo.Context) error {
	req, err := r.bindSource(c)
	if err != nil {
		return err
	}

	strict := r.cfg.StrictDivision
	if req.StrictDivision != nil {
		strict = *req.StrictDivision
	}
	precision := r.cfg.Precision
	if req.Precision != nil {
		if err := config.ValidatePrecision(*req.Precision); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, errorResponse{Error: err.Error()})
		}
		precision = *req.Precision
	}

	var opts []interpreter.InterpreterOption
	if strict {
		opts = append(opts, interpreter.WithStrictDivision())
	}

	value, err := compiler.Evaluate(req.Source, opts...)
	if err != nil {
		return pipelineError(c, err)
	}

	resp := evaluateResponse{Result: interpreter.Stringify(value, precision)}
	// JSON has no encoding for ±Inf and NaN.
	if !math.IsInf(value, 0) && !math.IsNaN(value) {
		resp.Value = &value
	}

	return c.JSON(http.StatusOK, resp)
}

func (r *ExprRouter) parseHandler(c echo.Context) error {
	req, err := r.bindSource(c)
	if err != nil {
		return err
	}

	unit, err := compiler.ParseUnit(req.Source)
	if err != nil {
		return pipelineError(c, err)
	}

	resp := parseResponse{
		AST: parser.NewAstPrinter().Print(unit.Expr),
		RPN: parser.NewRPNPrinter().Print(unit.Expr),
	}
	for _, tok := range unit.Remaining {
		resp.Remaining = append(resp.Remaining, tok.Lexeme)
	}

	return c.JSON(http.StatusOK, resp)
}

// bindSource decodes and validates the request body.
// Failures are *echo.HTTPError values carrying an errorResponse.
func (r *ExprRouter) bindSource(c echo.Context) (*sourceRequest, error) {
	var req sourceRequest
	if err := c.Bind(&req); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}

	if req.Source == "" {
		return nil, echo.NewHTTPError(http.StatusBadRequest, errorResponse{Error: "source is required"})
	}

	if len(req.Source) > r.cfg.Server.MaxSourceBytes {
		return nil, echo.NewHTTPError(http.StatusRequestEntityTooLarge, errorResponse{Error: "source is too large"})
	}

	return &req, nil
}

func pipelineError(c echo.Context, err error) error {
	return c.JSON(http.StatusUnprocessableEntity, errorResponse{
		Error: err.Error(),
		Kind:  string(exprerrors.Kind(err)),
	})
}
