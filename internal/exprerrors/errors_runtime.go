package exprerrors

import (
	"errors"
	"fmt"
	"strings"

	"github.com/leonardinius/goexpr/internal/token"
)

var (
	ErrCodegenUnknownOperator = errors.New("unknown operator.")
	ErrEvalUnknownOperator    = errors.New("unknown operator.")
	ErrEvalDivisionByZero     = errors.New("division by zero.")
)

// ErrUnknownOperatorDetails names the operators a back end does support.
func ErrUnknownOperatorDetails(supported []string) string {
	return fmt.Sprintf("supported: %s", strings.Join(supported, " "))
}

func NewCodegenError(tok *token.Token, cause error, details string) error {
	return &CodegenError{tok: tok, cause: cause, details: details}
}

type CodegenError struct {
	tok     *token.Token
	cause   error
	details string
}

func (c *CodegenError) Token() *token.Token {
	return c.tok
}

// Error implements error.
func (c *CodegenError) Error() string {
	return fmt.Sprintf("[line %d] codegen error %s: %v%s", c.tok.Line, where(c.tok), c.cause, withDetails(c.details))
}

func (c *CodegenError) Unwrap() error {
	return c.cause
}

func NewEvalError(tok *token.Token, cause error, details string) error {
	return &EvalError{tok: tok, cause: cause, details: details}
}

type EvalError struct {
	tok     *token.Token
	cause   error
	details string
}

func (e *EvalError) Token() *token.Token {
	return e.tok
}

// Error implements error.
func (e *EvalError) Error() string {
	return fmt.Sprintf("[line %d] eval error %s: %v%s", e.tok.Line, where(e.tok), e.cause, withDetails(e.details))
}

func (e *EvalError) Unwrap() error {
	return e.cause
}

func withDetails(details string) string {
	if details == "" {
		return ""
	}
	return " " + details
}

var _ error = (*CodegenError)(nil)
var _ unwrapInterface = (*CodegenError)(nil)
var _ error = (*EvalError)(nil)
var _ unwrapInterface = (*EvalError)(nil)
