package interpreter

import (
	"math"
	"strconv"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/leonardinius/goexpr/internal/exprerrors"
	"github.com/leonardinius/goexpr/internal/parser"
	"github.com/leonardinius/goexpr/internal/token"
)

type binaryFn func(left, right float64) float64

var operators = map[string]binaryFn{
	token.OpPlus:  func(left, right float64) float64 { return left + right },
	token.OpMinus: func(left, right float64) float64 { return left - right },
	token.OpStar:  func(left, right float64) float64 { return left * right },
	token.OpSlash: func(left, right float64) float64 { return left / right },
}

type Interpreter interface {
	// Interpret evaluates the given expression.
	// Returns the stringified result of the expression and an error if any.
	//
	// Not thread safe.
	Interpret(expr parser.Expr) (string, error)

	// Evaluate evaluates the given expression.
	// Returns the result of the expression and an error if any.
	//
	// Not thread safe.
	Evaluate(expr parser.Expr) (float64, error)
}

type interpreter struct {
	opts *interpreterOpts
}

func NewInterpreter(options ...InterpreterOption) Interpreter {
	return &interpreter{opts: newInterpreterOpts(options...)}
}

// Interpret implements Interpreter.
func (i *interpreter) Interpret(expr parser.Expr) (string, error) {
	if value, err := i.Evaluate(expr); err != nil {
		return "", err
	} else {
		return Stringify(value, i.opts.precision), nil
	}
}

// Evaluate implements Interpreter.
func (i *interpreter) Evaluate(expr parser.Expr) (float64, error) {
	return i.evaluate(expr)
}

// VisitLiteral implements parser.ExprVisitor.
func (i *interpreter) VisitLiteral(expr *parser.ExprLiteral) (any, error) {
	return expr.Value, nil
}

// VisitBinary implements parser.ExprVisitor.
func (i *interpreter) VisitBinary(expr *parser.ExprBinary) (any, error) {
	left, err := i.evaluate(expr.Left)
	if err != nil {
		return nil, err
	}
	right, err := i.evaluate(expr.Right)
	if err != nil {
		return nil, err
	}

	fn, ok := operators[expr.Operator.Lexeme]
	if !ok {
		return nil, exprerrors.NewEvalError(expr.Operator, exprerrors.ErrEvalUnknownOperator, exprerrors.ErrUnknownOperatorDetails(SupportedOperators()))
	}

	if i.opts.strictDivision && expr.Operator.Lexeme == token.OpSlash && right == 0 {
		return nil, exprerrors.NewEvalError(expr.Operator, exprerrors.ErrEvalDivisionByZero, "")
	}

	return fn(left, right), nil
}

func (i *interpreter) evaluate(expr parser.Expr) (float64, error) {
	value, err := expr.Accept(i)
	if err != nil {
		return 0, err
	}

	return value.(float64), nil
}

// SupportedOperators lists the operator symbols the interpreter can apply.
func SupportedOperators() []string {
	ops := maps.Keys(operators)
	slices.Sort(ops)
	return ops
}

// Stringify renders v with the given number of decimals, -1 for the shortest exact form.
func Stringify(v float64, precision int) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "+Inf"
	case math.IsInf(v, -1):
		return "-Inf"
	}
	precision = min(precision, MaxPrecision)
	return strconv.FormatFloat(v, 'f', precision, 64)
}

var _ parser.ExprVisitor = (*interpreter)(nil)
var _ Interpreter = (*interpreter)(nil)
