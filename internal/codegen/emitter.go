package codegen

import (
	"fmt"
	"io"
	"strconv"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/leonardinius/goexpr/internal/exprerrors"
	"github.com/leonardinius/goexpr/internal/parser"
	"github.com/leonardinius/goexpr/internal/token"
)

const (
	// PrimaryRegister holds every intermediate result.
	PrimaryRegister = "eax"
	// SecondaryRegister receives the value popped back from the stack.
	SecondaryRegister = "ebx"
)

// opcodes maps an operator symbol to the instructions combining both registers.
var opcodes = map[string][]string{
	token.OpPlus:  {"add eax, ebx"},
	token.OpMinus: {"sub eax, ebx"},
	token.OpStar:  {"imul eax, ebx"},
	token.OpSlash: {"cdq", "idiv ebx"},
}

type Emitter interface {
	// Emit returns the instruction listing for expr, terminated by a single ret.
	//
	// Not thread safe.
	// Resets internal state on Emit.
	Emit(expr parser.Expr) ([]string, error)

	// Format writes one instruction per line.
	Format(w io.Writer, lines []string) error
}

type emitter struct {
	opts  *emitterOpts
	lines []string
}

func NewEmitter(options ...Option) Emitter {
	return &emitter{opts: newEmitterOpts(options...)}
}

// Emit implements Emitter.
func (e *emitter) Emit(expr parser.Expr) ([]string, error) {
	e.reset()

	if _, err := expr.Accept(e); err != nil {
		return nil, err
	}
	e.line("ret")

	return e.lines, nil
}

// Format implements Emitter.
func (e *emitter) Format(w io.Writer, lines []string) error {
	for _, l := range lines {
		if _, err := fmt.Fprintln(w, l); err != nil {
			return err
		}
	}
	return nil
}

// VisitLiteral implements parser.ExprVisitor.
func (e *emitter) VisitLiteral(expr *parser.ExprLiteral) (any, error) {
	e.line(fmt.Sprintf("mov %s, %s", PrimaryRegister, e.immediate(expr)))
	return nil, nil
}

// VisitBinary implements parser.ExprVisitor.
// Both operands end up in eax; the left one is parked on the stack meanwhile.
func (e *emitter) VisitBinary(expr *parser.ExprBinary) (any, error) {
	if _, err := expr.Left.Accept(e); err != nil {
		return nil, err
	}
	e.line("push " + PrimaryRegister)
	if _, err := expr.Right.Accept(e); err != nil {
		return nil, err
	}
	e.line("pop " + SecondaryRegister)

	code, ok := opcodes[expr.Operator.Lexeme]
	if !ok {
		return nil, exprerrors.NewCodegenError(expr.Operator, exprerrors.ErrCodegenUnknownOperator, exprerrors.ErrUnknownOperatorDetails(SupportedOperators()))
	}
	for _, c := range code {
		e.line(c)
	}

	return nil, nil
}

// SupportedOperators lists the operator symbols the emitter can translate.
func SupportedOperators() []string {
	ops := maps.Keys(opcodes)
	slices.Sort(ops)
	return ops
}

// immediate keeps the literal as written in the source.
func (e *emitter) immediate(expr *parser.ExprLiteral) string {
	if expr.Token != nil && expr.Token.Lexeme != "" {
		return expr.Token.Lexeme
	}
	return strconv.FormatFloat(expr.Value, 'f', -1, 64)
}

func (e *emitter) line(s string) {
	e.lines = append(e.lines, e.opts.indent+s)
}

func (e *emitter) reset() {
	e.lines = nil
}

var _ parser.ExprVisitor = (*emitter)(nil)
var _ Emitter = (*emitter)(nil)
