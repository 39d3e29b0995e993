// Package compiler wires the scanner and parser to either back end.
//
// Every call builds its own scanner, parser, emitter and interpreter, so the
// functions here are safe for concurrent use.
package compiler

import (
	"github.com/leonardinius/goexpr/internal/codegen"
	"github.com/leonardinius/goexpr/internal/interpreter"
	"github.com/leonardinius/goexpr/internal/parser"
	"github.com/leonardinius/goexpr/internal/scanner"
	"github.com/leonardinius/goexpr/internal/token"
)

// Unit is a parsed source: the tree plus whatever followed the expression.
type Unit struct {
	Expr      parser.Expr
	Remaining []token.Token
}

// Parse scans and parses source into a single expression tree.
func Parse(source string) (parser.Expr, error) {
	unit, err := ParseUnit(source)
	if err != nil {
		return nil, err
	}
	return unit.Expr, nil
}

// ParseUnit is Parse that also reports the tokens left after the expression.
func ParseUnit(source string) (*Unit, error) {
	tokens, err := scanner.NewScanner(source).Scan()
	if err != nil {
		return nil, err
	}

	p := parser.NewParser(tokens)
	expr, err := p.Parse()
	if err != nil {
		return nil, err
	}

	return &Unit{Expr: expr, Remaining: p.Remaining()}, nil
}

// CompileToInstructions translates source into register-machine instructions ending in ret.
func CompileToInstructions(source string, options ...codegen.Option) ([]string, error) {
	expr, err := Parse(source)
	if err != nil {
		return nil, err
	}

	return codegen.NewEmitter(options...).Emit(expr)
}

// Evaluate computes the value of source directly.
func Evaluate(source string, options ...interpreter.InterpreterOption) (float64, error) {
	expr, err := Parse(source)
	if err != nil {
		return 0, err
	}

	return interpreter.NewInterpreter(options...).Evaluate(expr)
}
