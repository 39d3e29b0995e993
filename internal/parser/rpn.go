package parser

import (
	"strings"
)

// RPNPrinter renders an expression in postfix (reverse Polish) form, e.g. 3 4 + 2 1 - *.
type RPNPrinter struct{}

func NewRPNPrinter() *RPNPrinter {
	return &RPNPrinter{}
}

// VisitBinary implements ExprVisitor.
func (p *RPNPrinter) VisitBinary(expr *ExprBinary) (any, error) {
	return p.reverse(expr.Operator.Lexeme, expr.Left, expr.Right)
}

// VisitLiteral implements ExprVisitor.
func (p *RPNPrinter) VisitLiteral(expr *ExprLiteral) (any, error) {
	return literalText(expr), nil
}

func (p *RPNPrinter) reverse(name string, exprs ...Expr) (string, error) {
	out := new(strings.Builder)
	for _, expr := range exprs {
		v, err := expr.Accept(p)
		if err != nil {
			return "", err
		}
		_, _ = out.WriteString(v.(string))
		_, _ = out.WriteString(" ")
	}
	_, _ = out.WriteString(name)
	return out.String(), nil
}

func (p *RPNPrinter) Print(expr Expr) string {
	v, err := expr.Accept(p)
	if err != nil {
		return "<error: " + err.Error() + ">"
	}
	return v.(string)
}

var _ ExprVisitor = (*RPNPrinter)(nil)
