package parser

import (
	"strconv"
	"strings"
)

// AstPrinter renders an expression in prefix form, e.g. (* (+ 3 4) (- 2 1)).
type AstPrinter struct{}

func NewAstPrinter() *AstPrinter {
	return &AstPrinter{}
}

// VisitBinary implements ExprVisitor.
func (p *AstPrinter) VisitBinary(expr *ExprBinary) (any, error) {
	return p.parenthesize(expr.Operator.Lexeme, expr.Left, expr.Right)
}

// VisitLiteral implements ExprVisitor.
func (p *AstPrinter) VisitLiteral(expr *ExprLiteral) (any, error) {
	return literalText(expr), nil
}

func (p *AstPrinter) parenthesize(name string, exprs ...Expr) (string, error) {
	out := new(strings.Builder)
	_, _ = out.WriteString("(")
	_, _ = out.WriteString(name)
	for _, expr := range exprs {
		v, err := expr.Accept(p)
		if err != nil {
			return "", err
		}
		_, _ = out.WriteString(" ")
		_, _ = out.WriteString(v.(string))
	}
	_, _ = out.WriteString(")")
	return out.String(), nil
}

func (p *AstPrinter) Print(expr Expr) string {
	v, err := expr.Accept(p)
	if err != nil {
		return "<error: " + err.Error() + ">"
	}
	return v.(string)
}

// literalText prefers the source lexeme so 0010 prints as written.
func literalText(expr *ExprLiteral) string {
	if expr.Token != nil && expr.Token.Lexeme != "" {
		return expr.Token.Lexeme
	}
	return strconv.FormatFloat(expr.Value, 'f', -1, 64)
}

var _ ExprVisitor = (*AstPrinter)(nil)
