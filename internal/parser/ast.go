package parser

import "github.com/leonardinius/goexpr/internal/token"

// ExprVisitor is implemented by every AST consumer.
//
// The AST has exactly two node kinds, so a visitor is an exhaustive match over them.
type ExprVisitor interface {
	VisitLiteral(expr *ExprLiteral) (any, error)
	VisitBinary(expr *ExprBinary) (any, error)
}

type Expr interface {
	Accept(v ExprVisitor) (any, error)
}

// ExprLiteral is a numeric leaf.
type ExprLiteral struct {
	Value float64
	Token *token.Token
}

var _ Expr = (*ExprLiteral)(nil)

func (e *ExprLiteral) Accept(v ExprVisitor) (any, error) {
	return v.VisitLiteral(e)
}

// ExprBinary applies Operator.Lexeme to Left and Right.
type ExprBinary struct {
	Left     Expr
	Operator *token.Token
	Right    Expr
}

var _ Expr = (*ExprBinary)(nil)

func (e *ExprBinary) Accept(v ExprVisitor) (any, error) {
	return v.VisitBinary(e)
}
