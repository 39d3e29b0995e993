package parser

import (
	"fmt"

	"github.com/leonardinius/goexpr/internal/exprerrors"
	"github.com/leonardinius/goexpr/internal/token"
)

var nilExpr Expr = nil

type Parser interface {
	// Parse parses a single expression, optionally followed by ';'.
	// Tokens after that are left unconsumed, see Remaining.
	Parse() (Expr, error)

	// Remaining returns the tokens Parse did not consume, EOF excluded.
	Remaining() []token.Token
}

type parser struct {
	tokens  []token.Token
	current int
	err     error
}

func NewParser(tokens []token.Token) Parser {
	if len(tokens) == 0 {
		panic("tokens cannot be empty")
	}
	if tokens[len(tokens)-1].Type != token.EOF {
		panic("tokens must end with EOF")
	}

	return &parser{
		tokens:  tokens,
		current: 0,
	}
}

// GoString implements fmt.GoStringer.
func (p *parser) GoString() string {
	return fmt.Sprintf("parser{tokens: %#v, current: %d, err: %#v}", p.tokens, p.current, p.err)
}

// String implements fmt.Stringer.
func (p *parser) String() string {
	return fmt.Sprintf("parser{tokens: %d, err: %v}", len(p.tokens), p.err)
}

// Parse implements Parser.
func (p *parser) Parse() (Expr, error) {
	expr := p.expression()
	if p.err != nil {
		return nilExpr, p.err
	}

	p.match(token.SEMICOLON)

	return expr, nil
}

// Remaining implements Parser.
func (p *parser) Remaining() []token.Token {
	return p.tokens[p.current : len(p.tokens)-1]
}

// expression folds every operator left to right on a single precedence level:
// 2 + 3 * 4 is (2 + 3) * 4.
func (p *parser) expression() Expr {
	expr := p.term()

	for p.match(token.OPERATOR) {
		operator := p.previous()
		right := p.term()
		if p.err != nil {
			return nilExpr
		}
		expr = &ExprBinary{Left: expr, Operator: operator, Right: right}
	}

	return expr
}

func (p *parser) term() Expr {
	if p.isDone() {
		return p.reportExprError(exprerrors.ErrParseUnexpectedEnd)
	}

	if p.match(token.NUMBER) {
		tok := p.previous()
		value, ok := tok.Literal.(float64)
		if !ok {
			return p.reportTokenExprError(tok, exprerrors.ErrParseInvalidNumber)
		}
		return &ExprLiteral{Value: value, Token: tok}
	}

	return p.grouping()
}

func (p *parser) grouping() Expr {
	if p.match(token.LEFT_PAREN) {
		expr := p.expression()
		if p.err != nil {
			return nilExpr
		}
		if !p.match(token.RIGHT_PAREN) {
			return p.reportExprError(exprerrors.ErrParseExpectedRightParenToken)
		}
		return expr
	}

	return p.reportExprError(exprerrors.ErrParseUnexpectedToken)
}

func (p *parser) match(tokType token.TokenType) bool {
	if p.check(tokType) {
		p.advance()
		return true
	}
	return false
}

func (p *parser) check(tokenType token.TokenType) bool {
	return !p.isDone() && p.peek().Type == tokenType
}

func (p *parser) peek() *token.Token {
	return &p.tokens[p.current]
}

func (p *parser) previous() *token.Token {
	return &p.tokens[p.current-1]
}

func (p *parser) advance() *token.Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

// isAtEnd ignores parse errors, use isDone when a failed parse must stop too.
func (p *parser) isAtEnd() bool {
	return p.peek().Type == token.EOF
}

func (p *parser) isDone() bool {
	return p.isAtEnd() || p.err != nil
}

func (p *parser) reportExprError(err error) Expr {
	return p.reportTokenExprError(p.peek(), err)
}

func (p *parser) reportTokenExprError(tok *token.Token, err error) Expr {
	if p.err != nil {
		return nilExpr
	}
	p.err = exprerrors.NewParseError(tok, err)
	return nilExpr
}

var _ Parser = (*parser)(nil)
var _ fmt.Stringer = (*parser)(nil)
var _ fmt.GoStringer = (*parser)(nil)
