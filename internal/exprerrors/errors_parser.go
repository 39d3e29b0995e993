package exprerrors

import (
	"errors"
	"fmt"

	"github.com/leonardinius/goexpr/internal/token"
)

var (
	ErrParseUnexpectedToken         = errors.New("expected number or '('.")
	ErrParseExpectedRightParenToken = errors.New("expected ')' after expression.")
	ErrParseUnexpectedEnd           = errors.New("unexpected end of input.")
	ErrParseInvalidNumber           = errors.New("number token carries no numeric value.")
)

func NewParseError(tok *token.Token, cause error) error {
	return &ParseError{tok: tok, cause: cause}
}

type ParseError struct {
	tok   *token.Token
	cause error
}

// Token is the token the parser stopped at.
func (p *ParseError) Token() *token.Token {
	return p.tok
}

// Error implements error.
func (p *ParseError) Error() string {
	return fmt.Sprintf("[line %d] parse error %s: %v", p.tok.Line, where(p.tok), p.cause)
}

func (p *ParseError) Unwrap() error {
	return p.cause
}

func where(tok *token.Token) string {
	if tok.Type == token.EOF {
		return fmt.Sprintf("at end (offset %d)", tok.Offset)
	}
	return fmt.Sprintf("at '%s' (offset %d)", tok.Lexeme, tok.Offset)
}

var _ error = (*ParseError)(nil)
var _ unwrapInterface = (*ParseError)(nil)
