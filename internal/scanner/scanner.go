package scanner

import (
	"errors"
	"strconv"
	"unicode"

	"github.com/leonardinius/goexpr/internal/exprerrors"
	"github.com/leonardinius/goexpr/internal/token"
)

// Scanner turns source text into tokens.
type Scanner interface {
	Scan() ([]token.Token, error)
}

// matcher returns the length in runes of the match at source[at:], 0 if none.
type matcher func(source []rune, at int) int

type rule struct {
	tokenType token.TokenType
	match     matcher
}

// rules are tried in order; the first match wins regardless of length.
var rules = []rule{
	{token.NUMBER, matchNumber},
	{token.OPERATOR, matchOperator},
	{token.WHITESPACE, matchWhitespace},
	{token.LEFT_PAREN, matchRune('(')},
	{token.RIGHT_PAREN, matchRune(')')},
	{token.SEMICOLON, matchRune(';')},
}

type scanner struct {
	source               []rune
	tokens               []token.Token
	start, current, line int
	err                  error
}

// NewScanner returns a new Scanner.
func NewScanner(input string) Scanner {
	return &scanner{source: []rune(input), start: 0, current: 0, line: 1}
}

// Scan implements Scanner.
func (s *scanner) Scan() ([]token.Token, error) {
	for !s.isDone() {
		// We are at the beginning of the next lexeme.
		s.start = s.current
		s.scanToken()
	}

	if s.hasErr() {
		return nil, s.err
	}

	s.tokens = append(s.tokens, token.NewToken(token.EOF, "", nil, s.line, s.current))

	return s.tokens, nil
}

func (s *scanner) isAtEnd() bool {
	return s.current >= len(s.source)
}

func (s *scanner) hasErr() bool {
	return s.err != nil
}

func (s *scanner) isDone() bool {
	return s.isAtEnd() || s.hasErr()
}

func (s *scanner) scanToken() {
	for _, r := range rules {
		n := r.match(s.source, s.current)
		if n == 0 {
			continue
		}

		s.current += n
		switch r.tokenType {
		case token.WHITESPACE:
			s.whitespace()
		case token.NUMBER:
			s.number()
		default:
			s.addToken(r.tokenType)
		}
		return
	}

	s.reportUnexpectedCharacter(s.source[s.current])
}

func (s *scanner) addToken(t token.TokenType) {
	s.addTokenLiteral(t, nil)
}

func (s *scanner) addTokenLiteral(t token.TokenType, literal any) {
	s.tokens = append(s.tokens, token.NewToken(t, string(s.source[s.start:s.current]), literal, s.line, s.start))
}

// whitespace is dropped, only the line counter survives it.
func (s *scanner) whitespace() {
	for _, c := range s.source[s.start:s.current] {
		if c == '\n' {
			s.line++
		}
	}
}

func (s *scanner) number() {
	svalue := string(s.source[s.start:s.current])
	value, err := strconv.ParseFloat(svalue, 64)
	// Out of range literals saturate to ±Inf.
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		s.err = err
		return
	}
	s.addTokenLiteral(token.NUMBER, value)
}

func (s *scanner) reportUnexpectedCharacter(c rune) {
	s.err = exprerrors.NewLexError(s.line, s.current, c, exprerrors.ErrScanUnexpectedCharacter)
}

func matchNumber(source []rune, at int) int {
	n := countDigits(source, at)
	if n == 0 {
		return 0
	}

	if at+n < len(source) && source[at+n] == '.' {
		if fraction := countDigits(source, at+n+1); fraction > 0 {
			n += 1 + fraction
		}
	}

	return n
}

func matchOperator(source []rune, at int) int {
	switch source[at] {
	case '+', '-', '*', '/':
		return 1
	}
	return 0
}

func matchWhitespace(source []rune, at int) int {
	n := 0
	for at+n < len(source) && unicode.IsSpace(source[at+n]) {
		n++
	}
	return n
}

func matchRune(expected rune) matcher {
	return func(source []rune, at int) int {
		if source[at] == expected {
			return 1
		}
		return 0
	}
}

func countDigits(source []rune, at int) int {
	n := 0
	for at+n < len(source) && isDigit(source[at+n]) {
		n++
	}
	return n
}

func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}

var _ Scanner = (*scanner)(nil)
