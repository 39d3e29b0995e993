package exprerrors

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	ErrScanUnexpectedCharacter = errors.New("unexpected character.")
)

// LexError reports the character the scanner could not match against any rule.
type LexError struct {
	line   int
	offset int
	char   rune
	cause  error
}

func NewLexError(line, offset int, char rune, cause error) error {
	return &LexError{line: line, offset: offset, char: char, cause: cause}
}

// Line is the 1-based source line of the offending character.
func (l *LexError) Line() int {
	return l.line
}

// Offset is the 0-based rune index of the offending character.
func (l *LexError) Offset() int {
	return l.offset
}

func (l *LexError) Char() rune {
	return l.char
}

// Error implements error.
func (l *LexError) Error() string {
	return fmt.Sprintf("[line %d] lex error at offset %d: %v %s", l.line, l.offset, l.cause, strconv.QuoteRune(l.char))
}

func (l *LexError) Unwrap() error {
	return l.cause
}

var _ error = (*LexError)(nil)
var _ unwrapInterface = (*LexError)(nil)
