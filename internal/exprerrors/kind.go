package exprerrors

import "errors"

type ErrKind string

const (
	KindNone    ErrKind = ""
	KindLex     ErrKind = "lex"
	KindParse   ErrKind = "parse"
	KindCodegen ErrKind = "codegen"
	KindEval    ErrKind = "eval"
)

// Kind classifies err by the pipeline stage that produced it.
func Kind(err error) ErrKind {
	var (
		lexErr     *LexError
		parseErr   *ParseError
		codegenErr *CodegenError
		evalErr    *EvalError
	)

	switch {
	case err == nil:
		return KindNone
	case errors.As(err, &lexErr):
		return KindLex
	case errors.As(err, &parseErr):
		return KindParse
	case errors.As(err, &codegenErr):
		return KindCodegen
	case errors.As(err, &evalErr):
		return KindEval
	}

	return KindNone
}
