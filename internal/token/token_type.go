package token

type TokenType int

const (
	EOF TokenType = iota
	NUMBER
	OPERATOR
	WHITESPACE
	LEFT_PAREN
	RIGHT_PAREN
	SEMICOLON
)

func (t TokenType) String() string {
	switch t {
	case EOF:
		return "EOF"
	case NUMBER:
		return "NUMBER"
	case OPERATOR:
		return "OPERATOR"
	case WHITESPACE:
		return "WHITESPACE"
	case LEFT_PAREN:
		return "LEFT_PAREN"
	case RIGHT_PAREN:
		return "RIGHT_PAREN"
	case SEMICOLON:
		return "SEMICOLON"
	default:
		return "UNKNOWN"
	}
}

// Operator symbols carried by OPERATOR tokens.
const (
	OpPlus  = "+"
	OpMinus = "-"
	OpStar  = "*"
	OpSlash = "/"
)
