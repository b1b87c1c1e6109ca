package lexer

import "fmt"

type TokenType int

const (
	EOF TokenType = iota
	Name
	Number
	White
	Newline
	Define
	DefEval
	Select
	SelEval
	Pipe
	LParen
	RParen
	LBrace
	RBrace
	Escape
	Rule1
	Rule2
)

func (t TokenType) String() (s string) {
	switch t {
	case EOF:
		s = "eof"
	case Name:
		s = "name"
	case Number:
		s = "number"
	case White:
		s = "white"
	case Newline:
		s = "newline"
	case Define:
		s = "define"
	case DefEval:
		s = "defEval"
	case Select:
		s = "select"
	case SelEval:
		s = "selEval"
	case Pipe:
		s = "pipe"
	case LParen:
		s = "lparen"
	case RParen:
		s = "rparen"
	case LBrace:
		s = "lbrace"
	case RBrace:
		s = "rbrace"
	case Escape:
		s = "escape"
	case Rule1:
		s = "rule1"
	case Rule2:
		s = "rule2"
	default:
		s = "*UNKNOWN TOKEN*"
	}
	return
}

// IsBinding returns true for the four operators that bind a name to a pool
func (t TokenType) IsBinding() bool {
	return t == Define || t == DefEval || t == Select || t == SelEval
}

// Token is a typed slice of the source text. Offset is the byte offset of the
// first character of Text in the source.
type Token struct {
	Type   TokenType
	Text   string
	Offset int
}

func (t Token) String() string {
	return fmt.Sprintf("%s: '%s'", t.Type.String(), t.Text)
}
