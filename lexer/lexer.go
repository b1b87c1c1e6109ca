package lexer

import (
	"github.com/lyraproj/invocat/utils"
)

type lexer struct {
	sr        *utils.StringReader
	tokens    []Token
	lineStart bool
}

// A matcher attempts to recognize a token at the current position. It returns
// false and leaves the reader untouched when it doesn't match.
type matcher func(l *lexer) bool

// Matchers in order of priority. The name matcher accepts anything and must be last.
var matchers = []matcher{
	(*lexer).split,
	(*lexer).rule,
	(*lexer).comment,
	(*lexer).operator,
	(*lexer).newline,
	(*lexer).group,
	(*lexer).escape,
	(*lexer).white,
	(*lexer).number,
	(*lexer).name,
}

// Tokenize splits text into tokens. The returned slice always ends with exactly
// one EOF token. Comments and line continuations produce no tokens.
func Tokenize(text string) []Token {
	l := &lexer{sr: utils.NewStringReader(text), tokens: make([]Token, 0, len(text)/4+1), lineStart: true}
	for !l.sr.AtEnd() {
		for _, m := range matchers {
			if m(l) {
				break
			}
		}
	}
	l.tokens = append(l.tokens, Token{EOF, ``, l.sr.Pos()})
	return l.tokens
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\r'
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func (l *lexer) emit(t TokenType, start int) {
	l.tokens = append(l.tokens, Token{t, l.sr.From(start), start})
	l.lineStart = t == Newline
}

// skipSpaces consumes a run of spaces and tabs and returns the number of runes consumed
func (l *lexer) skipSpaces() (n int) {
	for isSpace(l.sr.Peek()) {
		l.sr.Next()
		n++
	}
	return
}

// atLineEnd is true when the reader is positioned at a newline or at the end of input
func (l *lexer) atLineEnd() bool {
	r := l.sr.Peek()
	return r == 0 && l.sr.AtEnd() || r == '\n'
}

// operatorAt returns the length of the operator starting at the current position, or 0
func (l *lexer) operatorAt() (TokenType, int) {
	switch l.sr.Peek() {
	case '|':
		return Pipe, 1
	case ':':
		switch l.sr.PeekAt(1) {
		case ':':
			return Define, 2
		case '!':
			return DefEval, 2
		}
	case '<':
		switch l.sr.PeekAt(1) {
		case '-':
			return Select, 2
		case '!':
			return SelEval, 2
		}
	}
	return EOF, 0
}

func (l *lexer) split() bool {
	if l.sr.Peek() != '\\' {
		return false
	}
	switch {
	case l.sr.PeekAt(1) == '\n':
		l.sr.Skip(2)
	case l.sr.PeekAt(1) == '\r' && l.sr.PeekAt(2) == '\n':
		l.sr.Skip(3)
	default:
		return false
	}
	return true
}

func (l *lexer) rule() bool {
	if !l.lineStart {
		return false
	}
	c := l.sr.Peek()
	var t TokenType
	switch c {
	case '-':
		t = Rule1
	case '=':
		t = Rule2
	default:
		return false
	}
	m := l.sr.Mark()
	start := l.sr.Pos()
	n := 0
	for l.sr.Peek() == c {
		l.sr.Next()
		n++
	}
	l.skipSpaces()
	if n < 3 || !l.atLineEnd() {
		l.sr.Reset(m)
		return false
	}
	l.emit(t, start)
	return true
}

func (l *lexer) comment() bool {
	m := l.sr.Mark()
	spaced := l.skipSpaces() > 0 || l.lineStart || isSpace(l.sr.Last())
	if !(spaced && l.sr.HasPrefix(`--`)) {
		l.sr.Reset(m)
		return false
	}
	for !l.atLineEnd() {
		l.sr.Next()
	}
	return true
}

func (l *lexer) operator() bool {
	m := l.sr.Mark()
	start := l.sr.Pos()
	l.skipSpaces()
	t, n := l.operatorAt()
	if n == 0 {
		l.sr.Reset(m)
		return false
	}
	l.sr.Skip(n)
	l.skipSpaces()
	l.emit(t, start)
	return true
}

func (l *lexer) newline() bool {
	if l.sr.Peek() != '\n' {
		return false
	}
	start := l.sr.Pos()
	l.sr.Next()
	l.emit(Newline, start)
	return true
}

func (l *lexer) group() bool {
	var t TokenType
	switch l.sr.Peek() {
	case '(':
		t = LParen
	case ')':
		t = RParen
	case '{':
		t = LBrace
	case '}':
		t = RBrace
	default:
		return false
	}
	start := l.sr.Pos()
	l.sr.Next()
	l.emit(t, start)
	return true
}

func (l *lexer) escape() bool {
	if l.sr.Peek() != '\\' {
		return false
	}
	start := l.sr.Pos()
	l.sr.Next()
	if !l.sr.AtEnd() {
		l.sr.Next()
	}
	l.emit(Escape, start)
	return true
}

func (l *lexer) white() bool {
	start := l.sr.Pos()
	if l.skipSpaces() == 0 {
		return false
	}
	l.emit(White, start)
	return true
}

func (l *lexer) number() bool {
	if !isDigit(l.sr.Peek()) {
		return false
	}
	start := l.sr.Pos()
	for isDigit(l.sr.Peek()) {
		l.sr.Next()
	}
	l.emit(Number, start)
	return true
}

// endsName returns true if the rune at the current position cannot be part of a name
func (l *lexer) endsName() bool {
	switch l.sr.Peek() {
	case 0, '\n', '(', ')', '{', '}', '\\':
		return true
	}
	_, n := l.operatorAt()
	return n > 0
}

func (l *lexer) name() bool {
	start := l.sr.Pos()
	l.sr.Next()
	for !l.sr.AtEnd() {
		if isSpace(l.sr.Peek()) {
			// Internal whitespace is kept only when the name continues after it
			m := l.sr.Mark()
			l.skipSpaces()
			if l.endsName() || l.sr.HasPrefix(`--`) {
				l.sr.Reset(m)
				break
			}
			continue
		}
		if l.endsName() {
			break
		}
		l.sr.Next()
	}
	l.emit(Name, start)
	return true
}
