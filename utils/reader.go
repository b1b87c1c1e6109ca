package utils

import (
	"unicode/utf8"
)

// StringReader is a rune cursor over a string that keeps track of the last rune consumed
type StringReader struct {
	p    int
	last rune
	s    string
}

// Mark is a saved position of a StringReader, see StringReader.Mark and StringReader.Reset
type Mark struct {
	p    int
	last rune
}

func NewStringReader(s string) *StringReader {
	return &StringReader{s: s}
}

// Next consumes and returns the next rune. It returns 0 when the end of the string has been reached.
func (r *StringReader) Next() rune {
	if r.p >= len(r.s) {
		return 0
	}
	c := rune(r.s[r.p])
	if c < utf8.RuneSelf {
		r.p++
	} else {
		var size int
		c, size = utf8.DecodeRuneInString(r.s[r.p:])
		r.p += size
	}
	r.last = c
	return c
}

// Peek returns the next rune without consuming it, or 0 at the end of the string
func (r *StringReader) Peek() rune {
	return r.PeekAt(0)
}

// PeekAt returns the rune n positions ahead of the next rune without consuming anything.
func (r *StringReader) PeekAt(n int) rune {
	p := r.p
	for {
		if p >= len(r.s) {
			return 0
		}
		c, size := utf8.DecodeRuneInString(r.s[p:])
		if n == 0 {
			return c
		}
		n--
		p += size
	}
}

// HasPrefix returns true if the unread part of the string starts with prefix
func (r *StringReader) HasPrefix(prefix string) bool {
	return len(r.s)-r.p >= len(prefix) && r.s[r.p:r.p+len(prefix)] == prefix
}

// Skip consumes n runes
func (r *StringReader) Skip(n int) {
	for ; n > 0; n-- {
		r.Next()
	}
}

// AtEnd returns true when all runes have been consumed
func (r *StringReader) AtEnd() bool {
	return r.p >= len(r.s)
}

// Last returns the last rune consumed, or 0 if nothing has been consumed yet
func (r *StringReader) Last() rune {
	return r.last
}

func (r *StringReader) Pos() int {
	return r.p
}

// From returns the text between the given byte offset and the current position
func (r *StringReader) From(pos int) string {
	return r.s[pos:r.p]
}

func (r *StringReader) Mark() Mark {
	return Mark{r.p, r.last}
}

func (r *StringReader) Reset(m Mark) {
	r.p = m.p
	r.last = m.last
}
