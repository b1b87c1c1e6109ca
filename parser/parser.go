package parser

import (
	"strings"

	"github.com/lyraproj/invocat/ast"
	"github.com/lyraproj/invocat/lexer"
	"github.com/lyraproj/issue/issue"
	pp "github.com/lyraproj/puppet-parser/parser"
)

// Statement is the outcome of parsing one top-level statement. Exactly one of
// Expression and Error is set.
type Statement struct {
	Expression ast.Expression
	Error      issue.Reported
}

type parser struct {
	tokens  []lexer.Token
	pos     int
	resume  int
	locator *pp.Locator
}

// Parse parses the given tokens into top-level statements. A statement that fails
// to parse is reported as a Statement with an Error and parsing resumes with the
// next statement. Error locations are computed from a source rebuilt from the token
// texts, where comments and line continuations appear as spaces. Use ParseString to
// get locations that are exact for the source text.
func Parse(tokens []lexer.Token) []Statement {
	return newParser(tokens, pp.NewLocator(``, sourceOf(tokens))).statements()
}

// ParseString tokenizes and parses text. Error locations refer to the given file name.
func ParseString(file, text string) []Statement {
	return newParser(lexer.Tokenize(text), pp.NewLocator(file, text)).statements()
}

// Expressions returns the expressions of all statements that parsed successfully
func Expressions(stmts []Statement) []ast.Expression {
	exprs := make([]ast.Expression, 0, len(stmts))
	for _, st := range stmts {
		if st.Error == nil {
			exprs = append(exprs, st.Expression)
		}
	}
	return exprs
}

// Issues returns the errors of all statements that failed to parse
func Issues(stmts []Statement) []issue.Reported {
	var issues []issue.Reported
	for _, st := range stmts {
		if st.Error != nil {
			issues = append(issues, st.Error)
		}
	}
	return issues
}

// sourceOf places each token text at its offset and fills the gaps with spaces
func sourceOf(tokens []lexer.Token) string {
	b := strings.Builder{}
	for _, t := range tokens {
		for b.Len() < t.Offset {
			b.WriteByte(' ')
		}
		b.WriteString(t.Text)
	}
	return b.String()
}

func newParser(tokens []lexer.Token, locator *pp.Locator) *parser {
	if len(tokens) == 0 || tokens[len(tokens)-1].Type != lexer.EOF {
		end := 0
		if len(tokens) > 0 {
			last := tokens[len(tokens)-1]
			end = last.Offset + len(last.Text)
		}
		tokens = append(tokens, lexer.Token{Type: lexer.EOF, Offset: end})
	}
	return &parser{tokens: tokens, resume: -1, locator: locator}
}

func (p *parser) statements() []Statement {
	stmts := make([]Statement, 0, 8)
	for p.peek().Type != lexer.EOF {
		if st, ok := p.statement(); ok {
			stmts = append(stmts, st)
		}
	}
	return stmts
}

func (p *parser) statement() (st Statement, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			ri, isReported := r.(issue.Reported)
			if !isReported {
				panic(r)
			}
			st = Statement{Error: ri}
			ok = true
			if p.resume >= 0 {
				p.pos = p.resume
			} else {
				p.skipLine()
			}
		}
	}()

	p.resume = -1
	p.skipWhite()
	switch t := p.peek(); t.Type {
	case lexer.EOF:
		return
	case lexer.Newline:
		p.next()
		return
	case lexer.Rule1:
		// A stray line of dashes is a visual separator
		p.skipLine()
		return
	case lexer.Rule2:
		p.fail(t, RuleWithoutTitle, issue.H{})
	}
	if p.isBlockTitle(p.pos) {
		return Statement{Expression: p.block()}, true
	}
	return Statement{Expression: p.line()}, true
}

func (p *parser) line() ast.Expression {
	if name, next, ok := p.nameAt(p.pos); ok && p.tokens[next].Type.IsBinding() {
		p.pos = next
		op := p.next()
		items := []ast.Expression{p.mix(true)}
		for p.peek().Type == lexer.Pipe {
			p.next()
			items = append(items, p.mix(true))
		}
		p.endLine()
		return binding(op.Type, name, items)
	}
	e := p.mix(false)
	p.endLine()
	return e
}

func binding(op lexer.TokenType, name string, items []ast.Expression) ast.Expression {
	switch op {
	case lexer.DefEval:
		return ast.NewEvaluatingDefinition(name, items...)
	case lexer.Select:
		return ast.NewSelection(name, items...)
	case lexer.SelEval:
		return ast.NewEvaluatingSelection(name, items...)
	default:
		return ast.NewDefinition(name, items...)
	}
}

// block parses a titled definition. The title line and the line of '=' that follows
// it are followed by one or more blocks, each closed by a line of dashes.
func (p *parser) block() ast.Expression {
	title := p.peek()
	name, next, _ := p.nameAt(p.pos)
	p.pos = p.skipWhiteFrom(next)
	p.next() // newline
	p.next() // rule2
	p.endLine()

	// a failure anywhere in the definition drops all of its blocks
	p.resume = p.blockEnd(p.pos)

	var blocks []ast.Expression
	for len(blocks) == 0 || p.blockAhead(p.pos) {
		blocks = append(blocks, p.blockContent(title, name))
	}
	return ast.NewDefinition(name, blocks...)
}

func (p *parser) blockContent(title lexer.Token, name string) ast.Expression {
	var lines []ast.Expression
	for {
		p.skipWhite()
		t := p.peek()
		switch {
		case t.Type == lexer.Rule1:
			p.next()
			p.endLine()
			return join(lines)
		case t.Type == lexer.Newline:
			p.next()
			continue
		case t.Type == lexer.EOF || t.Type == lexer.Rule2 || p.isBlockTitle(p.pos):
			p.fail(title, UnterminatedBlock, issue.H{`name`: name})
		}
		lines = append(lines, p.mix(false))
		p.endLine()
	}
}

// blockAhead returns true if the lines that follow a closing rule at index i form another
// block of the current definition, i.e. they are not blank and end with a line of dashes
// before any new title, stray rule or end of input.
func (p *parser) blockAhead(i int) bool {
	i = p.skipWhiteFrom(i)
	if t := p.tokens[i].Type; t == lexer.Newline || t == lexer.EOF {
		return false
	}
	for {
		i = p.skipWhiteFrom(i)
		switch p.tokens[i].Type {
		case lexer.Rule1:
			return true
		case lexer.EOF, lexer.Rule2:
			return false
		case lexer.Newline:
			i++
			continue
		}
		if p.isBlockTitle(i) {
			return false
		}
		i = p.lineEndFrom(i)
		if p.tokens[i].Type == lexer.EOF {
			return false
		}
		i++
	}
}

// blockEnd returns the index of the first token after the blocks of a definition whose
// content starts at index i. When the first block is not terminated, it is the index of
// the token that ends it.
func (p *parser) blockEnd(i int) int {
	for first := true; first || p.blockAhead(i); first = false {
		for {
			i = p.skipWhiteFrom(i)
			t := p.tokens[i].Type
			if t == lexer.EOF || t == lexer.Rule2 || p.isBlockTitle(i) {
				return i
			}
			i = p.nextLineFrom(i)
			if t == lexer.Rule1 {
				break
			}
		}
	}
	return i
}

// isBlockTitle returns true if the line starting at index i is a single name followed by a line of '='
func (p *parser) isBlockTitle(i int) bool {
	_, next, ok := p.nameAt(i)
	if !ok {
		return false
	}
	i = p.skipWhiteFrom(next)
	return p.tokens[i].Type == lexer.Newline && p.tokens[i+1].Type == lexer.Rule2
}

// nameAt returns the pool name that starts at index i and the index of the token that
// follows it. A name is a name token, optionally preceded by a number as in "1st chapter"
// or "7 seas".
func (p *parser) nameAt(i int) (string, int, bool) {
	switch p.tokens[i].Type {
	case lexer.Name:
		return p.tokens[i].Text, i + 1, true
	case lexer.Number:
		j := p.skipWhiteFrom(i + 1)
		if p.tokens[j].Type != lexer.Name {
			return p.tokens[i].Text, i + 1, true
		}
		b := strings.Builder{}
		for _, t := range p.tokens[i : j+1] {
			b.WriteString(t.Text)
		}
		return b.String(), j + 1, true
	}
	return ``, i, false
}

// mix parses free text up to the end of the line. Leading and trailing whitespace is
// dropped. When inItems is true, a pipe ends the mix.
func (p *parser) mix(inItems bool) ast.Expression {
	return concat(p.segments(lexer.Token{Type: lexer.EOF}, inItems))
}

// segments parses literal text and embedded groups. The open token is the group
// being parsed or EOF at the top level of a line.
func (p *parser) segments(open lexer.Token, inItems bool) []ast.Expression {
	top := open.Type == lexer.EOF
	closer := lexer.EOF
	switch open.Type {
	case lexer.LParen:
		closer = lexer.RParen
	case lexer.LBrace:
		closer = lexer.RBrace
	}

	segs := make([]ast.Expression, 0, 4)
	lit := strings.Builder{}
	white := ``
	content := false

	// Whitespace at the top level is held back until something follows it
	write := func(s string) {
		if top {
			if content {
				lit.WriteString(white)
			}
			white = ``
		}
		lit.WriteString(s)
		content = true
	}
	flush := func() {
		if lit.Len() > 0 {
			segs = append(segs, ast.NewLiteral(lit.String()))
			lit.Reset()
		}
	}

	for {
		t := p.peek()
		switch t.Type {
		case lexer.White:
			p.next()
			if top {
				white += t.Text
			} else {
				lit.WriteString(t.Text)
			}
		case lexer.Name, lexer.Number:
			p.next()
			write(t.Text)
		case lexer.Escape:
			p.next()
			write(decodeEscape(t.Text))
		case lexer.LParen, lexer.LBrace:
			write(``)
			flush()
			segs = append(segs, p.group())
		case lexer.RParen, lexer.RBrace:
			if t.Type != closer {
				p.fail(t, UnmatchedGroup, issue.H{`token`: t.Text})
			}
			flush()
			return segs
		case lexer.Pipe:
			if !(top && inItems) {
				p.fail(t, OperatorWithoutName, issue.H{`operator`: strings.TrimSpace(t.Text)})
			}
			flush()
			return segs
		case lexer.Define, lexer.DefEval, lexer.Select, lexer.SelEval:
			p.fail(t, OperatorWithoutName, issue.H{`operator`: strings.TrimSpace(t.Text)})
		default:
			// end of line
			if !top {
				p.fail(open, UnmatchedGroup, issue.H{`token`: open.Text})
			}
			flush()
			return segs
		}
	}
}

// group parses a parenthesized Reference or a braced Draw
func (p *parser) group() ast.Expression {
	open := p.next()
	name := concat(p.segments(open, false))
	p.next()
	if open.Type == lexer.LBrace {
		return ast.NewDraw(name)
	}
	return ast.NewReference(name)
}

// concat merges adjacent literals and folds the result into a Mix chain
func concat(exprs []ast.Expression) ast.Expression {
	merged := make([]ast.Expression, 0, len(exprs))
	for _, e := range exprs {
		if l, ok := e.(*ast.Literal); ok && len(merged) > 0 {
			if pl, ok := merged[len(merged)-1].(*ast.Literal); ok {
				merged[len(merged)-1] = ast.NewLiteral(pl.Text + l.Text)
				continue
			}
		}
		merged = append(merged, e)
	}
	return ast.MixAll(merged...)
}

// join concatenates the lines of a block separated by single spaces
func join(lines []ast.Expression) ast.Expression {
	exprs := make([]ast.Expression, 0, len(lines)*2)
	for i, l := range lines {
		if i > 0 {
			exprs = append(exprs, ast.NewLiteral(` `))
		}
		exprs = append(exprs, flatten(l)...)
	}
	return concat(exprs)
}

// flatten returns the operands of a left folded Mix chain
func flatten(e ast.Expression) []ast.Expression {
	if m, ok := e.(*ast.Mix); ok {
		return append(flatten(m.Left), m.Right)
	}
	return []ast.Expression{e}
}

func decodeEscape(text string) string {
	if len(text) < 2 {
		return `\`
	}
	switch c := text[1:]; c {
	case `n`:
		return "\n"
	case `t`:
		return "\t"
	default:
		return c
	}
}

func (p *parser) peek() lexer.Token {
	return p.tokens[p.pos]
}

func (p *parser) next() lexer.Token {
	t := p.tokens[p.pos]
	if t.Type != lexer.EOF {
		p.pos++
	}
	return t
}

func (p *parser) skipWhite() {
	p.pos = p.skipWhiteFrom(p.pos)
}

func (p *parser) skipWhiteFrom(i int) int {
	for p.tokens[i].Type == lexer.White {
		i++
	}
	return i
}

// lineEndFrom returns the index of the newline or EOF that ends the line containing index i
func (p *parser) lineEndFrom(i int) int {
	for t := p.tokens[i].Type; t != lexer.Newline && t != lexer.EOF; t = p.tokens[i].Type {
		i++
	}
	return i
}

// nextLineFrom returns the index of the first token after the line containing index i
func (p *parser) nextLineFrom(i int) int {
	i = p.lineEndFrom(i)
	if p.tokens[i].Type == lexer.Newline {
		i++
	}
	return i
}

// skipLine moves past the next newline
func (p *parser) skipLine() {
	p.pos = p.lineEndFrom(p.pos)
	p.next()
}

func (p *parser) endLine() {
	switch t := p.peek(); t.Type {
	case lexer.Newline:
		p.next()
	case lexer.EOF:
	default:
		p.fail(t, UnexpectedToken, issue.H{`type`: t.Type.String(), `token`: t.Text})
	}
}

func (p *parser) fail(t lexer.Token, code issue.Code, args issue.H) {
	args[`index`] = p.indexOf(t)
	panic(issue.NewReported(code, issue.SEVERITY_ERROR, args, p.location(t)))
}

func (p *parser) indexOf(t lexer.Token) int {
	for i, x := range p.tokens {
		if x.Offset == t.Offset && x.Type == t.Type {
			return i
		}
	}
	return p.pos
}

func (p *parser) location(t lexer.Token) issue.Location {
	return issue.NewLocation(p.locator.File(), p.locator.LineForOffset(t.Offset), p.locator.PosOnLine(t.Offset))
}
