package parser

import (
	"fmt"
	"testing"

	"github.com/lyraproj/invocat/ast"
	"github.com/lyraproj/invocat/lexer"
	"github.com/lyraproj/issue/issue"
)

func ExampleParseString() {
	stmts := ParseString(`example.inv`, `
artifact :: a (fixed quality) {weapon} -- the good stuff
fixed quality <- gleaming | dull
weapon :! sword | axe
treasure <! {artifact} | nothing

the (artifact) is here
`)
	for _, st := range stmts {
		fmt.Printf("%T %s\n", st.Expression, st.Expression)
	}
	// Output:
	// *ast.Definition artifact :: a (fixed quality) {weapon}
	// *ast.Selection fixed quality <- gleaming | dull
	// *ast.EvaluatingDefinition weapon :! sword | axe
	// *ast.EvaluatingSelection treasure <! {artifact} | nothing
	// *ast.Mix the (artifact) is here
}

func ExampleParseString_block() {
	stmts := ParseString(``, `dragon murmurings
=================
still having joy
-----------------
the bloodline is
not cut off
-----------------
`)
	for _, st := range stmts {
		fmt.Println(st.Expression)
	}
	// Output:
	// dragon murmurings :: still having joy | the bloodline is not cut off
}

func ExampleParseString_escapes() {
	st := ParseString(``, `a \(b\) \| c\n and \q`)[0]
	fmt.Printf("%q\n", st.Expression.(*ast.Literal).Text)
	fmt.Println(st.Expression)
	// Output:
	// "a (b) | c\n and q"
	// a \(b\) \| c\n and q
}

func parseOne(t *testing.T, src string) ast.Expression {
	t.Helper()
	stmts := ParseString(``, src)
	if len(stmts) != 1 {
		t.Fatalf("expected one statement from %q, got %d", src, len(stmts))
	}
	if stmts[0].Error != nil {
		t.Fatalf("unexpected error parsing %q: %s", src, stmts[0].Error)
	}
	return stmts[0].Expression
}

func expectIssue(t *testing.T, src string, code issue.Code) {
	t.Helper()
	issues := Issues(ParseString(``, src))
	if len(issues) != 1 {
		t.Fatalf("expected one issue from %q, got %v", src, issues)
	}
	if issues[0].Code() != code {
		t.Errorf("expected %s from %q, got %s", code, src, issues[0].Code())
	}
}

func TestParse_literal(t *testing.T) {
	e := parseOne(t, "  hello world   \n")
	if !ast.Equal(e, ast.NewLiteral(`hello world`)) {
		t.Errorf("expected trimmed literal, got %#v", e)
	}
}

func TestParse_mixStructure(t *testing.T) {
	e := parseOne(t, `a (b) c`)
	expected := ast.NewMix(ast.NewMix(ast.NewLiteral(`a `), ast.NewReference(ast.NewLiteral(`b`))), ast.NewLiteral(` c`))
	if !ast.Equal(e, expected) {
		t.Errorf("expected %s, got %s", expected, e)
	}
}

func TestParse_groupKeepsWhitespace(t *testing.T) {
	e := parseOne(t, `( a )`)
	if !ast.Equal(e, ast.NewReference(ast.NewLiteral(` a `))) {
		t.Errorf("expected whitespace inside a group to be kept, got %s", e)
	}
}

func TestParse_nestedGroups(t *testing.T) {
	e := parseOne(t, `{(kind) weapon}`)
	expected := ast.NewDraw(ast.NewMix(ast.NewReference(ast.NewLiteral(`kind`)), ast.NewLiteral(` weapon`)))
	if !ast.Equal(e, expected) {
		t.Errorf("expected %s, got %s", expected, e)
	}
}

func TestParse_bindingItems(t *testing.T) {
	e := parseOne(t, `x :: a | | b`)
	expected := ast.NewDefinition(`x`, ast.NewLiteral(`a`), ast.NewLiteral(``), ast.NewLiteral(`b`))
	if !ast.Equal(e, expected) {
		t.Errorf("expected %s, got %s", expected, e)
	}
}

func TestParse_escapedPipeIsText(t *testing.T) {
	e := parseOne(t, `x :: a\|b`)
	if !ast.Equal(e, ast.NewDefinition(`x`, ast.NewLiteral(`a|b`))) {
		t.Errorf("expected a single item, got %s", e)
	}
}

func TestParse_trailingBackslash(t *testing.T) {
	e := parseOne(t, `x \`)
	if !ast.Equal(e, ast.NewLiteral(`x \`)) {
		t.Errorf("expected a literal backslash, got %q", e.(*ast.Literal).Text)
	}
}

func TestParse_skipsBlankLinesAndSeparators(t *testing.T) {
	stmts := ParseString(``, "\n   \n---\na\n\n-----\nb\n")
	exprs := Expressions(stmts)
	if len(stmts) != 2 || len(exprs) != 2 {
		t.Fatalf("expected two statements, got %v", stmts)
	}
	if !(ast.Equal(exprs[0], ast.NewLiteral(`a`)) && ast.Equal(exprs[1], ast.NewLiteral(`b`))) {
		t.Errorf("unexpected expressions %v", exprs)
	}
}

func TestParse_lineContinuation(t *testing.T) {
	e := parseOne(t, "x :: one\\\n | two")
	if !ast.Equal(e, ast.NewDefinition(`x`, ast.NewLiteral(`one`), ast.NewLiteral(`two`))) {
		t.Errorf("expected continued line, got %s", e)
	}
}

func TestParse_errors(t *testing.T) {
	expectIssue(t, `:: x`, OperatorWithoutName)
	expectIssue(t, `a | b`, OperatorWithoutName)
	expectIssue(t, `a :: b :: c`, OperatorWithoutName)
	expectIssue(t, `x :: (a`, UnmatchedGroup)
	expectIssue(t, `x :: a)`, UnmatchedGroup)
	expectIssue(t, `x :: (a}`, UnmatchedGroup)
	expectIssue(t, `{a | b}`, OperatorWithoutName)
	expectIssue(t, "=====\n", RuleWithoutTitle)
	expectIssue(t, "title\n=====\nsome text\n", UnterminatedBlock)
}

func TestParse_recovery(t *testing.T) {
	stmts := ParseString(``, "x :: (a\ny :: b\n=====\nz")
	if len(stmts) != 4 {
		t.Fatalf("expected 4 statements, got %d", len(stmts))
	}
	if stmts[0].Error == nil || stmts[0].Error.Code() != UnmatchedGroup {
		t.Errorf("expected unmatched group, got %v", stmts[0])
	}
	if !ast.Equal(stmts[1].Expression, ast.NewDefinition(`y`, ast.NewLiteral(`b`))) {
		t.Errorf("expected definition of y, got %v", stmts[1].Expression)
	}
	if stmts[2].Error == nil || stmts[2].Error.Code() != RuleWithoutTitle {
		t.Errorf("expected rule without title, got %v", stmts[2])
	}
	if !ast.Equal(stmts[3].Expression, ast.NewLiteral(`z`)) {
		t.Errorf("expected literal z, got %v", stmts[3].Expression)
	}
}

func TestParse_unterminatedBlockResumesAtNextTitle(t *testing.T) {
	stmts := ParseString(``, "t1\n===\nabc\nt2\n===\nxyz\n---\n")
	if len(stmts) != 2 {
		t.Fatalf("expected 2 statements, got %v", stmts)
	}
	if stmts[0].Error == nil || stmts[0].Error.Code() != UnterminatedBlock {
		t.Errorf("expected unterminated block, got %v", stmts[0])
	}
	if !ast.Equal(stmts[1].Expression, ast.NewDefinition(`t2`, ast.NewLiteral(`xyz`))) {
		t.Errorf("expected definition of t2, got %v", stmts[1].Expression)
	}
}

func TestParse_errorLocation(t *testing.T) {
	issues := Issues(Parse(lexer.Tokenize("x :: y\n:: z")))
	if len(issues) != 1 {
		t.Fatalf("expected one issue, got %v", issues)
	}
	loc := issues[0].Location()
	if loc.Line() != 2 || loc.Pos() != 1 {
		t.Errorf("expected issue at line 2, pos 1, got line %d, pos %d", loc.Line(), loc.Pos())
	}

	issues = Issues(ParseString(`doc.inv`, "a\nb\n   x :: (y"))
	if len(issues) != 1 {
		t.Fatalf("expected one issue, got %v", issues)
	}
	loc = issues[0].Location()
	if loc.File() != `doc.inv` || loc.Line() != 3 {
		t.Errorf("expected issue in doc.inv at line 3, got %s:%d", loc.File(), loc.Line())
	}
}

func TestParse_withoutEOF(t *testing.T) {
	exprs := Expressions(Parse([]lexer.Token{{Type: lexer.Name, Text: `hi`}}))
	if len(exprs) != 1 || !ast.Equal(exprs[0], ast.NewLiteral(`hi`)) {
		t.Errorf("expected literal hi, got %v", exprs)
	}
}

func TestParse_errorInBlockDropsDefinition(t *testing.T) {
	stmts := ParseString(``, "title\n=====\nfirst line\nbroken (here\nthird line\n-----\nsecond block\n-----\nafter\n")
	if len(stmts) != 2 {
		t.Fatalf("expected 2 statements, got %v", stmts)
	}
	if stmts[0].Error == nil || stmts[0].Error.Code() != UnmatchedGroup {
		t.Errorf("expected unmatched group, got %v", stmts[0])
	}
	if loc := stmts[0].Error.Location(); loc.Line() != 4 {
		t.Errorf("expected issue at line 4, got %d", loc.Line())
	}
	if !ast.Equal(stmts[1].Expression, ast.NewLiteral(`after`)) {
		t.Errorf("expected literal after, got %v", stmts[1].Expression)
	}
}

func TestParse_errorInLaterBlockDropsDefinition(t *testing.T) {
	stmts := ParseString(``, "title\n=====\none\n-----\ntwo | three\n\nfour\n-----\nnext :: x\n")
	exprs := Expressions(stmts)
	issues := Issues(stmts)
	if len(issues) != 1 || issues[0].Code() != OperatorWithoutName {
		t.Errorf("expected one operator issue, got %v", issues)
	}
	if len(exprs) != 1 || !ast.Equal(exprs[0], ast.NewDefinition(`next`, ast.NewLiteral(`x`))) {
		t.Errorf("expected only the definition of next, got %v", exprs)
	}
}

func TestParse_namesStartingWithDigits(t *testing.T) {
	e := parseOne(t, "1st chapter\n===========\nonce upon a time\n-----------\n")
	if !ast.Equal(e, ast.NewDefinition(`1st chapter`, ast.NewLiteral(`once upon a time`))) {
		t.Errorf("expected a block named '1st chapter', got %s", e)
	}
	e = parseOne(t, `7 seas :: calm | rough`)
	if !ast.Equal(e, ast.NewDefinition(`7 seas`, ast.NewLiteral(`calm`), ast.NewLiteral(`rough`))) {
		t.Errorf("expected a definition of '7 seas', got %s", e)
	}
	e = parseOne(t, `12 (x)`)
	if !ast.Equal(e, ast.NewMix(ast.NewLiteral(`12 `), ast.NewReference(ast.NewLiteral(`x`)))) {
		t.Errorf("expected free text, got %s", e)
	}
}

func TestParse_locationsFromTokens(t *testing.T) {
	tokens := lexer.Tokenize("x :: y -- a comment\n\n  z :: (w")
	issues := Issues(Parse(tokens))
	if len(issues) != 1 {
		t.Fatalf("expected one issue, got %v", issues)
	}
	loc := issues[0].Location()
	if loc.Line() != 3 || loc.Pos() != 8 {
		t.Errorf("expected issue at line 3, pos 8, got line %d, pos %d", loc.Line(), loc.Pos())
	}
}
