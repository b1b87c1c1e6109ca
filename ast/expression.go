package ast

import (
	"bytes"
	"strings"
)

type (
	// Expression is the closed set of Invocat syntax tree nodes. The set is sealed
	// by the unexported marker method; evaluation switches over the concrete types.
	Expression interface {
		// String renders the expression as Invocat source
		String() string

		expression()
	}

	// Literal is text that evaluates to itself
	Literal struct {
		Text string
	}

	// Mix is the concatenation of its evaluated operands
	Mix struct {
		Left  Expression
		Right Expression
	}

	// Reference reads a random member of the pool named by Name without removing it
	Reference struct {
		Name Expression
	}

	// Draw reads and removes a random member of the pool named by Name
	Draw struct {
		Name Expression
	}

	// Definition replaces the pool Name with the unevaluated Items
	Definition struct {
		Name  string
		Items []Expression
	}

	// EvaluatingDefinition replaces the pool Name with the evaluated Items
	EvaluatingDefinition struct {
		Name  string
		Items []Expression
	}

	// Selection replaces the pool Name with one randomly chosen, unevaluated, member of Items
	Selection struct {
		Name  string
		Items []Expression
	}

	// EvaluatingSelection replaces the pool Name with one randomly chosen and evaluated member of Items
	EvaluatingSelection struct {
		Name  string
		Items []Expression
	}
)

func NewLiteral(text string) *Literal {
	return &Literal{text}
}

func NewMix(left, right Expression) *Mix {
	return &Mix{left, right}
}

func NewReference(name Expression) *Reference {
	return &Reference{name}
}

func NewDraw(name Expression) *Draw {
	return &Draw{name}
}

func NewDefinition(name string, items ...Expression) *Definition {
	return &Definition{name, items}
}

func NewEvaluatingDefinition(name string, items ...Expression) *EvaluatingDefinition {
	return &EvaluatingDefinition{name, items}
}

func NewSelection(name string, items ...Expression) *Selection {
	return &Selection{name, items}
}

func NewEvaluatingSelection(name string, items ...Expression) *EvaluatingSelection {
	return &EvaluatingSelection{name, items}
}

// MixAll folds the given expressions left to right into a Mix chain. An empty
// argument list yields the empty Literal.
func MixAll(exprs ...Expression) Expression {
	if len(exprs) == 0 {
		return NewLiteral(``)
	}
	e := exprs[0]
	for _, r := range exprs[1:] {
		e = NewMix(e, r)
	}
	return e
}

func (*Literal) expression()              {}
func (*Mix) expression()                  {}
func (*Reference) expression()            {}
func (*Draw) expression()                 {}
func (*Definition) expression()           {}
func (*EvaluatingDefinition) expression() {}
func (*Selection) expression()            {}
func (*EvaluatingSelection) expression()  {}

var literalEscaper = strings.NewReplacer(
	`\`, `\\`,
	`(`, `\(`,
	`)`, `\)`,
	`{`, `\{`,
	`}`, `\}`,
	`|`, `\|`,
	"\n", `\n`,
	"\t", `\t`)

func (e *Literal) String() string {
	return literalEscaper.Replace(e.Text)
}

func (e *Mix) String() string {
	return e.Left.String() + e.Right.String()
}

func (e *Reference) String() string {
	return `(` + e.Name.String() + `)`
}

func (e *Draw) String() string {
	return `{` + e.Name.String() + `}`
}

func (e *Definition) String() string {
	return bindingString(e.Name, `::`, e.Items)
}

func (e *EvaluatingDefinition) String() string {
	return bindingString(e.Name, `:!`, e.Items)
}

func (e *Selection) String() string {
	return bindingString(e.Name, `<-`, e.Items)
}

func (e *EvaluatingSelection) String() string {
	return bindingString(e.Name, `<!`, e.Items)
}

func bindingString(name, op string, items []Expression) string {
	b := bytes.NewBufferString(name)
	b.WriteByte(' ')
	b.WriteString(op)
	for i, item := range items {
		if i > 0 {
			b.WriteString(` |`)
		}
		b.WriteByte(' ')
		b.WriteString(item.String())
	}
	return b.String()
}

// IsBinding returns true if the expression binds a name to a pool rather than producing a value
func IsBinding(e Expression) bool {
	switch e.(type) {
	case *Definition, *EvaluatingDefinition, *Selection, *EvaluatingSelection:
		return true
	}
	return false
}

// Equal compares two expressions structurally
func Equal(a, b Expression) bool {
	switch a := a.(type) {
	case *Literal:
		if b, ok := b.(*Literal); ok {
			return a.Text == b.Text
		}
	case *Mix:
		if b, ok := b.(*Mix); ok {
			return Equal(a.Left, b.Left) && Equal(a.Right, b.Right)
		}
	case *Reference:
		if b, ok := b.(*Reference); ok {
			return Equal(a.Name, b.Name)
		}
	case *Draw:
		if b, ok := b.(*Draw); ok {
			return Equal(a.Name, b.Name)
		}
	case *Definition:
		if b, ok := b.(*Definition); ok {
			return a.Name == b.Name && EqualAll(a.Items, b.Items)
		}
	case *EvaluatingDefinition:
		if b, ok := b.(*EvaluatingDefinition); ok {
			return a.Name == b.Name && EqualAll(a.Items, b.Items)
		}
	case *Selection:
		if b, ok := b.(*Selection); ok {
			return a.Name == b.Name && EqualAll(a.Items, b.Items)
		}
	case *EvaluatingSelection:
		if b, ok := b.(*EvaluatingSelection); ok {
			return a.Name == b.Name && EqualAll(a.Items, b.Items)
		}
	case nil:
		return b == nil
	}
	return false
}

// EqualAll compares two expression slices element by element
func EqualAll(a, b []Expression) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}
