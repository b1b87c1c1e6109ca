package evaluator

// Value is the optional string produced by evaluating an expression. Bindings produce None.
type Value struct {
	s  string
	ok bool
}

var None = Value{}

func Some(s string) Value {
	return Value{s, true}
}

func (v Value) IsNone() bool {
	return !v.ok
}

// String returns the string of the value, or the empty string for None
func (v Value) String() string {
	return v.s
}
