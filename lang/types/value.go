package types

// Value is the interface implemented by any value manipulated by the
// runtime. Values are immutable; all mutation in the runtime goes through
// the cell layer, which holds values indirectly.
type Value interface {
	// String returns the string representation of the value.
	String() string

	// Type returns a short string describing the value's type. It is the
	// string a cell's declared type constraint is matched against.
	Type() string

	// Truth returns the truth value of the value.
	Truth() Bool
}
