package cell

import (
	"github.com/mna/sepal/lang/types"
)

// A Ref is an opaque handle pairing a value with a distinct identity. Every
// store into a cell wraps the value in a fresh ref, so two stores of
// structurally equal values never yield identity-equal refs. CompareAndSwap
// tests ref identity, never value equality, which makes the "expected"
// argument unambiguous even for value kinds (two Int(1) refs are distinct).
type Ref struct {
	v types.Value
}

// NewRef returns a new handle for v, distinct from every existing handle.
func NewRef(v types.Value) *Ref { return &Ref{v: v} }

// Value returns the wrapped value.
func (r *Ref) Value() types.Value { return r.v }
