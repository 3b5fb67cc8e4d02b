package cell

import (
	"github.com/mna/sepal/lang/types"
)

// Function forms of the atomic accessors, for the binding layer's operator
// entry points. They delegate to the cell's methods with no behavioral
// difference, except that they enforce the pre-initialization rule: the
// methods tolerate an uninitialized cell (returning a nil ref), while the
// facade treats one as a programming error and panics.

// Assign atomically stores v into c, with release ordering. It is the
// function form of (*Cell).AtomicStore.
func Assign(c *Cell, v types.Value) error {
	return c.AtomicStore(v)
}

// Fetch atomically loads the value held by c, with acquire ordering. It is
// the function form of (*Cell).AtomicLoad. Fetch panics if c was never
// written.
func Fetch(c *Cell) types.Value {
	r := c.AtomicLoad()
	if r == nil {
		panic("atomic fetch of uninitialized cell")
	}
	return r.Value()
}

// CAS is the function form of (*Cell).CompareAndSwap.
func CAS(c *Cell, expected *Ref, v types.Value) (*Ref, error) {
	return c.CompareAndSwap(expected, v)
}
