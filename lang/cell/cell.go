// Package cell implements the scalar container of the runtime: a cell is a
// box holding one value indirectly, so that any number of bindings may share
// it and observe mutations through it. The cell is the runtime's sole
// synchronization boundary: its atomic accessors carry acquire/release
// ordering and its compare-and-swap is the primitive lock-free structures
// are built on. No operation spans more than one cell.
package cell

import (
	"fmt"
	"sync/atomic"
	"unsafe"

	"github.com/mna/sepal/lang/types"
)

// A Cell holds a value indirectly, through a *Ref, along with an optional
// declared type constraint. The cell's identity is stable across stores:
// assignment replaces the held ref, never the cell. A cell declared without
// an initial value holds no ref until the first store; atomic use of such a
// cell before that first store is a misuse the cell does not detect (the
// accessors observe a nil ref), callers must initialize before publishing a
// cell to other goroutines.
type Cell struct {
	// constraint is the declared type tag, matched against Value.Type().
	// Empty means unconstrained. Set at creation, never changed.
	constraint string

	// ref is the *Ref currently held. The plain accessors read and write
	// the field directly; the atomic accessors go through sync/atomic.
	ref unsafe.Pointer // *Ref
}

// A cell may itself be stored in a cell. Nesting is permitted but rarely
// what a caller wants.
var _ types.Value = (*Cell)(nil)

// NewCell returns an unconstrained, initialized cell holding v.
func NewCell(v types.Value) *Cell {
	return &Cell{ref: unsafe.Pointer(NewRef(v))}
}

// NewTypedCell returns an initialized cell constrained to the named type,
// holding v. It fails if v does not satisfy the constraint.
func NewTypedCell(typ string, v types.Value) (*Cell, error) {
	c := &Cell{constraint: typ}
	if err := c.check(v); err != nil {
		return nil, err
	}
	c.ref = unsafe.Pointer(NewRef(v))
	return c, nil
}

// NewEmptyCell returns a declared but uninitialized cell constrained to the
// named type (empty for unconstrained). The cell holds no ref until the
// first store; see the Cell documentation for the initialization rule.
func NewEmptyCell(typ string) *Cell {
	return &Cell{constraint: typ}
}

// Constraint returns the cell's declared type constraint, empty if the cell
// is unconstrained.
func (c *Cell) Constraint() string { return c.constraint }

// Initialized reports whether a value has ever been stored in the cell.
func (c *Cell) Initialized() bool {
	return atomic.LoadPointer(&c.ref) != nil
}

// Load returns the currently held ref with a plain, unordered read, nil if
// the cell was never written. It carries no cross-goroutine visibility
// guarantee: a loop polling Load is permitted to never observe a concurrent
// store, and mixing Load with concurrent writers is a data race. Use
// AtomicLoad to synchronize.
func (c *Cell) Load() *Ref {
	return (*Ref)(c.ref)
}

// Store replaces the held ref with a fresh ref for v, as a plain, unordered
// write. Like Load, it provides no cross-goroutine ordering. It fails with
// a ConstraintError if v does not satisfy the cell's constraint, leaving
// the cell unchanged.
func (c *Cell) Store(v types.Value) error {
	if err := c.check(v); err != nil {
		return err
	}
	c.ref = unsafe.Pointer(NewRef(v))
	return nil
}

// AtomicLoad returns the currently held ref with acquire ordering: it
// observes every store that was completed with release ordering before it,
// along with all memory operations that preceded that store on the storing
// goroutine. The load cannot be hoisted out of a polling loop.
func (c *Cell) AtomicLoad() *Ref {
	return (*Ref)(atomic.LoadPointer(&c.ref))
}

// AtomicStore replaces the held ref with a fresh ref for v, with release
// ordering: the store, and everything that preceded it on this goroutine,
// becomes visible to any AtomicLoad that observes it. It fails with a
// ConstraintError under the same rule as Store.
func (c *Cell) AtomicStore(v types.Value) error {
	if err := c.check(v); err != nil {
		return err
	}
	atomic.StorePointer(&c.ref, unsafe.Pointer(NewRef(v)))
	return nil
}

// CompareAndSwap atomically replaces the held ref with a fresh ref for v if
// and only if the held ref is expected (by identity). It returns the
// previous ref observed by the attempt: expected itself when the swap
// happened, otherwise a ref loaded with acquire ordering immediately after
// the failed attempt — some ref that was current at or after that instant,
// which is what a retry loop feeds into its next round. Callers detect
// success by comparing the result against expected.
//
// The constraint is checked before the attempt; on a ConstraintError no
// swap was attempted and the cell is unchanged.
//
// Concurrent CompareAndSwap calls on one cell are linearizable: the
// underlying hardware operation totally orders them.
func (c *Cell) CompareAndSwap(expected *Ref, v types.Value) (*Ref, error) {
	if err := c.check(v); err != nil {
		return nil, err
	}
	next := NewRef(v)
	if atomic.CompareAndSwapPointer(&c.ref, unsafe.Pointer(expected), unsafe.Pointer(next)) {
		return expected, nil
	}
	return (*Ref)(atomic.LoadPointer(&c.ref)), nil
}

func (c *Cell) check(v types.Value) error {
	if c.constraint != "" && v.Type() != c.constraint {
		return ConstraintError{Constraint: c.constraint, Value: v}
	}
	return nil
}

func (c *Cell) String() string    { return fmt.Sprintf("cell(%p)", c) }
func (c *Cell) Type() string      { return "cell" }
func (c *Cell) Truth() types.Bool { return types.True }

// A ConstraintError reports a store of a value that does not satisfy the
// cell's declared type constraint. The value is never coerced.
type ConstraintError struct {
	Constraint string
	Value      types.Value
}

func (e ConstraintError) Error() string {
	return fmt.Sprintf("cannot store %s value %s in cell of %s", e.Value.Type(), e.Value, e.Constraint)
}
