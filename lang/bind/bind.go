// Package bind implements the binding table: the mapping from names to
// cells that the evaluator resolves variables through. A name is bound
// either to a cell (the normal, assignable case) or directly to a value (an
// unboxed, immutable binding). Rebinding a name replaces which cell the
// name refers to and never mutates any cell, so other names bound to the
// old cell keep observing it.
package bind

import (
	"fmt"
	"sync"

	"github.com/dolthub/swiss"
	"github.com/mna/sepal/lang/cell"
	"github.com/mna/sepal/lang/types"
)

// A Binding associates a name with a cell, or directly with a value for an
// unboxed binding. The zero Binding is unboxed nil.
type Binding struct {
	c *cell.Cell
	v types.Value
}

// Cell returns the bound cell, nil for an unboxed binding.
func (b Binding) Cell() *cell.Cell { return b.c }

// Value reads through the binding: the cell's current value for a boxed
// binding (a plain load; go through the cell's atomic accessors for
// cross-goroutine visibility), the bound value itself for an unboxed one.
// A boxed binding whose cell was never written reads as Nil.
func (b Binding) Value() types.Value {
	if b.c != nil {
		if r := b.c.Load(); r != nil {
			return r.Value()
		}
		return types.Nil
	}
	return b.v
}

// A Table maps names to bindings. The table serializes binding creation,
// rebinding and lookup under its own lock; reads and writes of bound cells
// never involve the table, the cells themselves are the synchronization
// boundary.
type Table struct {
	mu sync.Mutex
	m  *swiss.Map[string, Binding]
}

// NewTable returns a table with initial capacity for at least size
// bindings.
func NewTable(size int) *Table {
	return &Table{m: swiss.NewMap[string, Binding](uint32(size))}
}

// Bind binds name to c, replacing any previous binding of that name. The
// previous binding's cell, if any, is not mutated.
func (t *Table) Bind(name string, c *cell.Cell) {
	t.mu.Lock()
	t.m.Put(name, Binding{c: c})
	t.mu.Unlock()
}

// BindValue binds name directly to v, with no cell. The binding is
// immutable: Assign on it fails with an UnboxedError.
func (t *Table) BindValue(name string, v types.Value) {
	t.mu.Lock()
	t.m.Put(name, Binding{v: v})
	t.mu.Unlock()
}

// Lookup returns the binding of name.
func (t *Table) Lookup(name string) (Binding, bool) {
	t.mu.Lock()
	b, ok := t.m.Get(name)
	t.mu.Unlock()
	return b, ok
}

// Len returns the number of bound names.
func (t *Table) Len() int {
	t.mu.Lock()
	n := t.m.Count()
	t.mu.Unlock()
	return n
}

// Assign stores v through the binding of name, with a plain store into the
// bound cell. It fails with an UnboxedError if name is bound unboxed, with
// a cell.ConstraintError if v violates the cell's constraint, and with an
// unbound-name error if name is not bound at all.
func (t *Table) Assign(name string, v types.Value) error {
	b, ok := t.Lookup(name)
	if !ok {
		return fmt.Errorf("assignment to unbound name %s", name)
	}
	if b.c == nil {
		return UnboxedError(name)
	}
	return b.c.Store(v)
}

// EnsureCell returns the cell bound to name, creating an unconstrained cell
// holding init and binding it first if name is unbound. Creation is
// serialized under the table lock: concurrent callers observe exactly one
// cell per name, which is the explicit, race-free form of
// create-on-first-assignment. EnsureCell fails if name is bound unboxed.
func (t *Table) EnsureCell(name string, init types.Value) (*cell.Cell, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if b, ok := t.m.Get(name); ok {
		if b.c == nil {
			return nil, UnboxedError(name)
		}
		return b.c, nil
	}
	c := cell.NewCell(init)
	t.m.Put(name, Binding{c: c})
	return c, nil
}

// An UnboxedError reports an assignment through a name bound directly to a
// value, with no cell to assign into.
type UnboxedError string

func (e UnboxedError) Error() string {
	return fmt.Sprintf("cannot assign to unboxed binding %s", string(e))
}
