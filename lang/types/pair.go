package types

import (
	"strings"
)

// A Pair is an immutable cons node: a head value and a tail pointing at the
// rest of the list. The nil *Pair is the empty list. Because pairs are
// immutable, a list built by prepending new heads can be published between
// threads through a cell with no additional locking.
type Pair struct {
	head Value
	tail *Pair
}

// Pair is a Value.
var _ Value = (*Pair)(nil)

// Cons returns a new pair with the given head prepended to tail. Tail may be
// nil for the empty list.
func Cons(head Value, tail *Pair) *Pair {
	return &Pair{head: head, tail: tail}
}

// Head returns the pair's value. It panics on the empty list.
func (p *Pair) Head() Value { return p.head }

// Tail returns the rest of the list, nil for the last node.
func (p *Pair) Tail() *Pair { return p.tail }

// Len returns the number of nodes in the list. It is O(n).
func (p *Pair) Len() int {
	n := 0
	for ; p != nil; p = p.tail {
		n++
	}
	return n
}

func (p *Pair) String() string {
	var sb strings.Builder
	sb.WriteByte('(')
	for n := p; n != nil; n = n.tail {
		if n != p {
			sb.WriteByte(' ')
		}
		sb.WriteString(n.head.String())
	}
	sb.WriteByte(')')
	return sb.String()
}

func (p *Pair) Type() string { return "pair" }
func (p *Pair) Truth() Bool  { return p != nil }
