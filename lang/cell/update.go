package cell

import (
	"runtime"

	"github.com/mna/sepal/lang/types"
	"golang.org/x/exp/rand"
)

// spinRounds is the number of failed swap rounds before Update starts
// yielding between attempts.
const spinRounds = 4

// Update applies op to the value held by c under a fetch/compute/swap loop:
// it loads the current ref, computes op on its value, and attempts to swap
// the result in; if another writer got there first it recomputes from the
// winner's value and tries again. On success it returns the proposed (new)
// value. Update panics if c was never written, per the facade's
// pre-initialization rule.
//
// op must be free of side effects: it runs once per round, so a single
// logical update may evaluate it several times under contention
// (at-least-once semantics). If op returns an error, no swap is attempted
// for that round, the cell is left as last observed and the error is
// returned. A ConstraintError from the swap is returned the same way.
//
// The loop is unbounded; under sustained contention an individual caller
// can starve. After a few failed rounds the loop yields the processor with
// a randomized number of Gosched calls so that contending updaters
// decorrelate instead of repeatedly racing in lockstep.
func Update(c *Cell, op func(types.Value) (types.Value, error)) (types.Value, error) {
	observed := c.AtomicLoad()
	if observed == nil {
		panic("atomic update of uninitialized cell")
	}
	for fails := 0; ; fails++ {
		proposed, err := op(observed.Value())
		if err != nil {
			return nil, err
		}
		prev, err := c.CompareAndSwap(observed, proposed)
		if err != nil {
			return nil, err
		}
		if prev == observed {
			return proposed, nil
		}
		observed = prev

		if fails >= spinRounds {
			for n := rand.Intn(fails); n >= 0; n-- {
				runtime.Gosched()
			}
		}
	}
}
