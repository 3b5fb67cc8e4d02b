package types

import (
	"fmt"
)

// Float is the type of a floating point number.
type Float float64

var _ Value = Float(0)

func (f Float) String() string {
	return fmt.Sprintf("%g", f)
}

func (f Float) Type() string { return "float" }
func (f Float) Truth() Bool  { return f != 0.0 }
