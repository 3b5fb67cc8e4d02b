package types

import (
	"strconv"
)

// Int is the type of an integer value.
type Int int64

var _ Value = Int(0)

func (i Int) String() string {
	return strconv.FormatInt(int64(i), 10)
}

func (i Int) Type() string { return "int" }
func (i Int) Truth() Bool  { return i != 0 }
