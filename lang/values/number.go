package values

import (
	"math"
	"strconv"
)

// Number is the type of a numeric value. It follows IEEE-754 double
// semantics: division by zero produces +/-Inf or NaN rather than an error,
// and there is no separate integer representation.
type Number float64

func (n Number) String() string {
	return strconv.FormatFloat(float64(n), 'g', -1, 64)
}
func (n Number) Type() string { return "number" }
func (n Number) Truth() bool  { return n != 0 }

// Add implements the numeric + operator (string concatenation is handled at
// the binary-operator dispatch site, see lang/runtime, since it depends on
// the dynamic type of either operand, not just Number's).
func (n Number) Add(o Number) Number { return n + o }
func (n Number) Sub(o Number) Number { return n - o }
func (n Number) Mul(o Number) Number { return n * o }
func (n Number) Div(o Number) Number { return n / o }
func (n Number) Mod(o Number) Number { return Number(math.Mod(float64(n), float64(o))) }
func (n Number) Pow(o Number) Number { return Number(math.Pow(float64(n), float64(o))) }
func (n Number) Neg() Number         { return -n }

func (n Number) Less(o Number) bool         { return n < o }
func (n Number) LessOrEqual(o Number) bool  { return n <= o }
func (n Number) Greater(o Number) bool      { return n > o }
func (n Number) GreaterOrEqual(o Number) bool { return n >= o }
