package runtime

import (
	"math"
	"strings"

	"github.com/craigahobbs/calcscript-go/lang/model"
	"github.com/craigahobbs/calcscript-go/lang/values"
)

// asNumber coerces v to a Number the way the host's native arithmetic
// operators do: numbers pass through, everything else that isn't itself a
// number yields NaN, so that e.g. `1 + null` is NaN rather than a runtime
// fault.
func asNumber(v values.Value) values.Number {
	if n, ok := v.(values.Number); ok {
		return n
	}
	return values.Number(math.NaN())
}

// applyUnary implements the two unary operators.
func applyUnary(op model.UnaryOp, v values.Value) values.Value {
	switch op {
	case model.OpNot:
		return values.Bool(!v.Truth())
	case model.OpNeg:
		return asNumber(v).Neg()
	}
	return values.NullValue
}

// applyBinary implements every non-short-circuit binary operator. && and ||
// are handled by the caller (evalBinary/evalBinaryAsync) before reaching
// here, since they must not evaluate their right operand unconditionally.
func applyBinary(op model.BinaryOp, left, right values.Value) values.Value {
	switch op {
	case model.OpEQ:
		return values.Bool(values.Equal(left, right))
	case model.OpNE:
		return values.Bool(!values.Equal(left, right))
	case model.OpAdd:
		// string + performs concatenation when either operand is a
		// string; otherwise addition is numeric.
		ls, lIsStr := left.(values.String)
		rs, rIsStr := right.(values.String)
		if lIsStr || rIsStr {
			l := string(ls)
			if !lIsStr {
				l = left.String()
			}
			r := string(rs)
			if !rIsStr {
				r = right.String()
			}
			return values.String(l + r)
		}
		return asNumber(left).Add(asNumber(right))
	case model.OpSub:
		return asNumber(left).Sub(asNumber(right))
	case model.OpMul:
		return asNumber(left).Mul(asNumber(right))
	case model.OpDiv:
		return asNumber(left).Div(asNumber(right))
	case model.OpMod:
		return asNumber(left).Mod(asNumber(right))
	case model.OpPow:
		return asNumber(left).Pow(asNumber(right))
	case model.OpLT:
		return values.Bool(compare(left, right) < 0)
	case model.OpLE:
		return values.Bool(compare(left, right) <= 0)
	case model.OpGT:
		return values.Bool(compare(left, right) > 0)
	case model.OpGE:
		return values.Bool(compare(left, right) >= 0)
	}
	return values.NullValue
}

// compare orders two values for <, <=, > and >=: strings compare
// lexicographically when both sides are strings, otherwise both sides
// coerce to numbers (NaN sorts as neither less, equal nor greater, matching
// IEEE-754, so every comparison against it is false, which compare's
// float64 return cannot itself express -- callers only ever ask for <, <=,
// >, >= so a NaN operand simply makes all four false via the strict
// inequalities below).
func compare(left, right values.Value) float64 {
	if ls, ok := left.(values.String); ok {
		if rs, ok := right.(values.String); ok {
			return float64(strings.Compare(string(ls), string(rs)))
		}
	}
	return float64(asNumber(left)) - float64(asNumber(right))
}
