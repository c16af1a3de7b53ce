// Package stdlib implements the host-supplied built-in function tables
// consulted as a third, read-only lookup tier: a small set of
// expression-level built-ins (arithmetic/array/string helpers) and one
// script-level built-in, debugLog. Grounded on the general shape of the
// teacher's lang/machine/universe.go Universe table (a static name ->
// native-function map installed ahead of any user code), generalized from
// Starlark's built-ins to CalcScript's.
package stdlib

import (
	"context"
	"fmt"
	"math"

	"github.com/craigahobbs/calcscript-go/lang/env"
	"github.com/craigahobbs/calcscript-go/lang/host"
	"github.com/craigahobbs/calcscript-go/lang/values"
)

// Builtins returns the expression- and script-level built-in tables a host
// embedding passes to the runtime entry points as an env.Builtins.
func Builtins() env.Builtins {
	return env.Builtins{
		Expr:   exprBuiltins(),
		Script: scriptBuiltins(),
	}
}

func exprBuiltins() map[string]*values.HostFunction {
	return map[string]*values.HostFunction{
		"abs":   values.NewHostFunction("abs", fn1(math.Abs)),
		"ceil":  values.NewHostFunction("ceil", fn1(math.Ceil)),
		"floor": values.NewHostFunction("floor", fn1(math.Floor)),
		"round": values.NewHostFunction("round", fn1(math.Round)),
		"sqrt":  values.NewHostFunction("sqrt", fn1(math.Sqrt)),
		"min":   values.NewHostFunction("min", minFn),
		"max":   values.NewHostFunction("max", maxFn),
		"add":   values.NewHostFunction("add", addFn),
		"atan2": values.NewHostFunction("atan2", atan2Fn),
		"len":   values.NewHostFunction("len", lenFn),
	}
}

func scriptBuiltins() map[string]*values.HostFunction {
	return map[string]*values.HostFunction{
		"debugLog": values.NewHostFunction("debugLog", debugLogFn),
	}
}

func argNumber(args []values.Value, i int) float64 {
	if i >= len(args) {
		return math.NaN()
	}
	n, ok := args[i].(values.Number)
	if !ok {
		return math.NaN()
	}
	return float64(n)
}

func fn1(f func(float64) float64) values.HostFunc {
	return func(_ context.Context, args []values.Value, _ *host.Options) (values.Value, error) {
		return values.Number(f(argNumber(args, 0))), nil
	}
}

func minFn(_ context.Context, args []values.Value, _ *host.Options) (values.Value, error) {
	if len(args) == 0 {
		return values.NullValue, nil
	}
	m := argNumber(args, 0)
	for i := 1; i < len(args); i++ {
		if v := argNumber(args, i); v < m {
			m = v
		}
	}
	return values.Number(m), nil
}

func maxFn(_ context.Context, args []values.Value, _ *host.Options) (values.Value, error) {
	if len(args) == 0 {
		return values.NullValue, nil
	}
	m := argNumber(args, 0)
	for i := 1; i < len(args); i++ {
		if v := argNumber(args, i); v > m {
			m = v
		}
	}
	return values.Number(m), nil
}

// addFn sums its numeric arguments. Useful for observing, via a pair of
// slow host callables as its arguments, that argument evaluation under the
// async evaluator runs in parallel rather than sequentially.
func addFn(_ context.Context, args []values.Value, _ *host.Options) (values.Value, error) {
	var sum float64
	for i := range args {
		sum += argNumber(args, i)
	}
	return values.Number(sum), nil
}

// atan2Fn preserves a deliberate single-argument quirk (see DESIGN.md's
// Open Questions): it accepts one array argument and forwards only its
// first element (or the bare scalar, if not an array) to math.Atan2's y
// parameter with x left zero, rather than requiring two scalar arguments.
// Not a bug fix target -- faithful mirrors preserve the observable behavior.
func atan2Fn(_ context.Context, args []values.Value, _ *host.Options) (values.Value, error) {
	if len(args) == 0 {
		return values.Number(math.NaN()), nil
	}
	if arr, ok := args[0].(*values.Array); ok {
		if arr.Len() == 0 {
			return values.Number(math.NaN()), nil
		}
		y := argNumber(arr.Items(), 0)
		return values.Number(math.Atan2(y, 0)), nil
	}
	return values.Number(math.Atan2(argNumber(args, 0), 0)), nil
}

func lenFn(_ context.Context, args []values.Value, _ *host.Options) (values.Value, error) {
	if len(args) == 0 {
		return values.Number(0), nil
	}
	switch v := args[0].(type) {
	case values.String:
		return values.Number(len(v)), nil
	case *values.Array:
		return values.Number(v.Len()), nil
	case *values.Object:
		return values.Number(v.Len()), nil
	}
	return values.Number(0), nil
}

// debugLogFn writes its arguments to the in-effect options' log sink and
// always returns null, never failing, so it can never itself trigger the
// call-failure containment path.
func debugLogFn(_ context.Context, args []values.Value, opts *host.Options) (values.Value, error) {
	parts := make([]any, len(args))
	for i, a := range args {
		parts[i] = a.String()
	}
	opts.Log(fmt.Sprint(parts...))
	return values.NullValue, nil
}
