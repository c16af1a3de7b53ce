package runtime

import (
	"context"
	"fmt"

	"github.com/craigahobbs/calcscript-go/errs"
	"github.com/craigahobbs/calcscript-go/lang/model"
	"github.com/craigahobbs/calcscript-go/lang/values"
)

// Evaluate recursively evaluates expr against st, synchronously.
// includeBuiltins controls whether an unresolved function name may fall
// back to the host's built-in expression function table.
func Evaluate(ctx context.Context, expr model.Expr, st *State, includeBuiltins bool) (values.Value, error) {
	switch e := expr.(type) {
	case *model.NumberExpr:
		return values.Number(e.Value), nil

	case *model.StringExpr:
		return values.String(e.Value), nil

	case *model.VariableExpr:
		return lookupVariable(e.Name, st), nil

	case *model.UnaryExpr:
		v, err := Evaluate(ctx, e.Expr, st, includeBuiltins)
		if err != nil {
			return nil, err
		}
		return applyUnary(e.Op, v), nil

	case *model.GroupExpr:
		return Evaluate(ctx, e.Expr, st, includeBuiltins)

	case *model.BinaryExpr:
		return evalBinary(ctx, e, st, includeBuiltins)

	case *model.FunctionExpr:
		return evalCall(ctx, e, st, includeBuiltins)
	}
	panic(fmt.Sprintf("runtime: unrecognized expression type %T", expr))
}

// lookupVariable resolves a variable reference: the three reserved
// identifiers first, then locals (if present), then globals; an undefined
// name yields null rather than an error.
func lookupVariable(name string, st *State) values.Value {
	switch name {
	case "null":
		return values.NullValue
	case "false":
		return values.False
	case "true":
		return values.True
	}
	if v, ok := st.Scope.Lookup(name); ok {
		return v
	}
	return values.NullValue
}

func evalBinary(ctx context.Context, e *model.BinaryExpr, st *State, includeBuiltins bool) (values.Value, error) {
	left, err := Evaluate(ctx, e.Left, st, includeBuiltins)
	if err != nil {
		return nil, err
	}
	switch e.Op {
	case model.OpAnd:
		if !left.Truth() {
			return left, nil
		}
		return Evaluate(ctx, e.Right, st, includeBuiltins)
	case model.OpOr:
		if left.Truth() {
			return left, nil
		}
		return Evaluate(ctx, e.Right, st, includeBuiltins)
	}
	right, err := Evaluate(ctx, e.Right, st, includeBuiltins)
	if err != nil {
		return nil, err
	}
	return applyBinary(e.Op, left, right), nil
}

// evalCall implements function-call semantics: evaluate arguments eagerly
// (except for the lazy "if" special form), resolve the callee by name, and
// invoke it.
func evalCall(ctx context.Context, e *model.FunctionExpr, st *State, includeBuiltins bool) (values.Value, error) {
	if e.Name == "if" {
		return evalIf(ctx, e, st, includeBuiltins)
	}

	args := make([]values.Value, len(e.Args))
	for i, a := range e.Args {
		v, err := Evaluate(ctx, a, st, includeBuiltins)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	if callee, ok := resolveCallee(e.Name, st, includeBuiltins); ok {
		return Call(ctx, callee, args, st)
	}
	if v, ok := globalAccessor(e.Name, st, args); ok {
		return v, nil
	}
	return nil, errs.NewRuntimeError(`Undefined function "%s"`, e.Name)
}

// evalIf implements the lazy special form `if(cond, then, else)`: only the
// selected branch is evaluated.
func evalIf(ctx context.Context, e *model.FunctionExpr, st *State, includeBuiltins bool) (values.Value, error) {
	if len(e.Args) == 0 {
		return values.NullValue, nil
	}
	cond, err := Evaluate(ctx, e.Args[0], st, includeBuiltins)
	if err != nil {
		return nil, err
	}
	if cond.Truth() {
		if len(e.Args) > 1 {
			return Evaluate(ctx, e.Args[1], st, includeBuiltins)
		}
		return values.NullValue, nil
	}
	if len(e.Args) > 2 {
		return Evaluate(ctx, e.Args[2], st, includeBuiltins)
	}
	return values.NullValue, nil
}

// resolveCallee resolves a call's callee by name: locals, then globals,
// then (if includeBuiltins) the built-in expression functions.
func resolveCallee(name string, st *State, includeBuiltins bool) (values.Function, bool) {
	if v, ok := st.Scope.Lookup(name); ok {
		if fn, ok := v.(values.Function); ok {
			return fn, true
		}
	}
	if includeBuiltins {
		if fn, ok := st.Builtins.Lookup(name); ok {
			return fn, true
		}
	}
	return nil, false
}

// globalAccessor implements the two built-in accessors consulted as the
// resolution fallback before a call is declared undefined: getGlobal(name)
// reads the globals map directly, setGlobal(name, value) writes it and
// returns the assigned value.
func globalAccessor(name string, st *State, args []values.Value) (values.Value, bool) {
	switch name {
	case "getGlobal":
		if len(args) == 0 {
			return values.NullValue, true
		}
		key, ok := args[0].(values.String)
		if !ok {
			return values.NullValue, true
		}
		if v, ok := st.Scope.Globals.Get(string(key)); ok {
			return v, true
		}
		return values.NullValue, true
	case "setGlobal":
		if len(args) == 0 {
			return values.NullValue, true
		}
		key, ok := args[0].(values.String)
		if !ok {
			return values.NullValue, true
		}
		v := values.Value(values.NullValue)
		if len(args) > 1 {
			v = args[1]
		}
		st.Scope.Globals.Set(string(key), v)
		return v, true
	}
	return nil, false
}
