package runtime

import (
	"context"
	"errors"

	"github.com/craigahobbs/calcscript-go/errs"
	"github.com/craigahobbs/calcscript-go/lang/env"
	"github.com/craigahobbs/calcscript-go/lang/values"
)

// Call invokes callee with args under st. The callee is handed the
// evaluated argument array and the in-effect options record; a RuntimeError
// it raises propagates unchanged, any other failure is contained (logged,
// call yields null), and a nil result coalesces to null. Grounded on the
// teacher's machine.call (lang/machine/machine.go), generalized from a
// bytecode call frame push to a direct Go call dispatching on whether
// callee is host-native or script-defined.
func Call(ctx context.Context, callee values.Function, args []values.Value, st *State) (values.Value, error) {
	v, err := invoke(ctx, callee, args, st)
	if err != nil {
		var rerr *errs.RuntimeError
		if errors.As(err, &rerr) {
			return nil, rerr
		}
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
			return nil, err
		}
		st.Opts.Log(callFailureMessage(calleeName(callee), err))
		return values.NullValue, nil
	}
	if v == nil {
		return values.NullValue, nil
	}
	return v, nil
}

func invoke(ctx context.Context, callee values.Function, args []values.Value, st *State) (values.Value, error) {
	switch fn := callee.(type) {
	case *values.HostFunction:
		return fn.Fn(ctx, args, st.Opts)
	case *ScriptFunction:
		return callScriptFunction(ctx, fn, args, st)
	}
	return values.NullValue, nil
}

// callScriptFunction runs a user-defined function's body against a fresh
// locals table bound from args, sharing fn's closed-over globals table and
// the caller's statement counter and built-ins: user functions close over
// globals by reference, and the statement quota is shared across nested
// calls.
func callScriptFunction(ctx context.Context, fn *ScriptFunction, args []values.Value, st *State) (values.Value, error) {
	locals := fn.bindArgs(args)
	callState := st.withScope(&env.Scope{Locals: locals, Globals: fn.Globals})
	if fn.Async {
		return ExecuteAsync(ctx, fn.Statements, callState)
	}
	return Execute(ctx, fn.Statements, callState)
}

func calleeName(callee values.Function) string {
	switch fn := callee.(type) {
	case *values.HostFunction:
		return fn.Name
	case *ScriptFunction:
		return fn.Name
	}
	return "?"
}

func callFailureMessage(name string, err error) string {
	return `Error: Function "` + name + `" failed with error: ` + err.Error()
}
