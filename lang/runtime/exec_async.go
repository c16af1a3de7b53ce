package runtime

import (
	"context"
	"errors"
	"fmt"

	"github.com/craigahobbs/calcscript-go/errs"
	"github.com/craigahobbs/calcscript-go/lang/env"
	"github.com/craigahobbs/calcscript-go/lang/model"
	"github.com/craigahobbs/calcscript-go/lang/values"
)

// ExecuteAsync is the async mirror of Execute: statements still run in
// strict textual order (only expression evaluation and argument joins gain
// concurrency), so its dispatch loop is identical to Execute's apart from
// routing expressions through EvaluateAsync and nested includes through
// IncludeAsync.
func ExecuteAsync(ctx context.Context, statements []model.Statement, st *State) (values.Value, error) {
	var labels map[string]int

	i := 0
	for i < len(statements) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := st.countStatement(); err != nil {
			return nil, err
		}

		switch s := statements[i].(type) {
		case *model.AssignStmt:
			v, err := EvaluateAsync(ctx, s.Expr, st, true)
			if err != nil {
				return nil, err
			}
			st.Scope.Assign(s.Name, v)
			i++

		case *model.FunctionStmt:
			st.Scope.Globals.Set(s.Name, &ScriptFunction{
				Name:       s.Name,
				Args:       s.Args,
				Async:      s.Async,
				Statements: s.Statements,
				Globals:    st.Scope.Globals,
			})
			i++

		case *model.JumpStmt:
			take := true
			if s.Expr != nil {
				v, err := EvaluateAsync(ctx, s.Expr, st, true)
				if err != nil {
					return nil, err
				}
				take = v.Truth()
			}
			if !take {
				i++
				continue
			}
			if labels == nil {
				labels = resolveLabels(statements)
			}
			idx, ok := labels[s.Label]
			if !ok {
				return nil, errs.NewRuntimeError(`Unknown jump label "%s"`, s.Label)
			}
			i = idx

		case *model.ReturnStmt:
			if s.Expr == nil {
				return values.NullValue, nil
			}
			return EvaluateAsync(ctx, s.Expr, st, true)

		case *model.ExprStmt:
			if _, err := EvaluateAsync(ctx, s.Expr, st, true); err != nil {
				return nil, err
			}
			i++

		case *model.LabelStmt:
			i++

		case *model.IncludeStmt:
			if err := IncludeAsync(ctx, s, st); err != nil {
				return nil, err
			}
			i++

		default:
			panic(fmt.Sprintf("runtime: unrecognized statement type %T", s))
		}
	}
	return values.NullValue, nil
}

// CallAsync is the async mirror of Call: a script-defined callee's body runs
// under ExecuteAsync so that any async calls it makes in turn keep
// suspending cooperatively, rather than silently dropping back to the sync
// evaluator once inside the callee.
func CallAsync(ctx context.Context, callee values.Function, args []values.Value, st *State) (values.Value, error) {
	v, err := invokeAsync(ctx, callee, args, st)
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

func invokeAsync(ctx context.Context, callee values.Function, args []values.Value, st *State) (values.Value, error) {
	switch fn := callee.(type) {
	case *values.HostFunction:
		return fn.Fn(ctx, args, st.Opts)
	case *ScriptFunction:
		locals := fn.bindArgs(args)
		callState := st.withScope(&env.Scope{Locals: locals, Globals: fn.Globals})
		return ExecuteAsync(ctx, fn.Statements, callState)
	}
	return values.NullValue, nil
}
