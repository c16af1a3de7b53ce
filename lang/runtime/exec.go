package runtime

import (
	"context"
	"fmt"

	"github.com/craigahobbs/calcscript-go/errs"
	"github.com/craigahobbs/calcscript-go/lang/model"
	"github.com/craigahobbs/calcscript-go/lang/values"
)

// Execute runs statements sequentially against st, synchronously. It
// returns the value of the first ReturnStmt reached, or null if execution
// falls off the end of the sequence. Grounded on the teacher's machine.run's
// pc-cursor loop (lang/machine/machine.go), generalized from decoding
// bytecode operands to dispatching on model.Statement's concrete type.
func Execute(ctx context.Context, statements []model.Statement, st *State) (values.Value, error) {
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
			v, err := Evaluate(ctx, s.Expr, st, true)
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
				v, err := Evaluate(ctx, s.Expr, st, true)
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
			return Evaluate(ctx, s.Expr, st, true)

		case *model.ExprStmt:
			if _, err := Evaluate(ctx, s.Expr, st, true); err != nil {
				return nil, err
			}
			i++

		case *model.LabelStmt:
			i++

		case *model.IncludeStmt:
			if err := Include(ctx, s, st); err != nil {
				return nil, err
			}
			i++

		default:
			panic(fmt.Sprintf("runtime: unrecognized statement type %T", s))
		}
	}
	return values.NullValue, nil
}
