package runtime

import (
	"context"

	"github.com/craigahobbs/calcscript-go/errs"
	"github.com/craigahobbs/calcscript-go/lang/model"
	"github.com/craigahobbs/calcscript-go/lang/values"
)

// EvaluateAsync is the async mirror of Evaluate. A subtree that IsAsync
// reports as synchronous is delegated whole to Evaluate as a fast path.
// Otherwise, non-short-circuit call arguments are evaluated concurrently
// (join semantics: await all); short-circuit operators and `if` remain
// strictly sequential.
func EvaluateAsync(ctx context.Context, expr model.Expr, st *State, includeBuiltins bool) (values.Value, error) {
	if !IsAsync(expr, st) {
		return Evaluate(ctx, expr, st, includeBuiltins)
	}

	switch e := expr.(type) {
	case *model.UnaryExpr:
		v, err := EvaluateAsync(ctx, e.Expr, st, includeBuiltins)
		if err != nil {
			return nil, err
		}
		return applyUnary(e.Op, v), nil

	case *model.GroupExpr:
		return EvaluateAsync(ctx, e.Expr, st, includeBuiltins)

	case *model.BinaryExpr:
		return evalBinaryAsync(ctx, e, st, includeBuiltins)

	case *model.FunctionExpr:
		return evalCallAsync(ctx, e, st, includeBuiltins)
	}
	return Evaluate(ctx, expr, st, includeBuiltins)
}

func evalBinaryAsync(ctx context.Context, e *model.BinaryExpr, st *State, includeBuiltins bool) (values.Value, error) {
	left, err := EvaluateAsync(ctx, e.Left, st, includeBuiltins)
	if err != nil {
		return nil, err
	}
	switch e.Op {
	case model.OpAnd:
		if !left.Truth() {
			return left, nil
		}
		return EvaluateAsync(ctx, e.Right, st, includeBuiltins)
	case model.OpOr:
		if left.Truth() {
			return left, nil
		}
		return EvaluateAsync(ctx, e.Right, st, includeBuiltins)
	}
	right, err := EvaluateAsync(ctx, e.Right, st, includeBuiltins)
	if err != nil {
		return nil, err
	}
	return applyBinary(e.Op, left, right), nil
}

// evalCallAsync mirrors evalCall, joining argument evaluations evaluated in
// parallel goroutines: arguments to a non-"if" call are evaluated
// concurrently. `if` keeps its lazy, single-branch evaluation unchanged
// (handled by evalIfAsync below, itself recursing into EvaluateAsync).
func evalCallAsync(ctx context.Context, e *model.FunctionExpr, st *State, includeBuiltins bool) (values.Value, error) {
	if e.Name == "if" {
		return evalIfAsync(ctx, e, st, includeBuiltins)
	}

	args, err := evalArgsParallel(ctx, e.Args, st, includeBuiltins)
	if err != nil {
		return nil, err
	}

	if callee, ok := resolveCallee(e.Name, st, includeBuiltins); ok {
		return CallAsync(ctx, callee, args, st)
	}
	if v, ok := globalAccessor(e.Name, st, args); ok {
		return v, nil
	}
	return nil, errs.NewRuntimeError(`Undefined function "%s"`, e.Name)
}

func evalIfAsync(ctx context.Context, e *model.FunctionExpr, st *State, includeBuiltins bool) (values.Value, error) {
	if len(e.Args) == 0 {
		return values.NullValue, nil
	}
	cond, err := EvaluateAsync(ctx, e.Args[0], st, includeBuiltins)
	if err != nil {
		return nil, err
	}
	if cond.Truth() {
		if len(e.Args) > 1 {
			return EvaluateAsync(ctx, e.Args[1], st, includeBuiltins)
		}
		return values.NullValue, nil
	}
	if len(e.Args) > 2 {
		return EvaluateAsync(ctx, e.Args[2], st, includeBuiltins)
	}
	return values.NullValue, nil
}

// argResult carries one parallel argument evaluation's outcome back to its
// index, since goroutines complete in arbitrary order but the argument
// array must preserve textual position.
type argResult struct {
	value values.Value
	err   error
}

func evalArgsParallel(ctx context.Context, exprs []model.Expr, st *State, includeBuiltins bool) ([]values.Value, error) {
	if len(exprs) == 0 {
		return nil, nil
	}
	results := make([]argResult, len(exprs))
	done := make(chan int, len(exprs))
	for i, a := range exprs {
		go func(i int, a model.Expr) {
			v, err := EvaluateAsync(ctx, a, st, includeBuiltins)
			results[i] = argResult{value: v, err: err}
			done <- i
		}(i, a)
	}
	for range exprs {
		<-done
	}
	args := make([]values.Value, len(exprs))
	for i, r := range results {
		if r.err != nil {
			return nil, r.err
		}
		args[i] = r.value
	}
	return args, nil
}
