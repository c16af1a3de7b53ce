package runtime

import (
	"context"
	"time"

	"github.com/craigahobbs/calcscript-go/lang/env"
	"github.com/craigahobbs/calcscript-go/lang/host"
	"github.com/craigahobbs/calcscript-go/lang/model"
	"github.com/craigahobbs/calcscript-go/lang/values"
)

// newEntryState builds the State a top-level entry point runs against:
// globals merged with the script-function library (without overwriting
// caller-supplied bindings), a fresh statement counter, and the caller's
// options (or a default-configured Options when opts is nil).
func newEntryState(globals *env.Table, builtins env.Builtins, opts *host.Options) *State {
	if globals == nil {
		globals = env.NewTable(0)
	}
	builtins.InstallScriptLibrary(globals)

	if opts == nil {
		opts = &host.Options{MaxStatements: host.DefaultMaxStatements}
	}
	opts.StatementCount = 0

	return &State{
		Scope:    env.NewGlobalScope(globals),
		Builtins: builtins,
		Opts:     opts,
		Counter:  &opts.StatementCount,
	}
}

// ExecuteScript is the synchronous entry point,
// executeScript(scriptModel, globals?, options?). It returns the value of
// the top-level sequence's first reached `return`, or null.
func ExecuteScript(ctx context.Context, script *model.Script, globals *env.Table, builtins env.Builtins, opts *host.Options) (values.Value, error) {
	st := newEntryState(globals, builtins, opts)
	start := time.Now()
	v, err := Execute(ctx, script.Statements, st)
	st.Opts.Log("executeScript: " + time.Since(start).String())
	return v, err
}

// ExecuteScriptAsync is ExecuteScript's async mirror.
func ExecuteScriptAsync(ctx context.Context, script *model.Script, globals *env.Table, builtins env.Builtins, opts *host.Options) (values.Value, error) {
	st := newEntryState(globals, builtins, opts)
	start := time.Now()
	v, err := ExecuteAsync(ctx, script.Statements, st)
	st.Opts.Log("executeScriptAsync: " + time.Since(start).String())
	return v, err
}

// EvaluateExpression is the synchronous expression-evaluation entry point.
// globals and locals may be nil; includeBuiltins selects whether an
// unresolved name may fall back to the host's built-in expression
// functions.
func EvaluateExpression(ctx context.Context, expr model.Expr, globals, locals *env.Table, builtins env.Builtins, opts *host.Options, includeBuiltins bool) (values.Value, error) {
	st := exprEntryState(globals, locals, builtins, opts)
	return Evaluate(ctx, expr, st, includeBuiltins)
}

// EvaluateExpressionAsync is EvaluateExpression's async mirror.
func EvaluateExpressionAsync(ctx context.Context, expr model.Expr, globals, locals *env.Table, builtins env.Builtins, opts *host.Options, includeBuiltins bool) (values.Value, error) {
	st := exprEntryState(globals, locals, builtins, opts)
	return EvaluateAsync(ctx, expr, st, includeBuiltins)
}

func exprEntryState(globals, locals *env.Table, builtins env.Builtins, opts *host.Options) *State {
	if globals == nil {
		globals = env.NewTable(0)
	}
	if opts == nil {
		opts = &host.Options{MaxStatements: host.DefaultMaxStatements}
	}
	return &State{
		Scope:    &env.Scope{Locals: locals, Globals: globals},
		Builtins: builtins,
		Opts:     opts,
		Counter:  &opts.StatementCount,
	}
}
