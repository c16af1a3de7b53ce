package values

import (
	"context"

	"github.com/craigahobbs/calcscript-go/lang/host"
)

// Function is the interface implemented by both callable kinds CalcScript
// values may hold: HostFunction (provided by the host library) and
// ScriptFunction (declared by a `function` statement). Grounded on the
// teacher's Function/Callable split (lang/machine/function.go,
// lang/machine/impl.go), generalized from bytecode-function-or-native to
// script-function-or-native.
type Function interface {
	Value
	// IsAsync reports whether this callable must be invoked through the
	// async call path (host-native async functions, or script functions
	// declared with the async flag).
	IsAsync() bool
}

// HostFunc is the signature every host-native callable implements: it
// receives the evaluated argument array and the options record in effect
// for the current execution. ctx carries cancellation for callables that
// perform I/O. The async evaluator evaluates each argument of a call whose
// subtree contains an async callable in its own goroutine; subtrees without
// one are evaluated sequentially on the synchronous path.
type HostFunc func(ctx context.Context, args []Value, opts *host.Options) (Value, error)

// HostFunction wraps a Go function as a CalcScript callable.
type HostFunction struct {
	Name  string
	Fn    HostFunc
	Async bool
}

func NewHostFunction(name string, fn HostFunc) *HostFunction {
	return &HostFunction{Name: name, Fn: fn}
}

func NewAsyncHostFunction(name string, fn HostFunc) *HostFunction {
	return &HostFunction{Name: name, Fn: fn, Async: true}
}

func (f *HostFunction) String() string { return "<function " + f.Name + ">" }
func (f *HostFunction) Type() string   { return "function" }
func (f *HostFunction) Truth() bool    { return true }
func (f *HostFunction) IsAsync() bool  { return f.Async }

var _ Function = (*HostFunction)(nil)

// ScriptFunction is declared in lang/runtime (as runtime.ScriptFunction),
// not here: a user-defined function's body is a []model.Statement and it
// closes over an *env.Scope's globals table, and values must not import
// either lang/model or lang/env to avoid a dependency cycle with
// lang/runtime, which imports values itself.
