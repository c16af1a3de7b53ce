// Package runtime implements the CalcScript tree-walking runtime: the
// statement executor, the synchronous and asynchronous expression
// evaluators, the async-ness predicate, function-call semantics and include.
// Grounded throughout on the teacher's lang/machine package (the VM that
// walks compiled bytecode), generalized from a flat opcode switch over a
// program counter to a type switch over lang/model's statement and
// expression trees.
package runtime

import (
	"github.com/craigahobbs/calcscript-go/lang/env"
	"github.com/craigahobbs/calcscript-go/errs"
	"github.com/craigahobbs/calcscript-go/lang/host"
)

// State bundles the parameters threaded through every statement and
// expression evaluation: the current (locals, globals) scope, the
// host-supplied built-in tables, and the execution's options. Grounded on
// the teacher's Thread type (lang/machine/thread.go), trimmed to the fields
// CalcScript's dynamic-scoping, non-bytecode runtime actually needs.
type State struct {
	Scope    *env.Scope
	Builtins env.Builtins
	Opts     *host.Options

	// Counter is the address of the top-level Options.StatementCount field,
	// shared unchanged across every clone of Options that Include creates
	// (see host.Options.StatementCount's doc comment) so the statement quota
	// stays a single counter for the whole execution, including nested
	// includes and calls.
	Counter *int
}

// withScope returns a copy of st using a different scope but the same
// builtins, options and counter; used when entering a user function call.
func (st *State) withScope(s *env.Scope) *State {
	return &State{Scope: s, Builtins: st.Builtins, Opts: st.Opts, Counter: st.Counter}
}

// withOpts returns a copy of st using different options but the same scope,
// builtins and counter; used by Include to swap in a URLFn-overridden clone
// of Options without disturbing statement counting.
func (st *State) withOpts(o *host.Options) *State {
	return &State{Scope: st.Scope, Builtins: st.Builtins, Opts: o, Counter: st.Counter}
}

// countStatement increments the shared statement counter and fails with a
// RuntimeError once it exceeds Opts.MaxStatements. A MaxStatements <= 0
// disables the quota.
func (st *State) countStatement() error {
	*st.Counter++
	if st.Opts.MaxStatements > 0 && *st.Counter > st.Opts.MaxStatements {
		return errs.NewRuntimeError("Exceeded maximum script statements (%d)", st.Opts.MaxStatements)
	}
	return nil
}
