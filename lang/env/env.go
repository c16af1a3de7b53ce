// Package env implements the runtime's name-resolution environment: the
// (locals, globals) pair a script executes against, plus the host-supplied
// built-in function tables consulted as a third, read-only tier. Grounded
// on the teacher's lang/machine/universe.go Universe/IsUniverse pair,
// generalized from one static built-in table to two host-supplied tables
// (expression built-ins and script built-ins).
package env

import (
	"github.com/dolthub/swiss"

	"github.com/craigahobbs/calcscript-go/lang/values"
)

// Table is the name -> value mapping used for both locals and globals. It is
// backed by a swiss.Map rather than a plain Go map for the same reason the
// teacher backs its machine.Map with one: flat hashing, allocated and
// consulted on the hot path of every variable lookup and every function
// call's parameter binding.
type Table struct {
	m *swiss.Map[string, values.Value]
}

// NewTable returns an empty table with initial capacity for size entries.
func NewTable(size int) *Table {
	if size < 0 {
		size = 0
	}
	return &Table{m: swiss.NewMap[string, values.Value](uint32(size))}
}

// Get returns the value bound to name, or (nil, false) if unbound.
func (t *Table) Get(name string) (values.Value, bool) {
	if t == nil {
		return nil, false
	}
	return t.m.Get(name)
}

// Set binds name to v, overwriting any previous binding.
func (t *Table) Set(name string, v values.Value) {
	t.m.Put(name, v)
}

// Scope is the (locals, globals) pair an evaluation runs against. Locals is
// nil at top-level script scope and inside an include: locals are absent
// there. Globals is always non-nil and is shared, by reference, across the
// whole execution including through include and user-function closures.
type Scope struct {
	Locals  *Table // nil at top level and inside include
	Globals *Table
}

// NewGlobalScope returns a Scope with no locals and the given, possibly
// freshly-created, globals table.
func NewGlobalScope(globals *Table) *Scope {
	return &Scope{Globals: globals}
}

// Lookup resolves name against locals (if present) then globals: a name
// resolves to locals first, else globals. It does not consult built-ins;
// callers in expression context do that separately via Builtins, only when
// built-ins are not shadowed.
func (s *Scope) Lookup(name string) (values.Value, bool) {
	if s.Locals != nil {
		if v, ok := s.Locals.Get(name); ok {
			return v, true
		}
	}
	return s.Globals.Get(name)
}

// Assign writes v into locals if present, else into globals, matching the
// `assign` statement's dispatch rule.
func (s *Scope) Assign(name string, v values.Value) {
	if s.Locals != nil {
		s.Locals.Set(name, v)
		return
	}
	s.Globals.Set(name, v)
}

// Builtins is the pair of read-only, host-supplied built-in function tables
// (expression-level and script-level), consulted after locals/globals and
// only when the caller's includeBuiltins flag is set.
type Builtins struct {
	Expr   map[string]*values.HostFunction
	Script map[string]*values.HostFunction
}

// Lookup resolves name against the expression built-in table.
func (b Builtins) Lookup(name string) (*values.HostFunction, bool) {
	if b.Expr == nil {
		return nil, false
	}
	fn, ok := b.Expr[name]
	return fn, ok
}

// LookupScript resolves name against the script built-in table (the table
// InstallScriptLibrary copies into globals).
func (b Builtins) LookupScript(name string) (*values.HostFunction, bool) {
	if b.Script == nil {
		return nil, false
	}
	fn, ok := b.Script[name]
	return fn, ok
}

// InstallScriptLibrary injects every entry of b.Script into globals without
// overwriting keys already present, so a script may shadow a script-level
// built-in by declaring its own function or global of the same name.
func (b Builtins) InstallScriptLibrary(globals *Table) {
	for name, fn := range b.Script {
		if _, exists := globals.Get(name); !exists {
			globals.Set(name, fn)
		}
	}
}
