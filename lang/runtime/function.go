package runtime

import (
	"github.com/craigahobbs/calcscript-go/lang/env"
	"github.com/craigahobbs/calcscript-go/lang/model"
	"github.com/craigahobbs/calcscript-go/lang/values"
)

// ScriptFunction is a user-defined callable created by a `function`
// statement. It closes over the globals table it was defined against by
// reference; it does not capture its defining scope's locals. Grounded on
// the teacher's machine.Function/Module split (lang/machine/function.go),
// generalized from "shares a compiled module" to "closes over a globals
// table."
type ScriptFunction struct {
	Name       string
	Args       []string
	Async      bool
	Statements []model.Statement
	Globals    *env.Table
}

func (f *ScriptFunction) String() string { return "<function " + f.Name + ">" }
func (f *ScriptFunction) Type() string   { return "function" }
func (f *ScriptFunction) Truth() bool    { return true }
func (f *ScriptFunction) IsAsync() bool  { return f.Async }

var _ values.Function = (*ScriptFunction)(nil)

// bindArgs builds the fresh locals table for a call to f: formal parameters
// are assigned to the positional argument at the same index, missing
// arguments bind to null, extra arguments are discarded.
func (f *ScriptFunction) bindArgs(args []values.Value) *env.Table {
	locals := env.NewTable(len(f.Args))
	for i, name := range f.Args {
		v := values.Value(values.NullValue)
		if i < len(args) {
			v = args[i]
		}
		locals.Set(name, v)
	}
	return locals
}
