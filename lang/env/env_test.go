package env_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/craigahobbs/calcscript-go/lang/env"
	"github.com/craigahobbs/calcscript-go/lang/values"
)

func TestScopeLookupLocalsBeforeGlobals(t *testing.T) {
	globals := env.NewTable(0)
	globals.Set("x", values.Number(1))
	scope := &env.Scope{Locals: env.NewTable(0), Globals: globals}
	scope.Locals.Set("x", values.Number(2))

	v, ok := scope.Lookup("x")
	assert.True(t, ok)
	assert.Equal(t, values.Number(2), v)

	v, ok = scope.Lookup("y")
	assert.False(t, ok)
	assert.Nil(t, v)
}

func TestScopeAssignTargetsLocalsWhenPresent(t *testing.T) {
	globals := env.NewTable(0)
	scope := &env.Scope{Locals: env.NewTable(0), Globals: globals}
	scope.Assign("x", values.Number(5))

	_, ok := globals.Get("x")
	assert.False(t, ok)
	v, ok := scope.Locals.Get("x")
	assert.True(t, ok)
	assert.Equal(t, values.Number(5), v)
}

func TestScopeAssignTargetsGlobalsAtTopLevel(t *testing.T) {
	globals := env.NewTable(0)
	scope := env.NewGlobalScope(globals)
	scope.Assign("x", values.Number(5))

	v, ok := globals.Get("x")
	assert.True(t, ok)
	assert.Equal(t, values.Number(5), v)
}

func TestInstallScriptLibraryDoesNotOverwrite(t *testing.T) {
	fn := values.NewHostFunction("debugLog", nil)
	builtins := env.Builtins{Script: map[string]*values.HostFunction{"debugLog": fn}}

	globals := env.NewTable(0)
	globals.Set("debugLog", values.Number(0))
	builtins.InstallScriptLibrary(globals)

	v, ok := globals.Get("debugLog")
	assert.True(t, ok)
	assert.Equal(t, values.Number(0), v)

	globals2 := env.NewTable(0)
	builtins.InstallScriptLibrary(globals2)
	v2, ok := globals2.Get("debugLog")
	assert.True(t, ok)
	assert.Same(t, fn, v2.(*values.HostFunction))
}
