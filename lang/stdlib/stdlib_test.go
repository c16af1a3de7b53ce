package stdlib_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/craigahobbs/calcscript-go/lang/host"
	"github.com/craigahobbs/calcscript-go/lang/stdlib"
	"github.com/craigahobbs/calcscript-go/lang/values"
)

func TestBuiltinsIncludeDebugLogAndMath(t *testing.T) {
	b := stdlib.Builtins()

	_, ok := b.LookupScript("debugLog")
	assert.True(t, ok)

	_, ok = b.Lookup("abs")
	assert.True(t, ok)
}

func TestDebugLogLogsAndReturnsNull(t *testing.T) {
	b := stdlib.Builtins()
	fn, ok := b.LookupScript("debugLog")
	require.True(t, ok)

	var logged string
	opts := &host.Options{LogFn: func(line string) { logged = line }}
	v, err := fn.Fn(context.Background(), []values.Value{values.String("x")}, opts)
	require.NoError(t, err)
	assert.Equal(t, values.NullValue, v)
	assert.Equal(t, "x", logged)
}

func TestAtan2SingleArgumentQuirk(t *testing.T) {
	b := stdlib.Builtins()
	fn, ok := b.Lookup("atan2")
	require.True(t, ok)

	arr := values.NewArray([]values.Value{values.Number(1)})
	v, err := fn.Fn(context.Background(), []values.Value{arr}, nil)
	require.NoError(t, err)
	n, ok := v.(values.Number)
	require.True(t, ok)
	assert.InDelta(t, 1.5707963267948966, float64(n), 1e-9) // atan2(1, 0)
}

func TestAddSumsArguments(t *testing.T) {
	b := stdlib.Builtins()
	fn, ok := b.Lookup("add")
	require.True(t, ok)

	v, err := fn.Fn(context.Background(), []values.Value{values.Number(50), values.Number(50)}, nil)
	require.NoError(t, err)
	assert.Equal(t, values.Number(100), v)
}
