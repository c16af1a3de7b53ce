package values_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/craigahobbs/calcscript-go/lang/values"
)

func TestEqualStrictNoCoercion(t *testing.T) {
	assert.True(t, values.Equal(values.Number(1), values.Number(1)))
	assert.False(t, values.Equal(values.Number(1), values.String("1")))
	assert.False(t, values.Equal(values.NullValue, values.Bool(false)))
	assert.True(t, values.Equal(values.NullValue, values.NullValue))
}

func TestEqualArraysByIdentity(t *testing.T) {
	a := values.NewArray([]values.Value{values.Number(1)})
	b := values.NewArray([]values.Value{values.Number(1)})
	assert.True(t, values.Equal(a, a))
	assert.False(t, values.Equal(a, b))
}

func TestTruthiness(t *testing.T) {
	assert.False(t, values.NullValue.Truth())
	assert.False(t, values.Number(0).Truth())
	assert.True(t, values.Number(1).Truth())
	assert.False(t, values.String("").Truth())
	assert.True(t, values.String("x").Truth())
	assert.True(t, values.NewArray(nil).Truth())
}

func TestObjectPreservesInsertionOrder(t *testing.T) {
	o := values.NewObject(0)
	o.Set("b", values.Number(2))
	o.Set("a", values.Number(1))
	o.Set("b", values.Number(22))
	assert.Equal(t, []string{"b", "a"}, o.Keys())
	v, ok := o.Get("b")
	assert.True(t, ok)
	assert.Equal(t, values.Number(22), v)
}

func TestArraySetPadsWithNull(t *testing.T) {
	a := values.NewArray(nil)
	a.Set(2, values.Number(9))
	assert.Equal(t, 3, a.Len())
	assert.Equal(t, values.NullValue, a.Get(0))
	assert.Equal(t, values.Number(9), a.Get(2))
}
