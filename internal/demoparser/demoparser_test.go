package demoparser_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/craigahobbs/calcscript-go/internal/demoparser"
	"github.com/craigahobbs/calcscript-go/lang/model"
)

func TestParseArithmeticAssignReturn(t *testing.T) {
	src := "a = 2 + 3 * 4\nreturn a\n"
	script, err := (demoparser.Parser{}).Parse(context.Background(), "https://h/a/b.cs", []byte(src))
	require.NoError(t, err)
	require.Len(t, script.Statements, 2)

	assign, ok := script.Statements[0].(*model.AssignStmt)
	require.True(t, ok)
	assert.Equal(t, "a", assign.Name)

	ret, ok := script.Statements[1].(*model.ReturnStmt)
	require.True(t, ok)
	variable, ok := ret.Expr.(*model.VariableExpr)
	require.True(t, ok)
	assert.Equal(t, "a", variable.Name)
}

func TestParseLabelLoop(t *testing.T) {
	src := "i=0\nlabel loop\ni=i+1\njumpif loop i<5\nreturn i\n"
	script, err := (demoparser.Parser{}).Parse(context.Background(), "https://h/a/b.cs", []byte(src))
	require.NoError(t, err)
	require.Len(t, script.Statements, 5)

	_, ok := script.Statements[1].(*model.LabelStmt)
	assert.True(t, ok)

	jump, ok := script.Statements[3].(*model.JumpStmt)
	require.True(t, ok)
	assert.Equal(t, "loop", jump.Label)
	require.NotNil(t, jump.Expr)
}

func TestParseInclude(t *testing.T) {
	script, err := (demoparser.Parser{}).Parse(context.Background(), "https://h/a/b.cs", []byte(`include 'c.cs'`))
	require.NoError(t, err)
	require.Len(t, script.Statements, 1)

	inc, ok := script.Statements[0].(*model.IncludeStmt)
	require.True(t, ok)
	assert.Equal(t, "c.cs", inc.URL)
}

func TestParseFunctionCall(t *testing.T) {
	script, err := (demoparser.Parser{}).Parse(context.Background(), "https://h/a/b.cs", []byte(`return add(slow(50), slow(50))`))
	require.NoError(t, err)
	require.Len(t, script.Statements, 1)

	ret := script.Statements[0].(*model.ReturnStmt)
	call, ok := ret.Expr.(*model.FunctionExpr)
	require.True(t, ok)
	assert.Equal(t, "add", call.Name)
	require.Len(t, call.Args, 2)
	inner, ok := call.Args[0].(*model.FunctionExpr)
	require.True(t, ok)
	assert.Equal(t, "slow", inner.Name)
}

func TestParseMalformedReturnsParserError(t *testing.T) {
	_, err := (demoparser.Parser{}).Parse(context.Background(), "https://h/a/b.cs", []byte("jumpif loop"))
	require.Error(t, err)
}
