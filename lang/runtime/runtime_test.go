package runtime_test

import (
	"context"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/craigahobbs/calcscript-go/lang/env"
	"github.com/craigahobbs/calcscript-go/lang/host"
	"github.com/craigahobbs/calcscript-go/lang/model"
	"github.com/craigahobbs/calcscript-go/lang/runtime"
	"github.com/craigahobbs/calcscript-go/lang/values"
)

func mustRunScript(t *testing.T, statements []model.Statement, builtins env.Builtins, opts *host.Options) (values.Value, error) {
	t.Helper()
	return runtime.ExecuteScript(context.Background(), &model.Script{Statements: statements}, nil, builtins, opts)
}

// a = 2 + 3 * 4; return a => 14.
func TestArithmeticAndAssignment(t *testing.T) {
	statements := []model.Statement{
		&model.AssignStmt{Name: "a", Expr: &model.BinaryExpr{
			Op:   model.OpAdd,
			Left: &model.NumberExpr{Value: 2},
			Right: &model.BinaryExpr{
				Op:    model.OpMul,
				Left:  &model.NumberExpr{Value: 3},
				Right: &model.NumberExpr{Value: 4},
			},
		}},
		&model.ReturnStmt{Expr: &model.VariableExpr{Name: "a"}},
	}
	v, err := mustRunScript(t, statements, env.Builtins{}, nil)
	require.NoError(t, err)
	assert.Equal(t, values.Number(14), v)
}

// return 0 && debugLog('x') => 0, and debugLog is never invoked.
func TestShortCircuitAndSkipsRightOperand(t *testing.T) {
	var calls int32
	builtins := env.Builtins{Expr: map[string]*values.HostFunction{
		"debugLog": values.NewHostFunction("debugLog", func(_ context.Context, args []values.Value, _ *host.Options) (values.Value, error) {
			atomic.AddInt32(&calls, 1)
			return values.NullValue, nil
		}),
	}}
	statements := []model.Statement{
		&model.ReturnStmt{Expr: &model.BinaryExpr{
			Op:    model.OpAnd,
			Left:  &model.NumberExpr{Value: 0},
			Right: &model.FunctionExpr{Name: "debugLog", Args: []model.Expr{&model.StringExpr{Value: "x"}}},
		}},
	}
	v, err := mustRunScript(t, statements, builtins, nil)
	require.NoError(t, err)
	assert.Equal(t, values.Number(0), v)
	assert.EqualValues(t, 0, calls)
}

// i=0; loop: i=i+1; jumpif (i<5) loop; return i => 5.
func TestLabelLoop(t *testing.T) {
	statements := []model.Statement{
		&model.AssignStmt{Name: "i", Expr: &model.NumberExpr{Value: 0}},
		&model.LabelStmt{Name: "loop"},
		&model.AssignStmt{Name: "i", Expr: &model.BinaryExpr{
			Op: model.OpAdd, Left: &model.VariableExpr{Name: "i"}, Right: &model.NumberExpr{Value: 1},
		}},
		&model.JumpStmt{Label: "loop", Expr: &model.BinaryExpr{
			Op: model.OpLT, Left: &model.VariableExpr{Name: "i"}, Right: &model.NumberExpr{Value: 5},
		}},
		&model.ReturnStmt{Expr: &model.VariableExpr{Name: "i"}},
	}
	v, err := mustRunScript(t, statements, env.Builtins{}, nil)
	require.NoError(t, err)
	assert.Equal(t, values.Number(5), v)
}

// same loop to 10_000 with maxStatements=100 => RuntimeError.
func TestStatementQuotaExceeded(t *testing.T) {
	statements := []model.Statement{
		&model.AssignStmt{Name: "i", Expr: &model.NumberExpr{Value: 0}},
		&model.LabelStmt{Name: "loop"},
		&model.AssignStmt{Name: "i", Expr: &model.BinaryExpr{
			Op: model.OpAdd, Left: &model.VariableExpr{Name: "i"}, Right: &model.NumberExpr{Value: 1},
		}},
		&model.JumpStmt{Label: "loop", Expr: &model.BinaryExpr{
			Op: model.OpLT, Left: &model.VariableExpr{Name: "i"}, Right: &model.NumberExpr{Value: 10000},
		}},
		&model.ReturnStmt{Expr: &model.VariableExpr{Name: "i"}},
	}
	_, err := mustRunScript(t, statements, env.Builtins{}, &host.Options{MaxStatements: 100})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Exceeded maximum script statements (100)")
}

// return nope() with no such binding => RuntimeError.
func TestUndefinedFunction(t *testing.T) {
	statements := []model.Statement{
		&model.ReturnStmt{Expr: &model.FunctionExpr{Name: "nope"}},
	}
	_, err := mustRunScript(t, statements, env.Builtins{}, nil)
	require.Error(t, err)
	assert.Equal(t, `Undefined function "nope"`, err.Error())
}

// two async globals slow(ms) each sleeping 50ms; return add(slow(50),
// slow(50)) completes in ~50ms, not ~100ms, under the async entry point.
func TestAsyncParallelArguments(t *testing.T) {
	slow := values.NewAsyncHostFunction("slow", func(ctx context.Context, args []values.Value, _ *host.Options) (values.Value, error) {
		ms := 50
		if len(args) > 0 {
			if n, ok := args[0].(values.Number); ok {
				ms = int(n)
			}
		}
		select {
		case <-time.After(time.Duration(ms) * time.Millisecond):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		return values.Number(ms), nil
	})
	add := values.NewHostFunction("add", func(_ context.Context, args []values.Value, _ *host.Options) (values.Value, error) {
		var sum float64
		for _, a := range args {
			if n, ok := a.(values.Number); ok {
				sum += float64(n)
			}
		}
		return values.Number(sum), nil
	})
	globals := env.NewTable(0)
	globals.Set("slow", slow)
	builtins := env.Builtins{Expr: map[string]*values.HostFunction{"add": add}}

	statements := []model.Statement{
		&model.ReturnStmt{Expr: &model.FunctionExpr{Name: "add", Args: []model.Expr{
			&model.FunctionExpr{Name: "slow", Args: []model.Expr{&model.NumberExpr{Value: 50}}},
			&model.FunctionExpr{Name: "slow", Args: []model.Expr{&model.NumberExpr{Value: 50}}},
		}}},
	}

	start := time.Now()
	v, err := runtime.ExecuteScriptAsync(context.Background(), &model.Script{Statements: statements}, globals, builtins, nil)
	elapsed := time.Since(start)
	require.NoError(t, err)
	assert.Equal(t, values.Number(100), v)
	assert.Less(t, elapsed, 90*time.Millisecond)
}

// For an expression free of async callables, the async evaluator's result
// matches the sync evaluator's.
func TestSyncAsyncEquivalenceForSynchronousExpression(t *testing.T) {
	expr := &model.BinaryExpr{
		Op:   model.OpAdd,
		Left: &model.NumberExpr{Value: 2},
		Right: &model.BinaryExpr{
			Op: model.OpMul, Left: &model.NumberExpr{Value: 3}, Right: &model.NumberExpr{Value: 4},
		},
	}
	syncV, err := runtime.EvaluateExpression(context.Background(), expr, nil, nil, env.Builtins{}, nil, true)
	require.NoError(t, err)
	asyncV, err := runtime.EvaluateExpressionAsync(context.Background(), expr, nil, nil, env.Builtins{}, nil, true)
	require.NoError(t, err)
	assert.Equal(t, syncV, asyncV)
}

// f(x1,...,xm) called with m' != m arguments binds missing positionals to
// null and discards extras.
func TestFunctionArgumentBindingMismatch(t *testing.T) {
	statements := []model.Statement{
		&model.FunctionStmt{
			Name: "f",
			Args: []string{"a", "b", "c"},
			Statements: []model.Statement{
				&model.ReturnStmt{Expr: &model.VariableExpr{Name: "b"}},
			},
		},
		&model.ReturnStmt{Expr: &model.FunctionExpr{
			Name: "f",
			Args: []model.Expr{&model.NumberExpr{Value: 1}},
		}},
	}
	v, err := mustRunScript(t, statements, env.Builtins{}, nil)
	require.NoError(t, err)
	assert.Equal(t, values.NullValue, v)
}

// include relative-URL resolution: a top-level include of
// https://h/a/b.cs whose body includes 'c.cs' fetches https://h/a/c.cs.
func TestIncludeRelativeURLResolution(t *testing.T) {
	bodies := map[string]string{
		"https://h/a/b.cs": "include 'c.cs'\n",
		"https://h/a/c.cs": "return 42\n",
	}
	var fetched []string
	fetchFn := func(_ context.Context, url string) (host.Response, error) {
		fetched = append(fetched, url)
		body, ok := bodies[url]
		if !ok {
			return testResponse{ok: false}, nil
		}
		return testResponse{ok: true, body: body}, nil
	}

	// What's observable at the including scope is which URLs got fetched:
	// include executes the nested script for its side effects on globals,
	// it does not propagate a return value outward.
	opts := &host.Options{FetchFn: fetchFn, Parser: testParser{}}
	_, err := runtime.ExecuteScript(context.Background(), &model.Script{Statements: []model.Statement{
		&model.IncludeStmt{URL: "https://h/a/b.cs"},
	}}, nil, env.Builtins{}, opts)
	require.NoError(t, err)
	require.Len(t, fetched, 2)
	assert.Equal(t, "https://h/a/b.cs", fetched[0])
	assert.Equal(t, "https://h/a/c.cs", fetched[1])
}

type testResponse struct {
	ok   bool
	body string
}

func (r testResponse) OK() bool                             { return r.ok }
func (r testResponse) StatusText() string                   { return "not found" }
func (r testResponse) Text(context.Context) (string, error) { return r.body, nil }

// testParser parses the tiny subset the include test needs directly,
// without pulling in internal/demoparser (kept out of lang/runtime's own
// test dependencies).
type testParser struct{}

func (testParser) Parse(_ context.Context, _ string, src []byte) (*model.Script, error) {
	line := strings.TrimSpace(string(src))
	if strings.HasPrefix(line, "include ") {
		url := strings.Trim(strings.TrimSpace(strings.TrimPrefix(line, "include ")), "'\"")
		return &model.Script{Statements: []model.Statement{&model.IncludeStmt{URL: url}}}, nil
	}
	if strings.HasPrefix(line, "return ") {
		return &model.Script{Statements: []model.Statement{&model.ReturnStmt{Expr: &model.NumberExpr{Value: 42}}}}, nil
	}
	return &model.Script{}, nil
}
