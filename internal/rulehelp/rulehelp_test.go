package rulehelp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nulint/nulint/internal/langparser"
	"github.com/nulint/nulint/internal/lintctx"
	"github.com/nulint/nulint/internal/span"
)

func parse(t *testing.T, src string) *lintctx.Context {
	t.Helper()
	return lintctx.New(span.NewSource("test.nu", []byte(src)))
}

func TestIsExternal(t *testing.T) {
	ctx := parse(t, "^curl -s example.com")
	calls := ctx.Calls()
	require.Len(t, calls, 1)
	assert.True(t, IsExternal(calls[0]))
	assert.True(t, IsExternalCall(calls[0], "curl"))
	assert.False(t, IsExternalCall(calls[0], "wget"))
}

func TestBareUnknownNameIsExternal(t *testing.T) {
	ctx := parse(t, "jq '.name'")
	calls := ctx.Calls()
	require.Len(t, calls, 1)
	assert.True(t, IsExternal(calls[0]), "unresolved bare word is an implicit external")
}

func TestBuiltinIsNotExternal(t *testing.T) {
	ctx := parse(t, "ls -a")
	calls := ctx.Calls()
	require.Len(t, calls, 1)
	assert.False(t, IsExternal(calls[0]))
	assert.True(t, IsBuiltinCall(calls[0], "ls"))
	assert.True(t, IsBuiltinCallWithFlag(calls[0], "ls", "a"))
	assert.False(t, IsBuiltinCallWithFlag(calls[0], "ls", "l"))
}

func TestMatchPipeline(t *testing.T) {
	ctx := parse(t, `"a:b:c" | split row ":" | first`)
	ps := Pipelines(ctx)
	require.Len(t, ps, 1)
	assert.True(t, MatchPipeline(ps[0], "split", "first"))
	assert.False(t, MatchPipeline(ps[0], "split"))
	assert.False(t, MatchPipeline(ps[0], "first", "split"))
}

func TestClosure(t *testing.T) {
	ctx := parse(t, "each { |x| print $x }")
	calls := ctx.Calls()
	require.NotEmpty(t, calls)
	var blockArg langparser.Argument
	found := false
	for _, a := range calls[0].Args {
		if a.Kind == langparser.ArgBlock {
			blockArg = a
			found = true
		}
	}
	require.True(t, found)
	params, body, ok := Closure(blockArg)
	require.True(t, ok)
	assert.Equal(t, []string{"x"}, params)
	assert.NotEmpty(t, body.Stmts)
}

func TestCaseConversion(t *testing.T) {
	assert.Equal(t, "my_var_name", ToSnakeCase("myVarName"))
	assert.Equal(t, "my_var_name", ToSnakeCase("my-var-name"))
	assert.Equal(t, "MY_VAR_NAME", ToScreamingSnakeCase("my-var-name"))
	assert.Equal(t, "my-var-name", ToKebabCase("my_var_name"))
	assert.Equal(t, "http-server", ToKebabCase("HTTPServer"))

	assert.True(t, IsSnakeCase("already_snake"))
	assert.False(t, IsSnakeCase("notSnake"))
	assert.True(t, IsKebabCase("already-kebab"))
	assert.True(t, IsScreamingSnakeCase("ALREADY_LOUD"))
}
