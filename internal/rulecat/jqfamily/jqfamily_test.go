package jqfamily

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nulint/nulint/internal/lintctx"
	"github.com/nulint/nulint/internal/span"
)

func newCtx(src string) *lintctx.Context {
	return lintctx.New(span.NewSource("test.nu", []byte(src)))
}

func TestJqFieldAccessOverFileRewritten(t *testing.T) {
	src := `^jq '.name' users.json`
	vs := NewPreferFromJSON().Check(newCtx(src))
	require.Len(t, vs, 1)
	v := vs[0]
	require.NotNil(t, v.Fix)
	r := v.Fix.Replacements[0]
	assert.Contains(t, r.NewText, "from json")
	assert.Contains(t, r.NewText, "get name")
	fixed := src[:r.Span.Start] + r.NewText + src[r.Span.End:]
	assert.Equal(t, "open users.json | from json | get name", fixed)
}

func TestJqIdentityOverFileRewritten(t *testing.T) {
	vs := NewPreferFromJSON().Check(newCtx(`^jq '.' data.json`))
	require.Len(t, vs, 1)
	require.NotNil(t, vs[0].Fix)
	assert.Contains(t, vs[0].Fix.Replacements[0].NewText, "from json")
}

func TestJqFieldAccessInPipelineRewritten(t *testing.T) {
	vs := NewPreferFromJSON().Check(newCtx(`open raw.txt | ^jq '.name'`))
	require.Len(t, vs, 1)
	require.NotNil(t, vs[0].Fix)
	assert.Equal(t, "from json | get name", vs[0].Fix.Replacements[0].NewText)
}

func TestComplexFilterReportedWithoutFix(t *testing.T) {
	vs := NewPreferFromJSON().Check(newCtx(`^jq 'to_entries' users.json`))
	require.Len(t, vs, 1)
	assert.Nil(t, vs[0].Fix)
}

func TestJqKeysOverFileRewritten(t *testing.T) {
	vs := NewAvoidJqSimpleOps().Check(newCtx(`^jq 'keys' object.json`))
	require.Len(t, vs, 1)
	require.NotNil(t, vs[0].Fix)
	assert.Contains(t, vs[0].Fix.Replacements[0].NewText, "columns")
}

func TestJqLengthPipelineRewritten(t *testing.T) {
	vs := NewAvoidJqSimpleOps().Check(newCtx(`open raw.txt | ^jq '.items | length'`))
	require.Len(t, vs, 1)
	assert.Equal(t, "from json | get items | length", vs[0].Fix.Replacements[0].NewText)
}

func TestRulesDoNotOverlap(t *testing.T) {
	// Field access is prefer_from_json's; operations belong to
	// avoid_jq_for_simple_ops. No call is reported by both.
	for _, src := range []string{
		`^jq '.name' users.json`,
		`^jq 'keys' object.json`,
		`open raw.txt | ^jq 'length'`,
	} {
		a := NewPreferFromJSON().Check(newCtx(src))
		b := NewAvoidJqSimpleOps().Check(newCtx(src))
		assert.Len(t, append(a, b...), 1, "source %q", src)
	}
}

func TestJqWithFlagsIgnored(t *testing.T) {
	src := `^jq -r '.name' users.json`
	assert.Empty(t, NewPreferFromJSON().Check(newCtx(src)))
	assert.Empty(t, NewAvoidJqSimpleOps().Check(newCtx(src)))
}

func TestNativePipelineClean(t *testing.T) {
	src := "open users.json | from json | get name"
	assert.Empty(t, NewPreferFromJSON().Check(newCtx(src)))
	assert.Empty(t, NewAvoidJqSimpleOps().Check(newCtx(src)))
}

func TestUntranslatableOpStaysQuiet(t *testing.T) {
	// map over a non-path body is outside the translator's subset; the
	// ops rule reports nothing rather than a fixless guess.
	assert.Empty(t, NewAvoidJqSimpleOps().Check(newCtx(`^jq 'map(length)' data.json`)))
}
