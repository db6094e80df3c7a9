package useloadenv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nulint/nulint/internal/lintctx"
	"github.com/nulint/nulint/internal/span"
	"github.com/nulint/nulint/internal/violation"
)

func lint(t *testing.T, src string) []violation.Violation {
	t.Helper()
	ctx := lintctx.New(span.NewSource("test.nu", []byte(src)))
	return New().Check(ctx)
}

func TestConsecutiveAssignmentsCollapse(t *testing.T) {
	src := "$env.VAR1 = \"value1\"\n$env.VAR2 = \"value2\""
	vs := lint(t, src)
	require.Len(t, vs, 1)
	v := vs[0]
	require.NotNil(t, v.Fix)
	r := v.Fix.Replacements[0]
	fixed := src[:r.Span.Start] + r.NewText + src[r.Span.End:]
	assert.Equal(t, `load-env { VAR1: "value1", VAR2: "value2" }`, fixed)
}

func TestSingleAssignmentIgnored(t *testing.T) {
	assert.Empty(t, lint(t, `$env.VAR1 = "value1"`))
}

func TestInterruptedRunIgnored(t *testing.T) {
	src := "$env.VAR1 = \"value1\"\nls\n$env.VAR2 = \"value2\""
	assert.Empty(t, lint(t, src))
}

func TestTwoRunsReportedSeparately(t *testing.T) {
	src := "$env.A = 1\n$env.B = 2\nls\n$env.C = 3\n$env.D = 4"
	vs := lint(t, src)
	assert.Len(t, vs, 2)
}

func TestLoadEnvRelintsClean(t *testing.T) {
	assert.Empty(t, lint(t, `load-env { VAR1: "value1", VAR2: "value2" }`))
}
