package bashsubprocess

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

func TestBashSubprocessFlagged(t *testing.T) {
	vs := lint(t, `^bash -c "grep foo /tmp/log | wc -l"`)
	require.Len(t, vs, 1)
	v := vs[0]
	assert.Contains(t, v.Message, "bash -c")
	assert.Contains(t, v.Help, "grep")
	assert.Contains(t, v.Help, "wc")
}

func TestShSubprocessFlagged(t *testing.T) {
	vs := lint(t, `^sh -c 'ls /tmp'`)
	require.Len(t, vs, 1)
	assert.Contains(t, vs[0].Message, "sh -c")
}

func TestUnparsableScriptStillFlagged(t *testing.T) {
	vs := lint(t, `^bash -c "if then fi (("`)
	require.Len(t, vs, 1)
	assert.Contains(t, vs[0].Help, "native pipeline")
}

func TestBashWithoutDashCIgnored(t *testing.T) {
	assert.Empty(t, lint(t, "^bash setup.sh"))
}

func TestNativePipelineClean(t *testing.T) {
	assert.Empty(t, lint(t, "open /tmp/log | find foo | length"))
}
