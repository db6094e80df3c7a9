package underscorecommands

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

func TestUnderscoreCommandFlagged(t *testing.T) {
	src := "def my_command { ls }"
	vs := lint(t, src)
	require.Len(t, vs, 1)
	r := vs[0].Fix.Replacements[0]
	fixed := src[:r.Span.Start] + r.NewText + src[r.Span.End:]
	assert.Equal(t, "def my-command { ls }", fixed)
}

func TestQuotedNameKeepsQuotes(t *testing.T) {
	src := `def "my_sub command" { ls }`
	vs := lint(t, src)
	require.Len(t, vs, 1)
	assert.Contains(t, vs[0].Fix.Replacements[0].NewText, `"`)
}

func TestKebabCommandClean(t *testing.T) {
	assert.Empty(t, lint(t, "def my-command { ls }"))
}

func TestNonDefCallsIgnored(t *testing.T) {
	assert.Empty(t, lint(t, "some_external_tool --run"))
}
