package violation

import (
	"encoding/json"
	"testing"

	"github.com/nulint/nulint/internal/span"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeverityMarshalJSON(t *testing.T) {
	b, err := json.Marshal(SeverityWarning)
	require.NoError(t, err)
	assert.Equal(t, `"warning"`, string(b))
}

func TestParseSeverity(t *testing.T) {
	s, err := ParseSeverity("Warning")
	require.NoError(t, err)
	assert.Equal(t, SeverityWarning, s)

	_, err = ParseSeverity("bogus")
	assert.Error(t, err)
}

func TestNewFixPanicsOnOverlap(t *testing.T) {
	assert.Panics(t, func() {
		NewFix("bad",
			Replacement{Span: span.Span{Start: 0, End: 5}, NewText: "a"},
			Replacement{Span: span.Span{Start: 3, End: 8}, NewText: "b"},
		)
	})
}

func TestIsFixable(t *testing.T) {
	v := Violation{RuleID: "x", Span: span.Span{Start: 0, End: 1}}
	assert.False(t, v.IsFixable())

	fix := NewFix("trim", Replacement{Span: span.Span{Start: 0, End: 1}, NewText: ""})
	v.Fix = &fix
	assert.True(t, v.IsFixable())
}

func TestViolationMarshalJSON(t *testing.T) {
	fix := NewFix("drop trailing space", Replacement{Span: span.Span{Start: 10, End: 11}, NewText: ""})
	v := Violation{
		RuleID:   "no_trailing_spaces",
		Message:  "trailing whitespace",
		Span:     span.Span{Start: 5, End: 11},
		Severity: SeverityWarning,
		Help:     "remove trailing whitespace",
		Groups:   []string{"style"},
		Fix:      &fix,
	}
	b, err := json.Marshal(v)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(b, &decoded))
	assert.Equal(t, "no_trailing_spaces", decoded["rule_id"])
	assert.Equal(t, "warning", decoded["severity"])
	assert.Contains(t, decoded, "fix")
	assert.NotContains(t, decoded, "doc_url")
}

func TestViolationMarshalJSONOmitsNilFix(t *testing.T) {
	v := Violation{RuleID: "x", Span: span.Span{Start: 0, End: 1}}
	b, err := json.Marshal(v)
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(b, &decoded))
	assert.NotContains(t, decoded, "fix")
	assert.Equal(t, []any{}, decoded["groups"])
}
