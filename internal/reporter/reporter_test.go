package reporter

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nulint/nulint/internal/span"
	"github.com/nulint/nulint/internal/violation"
)

func sampleResults() []FileResult {
	src := span.NewSource("script.nu", []byte("ls -a\nls  \n"))
	fix := violation.NewFix("replace `-a` with `--all`",
		violation.Replacement{Span: span.Span{Start: 3, End: 5}, NewText: "--all"})
	return []FileResult{{
		Source: src,
		Violations: []violation.Violation{
			{
				RuleID:   "explicit_long_flags",
				Message:  "`ls -a` is clearer as `ls --all`",
				Span:     span.Span{Start: 3, End: 5},
				Severity: violation.SeverityWarning,
				Groups:   []string{"style"},
				DocURL:   "https://nulint.dev/rules/explicit_long_flags",
				File:     "script.nu",
				Fix:      &fix,
			},
			{
				RuleID:   "no_trailing_spaces",
				Message:  "trailing whitespace",
				Span:     span.Span{Start: 8, End: 10},
				Severity: violation.SeverityError,
				File:     "script.nu",
			},
		},
	}}
}

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"text", "json", "sarif", ""} {
		_, err := ParseFormat(s)
		assert.NoError(t, err, s)
	}
	_, err := ParseFormat("yaml")
	assert.Error(t, err)
}

func TestTextReporterPlain(t *testing.T) {
	var buf bytes.Buffer
	color := false
	r := NewTextReporter(&buf, &color)
	require.NoError(t, r.Report(sampleResults(), Metadata{FilesScanned: 1, RulesEnabled: 12}))

	out := buf.String()
	assert.Contains(t, out, "script.nu:1:4 WARNING: explicit_long_flags")
	assert.Contains(t, out, "fix: replace `-a` with `--all`")
	assert.Contains(t, out, "2 violation(s) in 1 file(s), 12 rule(s) enabled")
}

func TestTextReporterCleanRun(t *testing.T) {
	var buf bytes.Buffer
	color := false
	r := NewTextReporter(&buf, &color)
	require.NoError(t, r.Report(nil, Metadata{FilesScanned: 3}))
	assert.Contains(t, buf.String(), "no violations in 3 file(s)")
}

func TestJSONReporter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONReporter(&buf).Report(sampleResults(), Metadata{FilesScanned: 1, RulesEnabled: 12}))

	var out map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	files := out["files"].([]any)
	require.Len(t, files, 1)
	vs := files[0].(map[string]any)["violations"].([]any)
	require.Len(t, vs, 2)

	first := vs[0].(map[string]any)
	assert.Equal(t, "explicit_long_flags", first["rule_id"])
	assert.Equal(t, "warning", first["severity"])
	sp := first["span"].(map[string]any)
	assert.EqualValues(t, 3, sp["start"])
	assert.EqualValues(t, 5, sp["end"])
	require.NotNil(t, first["fix"])

	summary := out["summary"].(map[string]any)
	assert.EqualValues(t, 2, summary["total"])
	assert.EqualValues(t, 1, summary["errors"])
	assert.EqualValues(t, 1, summary["warnings"])
}

func TestSARIFReporter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewSARIFReporter(&buf).Report(sampleResults(), Metadata{ToolVersion: "1.0.0"}))

	out := buf.String()
	assert.Contains(t, out, `"nulint"`)
	assert.Contains(t, out, "explicit_long_flags")
	assert.Contains(t, out, `"level": "warning"`)
	assert.True(t, strings.Contains(out, `"2.1.0"`) || strings.Contains(out, "2.1.0"))
}

func TestCountBySeverity(t *testing.T) {
	results := sampleResults()
	assert.Equal(t, 1, CountBySeverity(results, violation.SeverityError))
	assert.Equal(t, 2, CountBySeverity(results, violation.SeverityWarning))
	assert.Equal(t, 2, CountBySeverity(results, violation.SeverityInfo))
}
