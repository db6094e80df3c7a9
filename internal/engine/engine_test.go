package engine

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nulint/nulint/internal/lintctx"
	"github.com/nulint/nulint/internal/nulog"
	"github.com/nulint/nulint/internal/registry"
	"github.com/nulint/nulint/internal/rule"
	"github.com/nulint/nulint/internal/span"
	"github.com/nulint/nulint/internal/violation"
)

func astRule(id string, fn rule.ASTFunc, groups ...string) rule.Rule {
	return rule.ASTRule{
		Meta: rule.Metadata{
			ID:              id,
			Description:     "test rule " + id,
			Category:        rule.CategoryStyle,
			DefaultSeverity: violation.SeverityWarning,
			Groups:          groups,
			DocURL:          "https://example.com/" + id,
		},
		Fn: fn,
	}
}

func fireAt(start, end int) rule.ASTFunc {
	return func(*lintctx.Context) []violation.Violation {
		return []violation.Violation{{Message: "fired", Span: span.Span{Start: start, End: end}}}
	}
}

func newCtx(src string) *lintctx.Context {
	return lintctx.New(span.NewSource("test.nu", []byte(src)))
}

func TestRunEnrichesViolations(t *testing.T) {
	reg := registry.NewRegistry()
	reg.Register(astRule("a_rule", fireAt(0, 2), "spacing"))

	eng := &Engine{Registry: reg}
	res := eng.Run(newCtx("ls"))

	require.Len(t, res.Violations, 1)
	v := res.Violations[0]
	assert.Equal(t, "a_rule", v.RuleID)
	assert.Equal(t, violation.SeverityWarning, v.Severity)
	assert.Equal(t, []string{"spacing"}, v.Groups)
	assert.Equal(t, "https://example.com/a_rule", v.DocURL)
	assert.Equal(t, "test.nu", v.File)
	assert.Equal(t, "test rule a_rule", v.Descriptions.Short)
}

func TestRunSortsAndDeduplicates(t *testing.T) {
	reg := registry.NewRegistry()
	reg.Register(astRule("b_rule", fireAt(5, 7)))
	reg.Register(astRule("a_rule", func(*lintctx.Context) []violation.Violation {
		// Same violation twice: the duplicate must be dropped.
		return []violation.Violation{
			{Message: "dup", Span: span.Span{Start: 5, End: 7}},
			{Message: "dup", Span: span.Span{Start: 5, End: 7}},
			{Message: "early", Span: span.Span{Start: 1, End: 2}},
		}
	}))

	res := engRun(t, reg, "let x = 42")
	require.Len(t, res.Violations, 3)
	assert.Equal(t, "early", res.Violations[0].Message)
	assert.Equal(t, "a_rule", res.Violations[1].RuleID)
	assert.Equal(t, "b_rule", res.Violations[2].RuleID)
}

func engRun(t *testing.T, reg *registry.Registry, src string) Result {
	t.Helper()
	eng := &Engine{Registry: reg}
	return eng.Run(newCtx(src))
}

func TestRunSeverityOverride(t *testing.T) {
	reg := registry.NewRegistry()
	reg.Register(astRule("a_rule", fireAt(0, 2)))

	eng := &Engine{
		Registry: reg,
		Selection: registry.Selection{
			SeverityOverrides: map[string]violation.Severity{"a_rule": violation.SeverityInfo},
		},
	}
	res := eng.Run(newCtx("ls"))
	require.Len(t, res.Violations, 1)
	assert.Equal(t, violation.SeverityInfo, res.Violations[0].Severity)
}

func TestRunIsolatesPanickingRule(t *testing.T) {
	reg := registry.NewRegistry()
	reg.Register(astRule("crasher", func(*lintctx.Context) []violation.Violation {
		panic("boom")
	}))
	reg.Register(astRule("steady", fireAt(0, 2)))

	res := engRun(t, reg, "ls")
	require.Len(t, res.Violations, 2)

	// The crash diagnostic sits at span (0, 0), so it sorts first.
	crash := res.Violations[0]
	assert.Equal(t, CrashRuleID, crash.RuleID)
	assert.Contains(t, crash.Message, "crasher")
	assert.Equal(t, violation.SeverityError, crash.Severity)
	assert.Equal(t, "steady", res.Violations[1].RuleID)
}

func TestCrashDiagnosticCarriesLogTail(t *testing.T) {
	reg := registry.NewRegistry()
	reg.Register(astRule("crasher", func(*lintctx.Context) []violation.Violation {
		panic("boom")
	}))

	log := nulog.New(io.Discard, logrus.ErrorLevel)
	tail := nulog.WithTail(log, nulog.DefaultTailLimit)
	eng := &Engine{Registry: reg, Logger: log, LogTail: tail}
	res := eng.Run(newCtx("ls"))

	require.Len(t, res.Violations, 1)
	assert.Contains(t, res.Violations[0].Detail, "rule panicked",
		"the crash report carries the logger's tail")
}

func TestCrashDiagnosticSuppressible(t *testing.T) {
	reg := registry.NewRegistry()
	reg.Register(astRule("crasher", func(*lintctx.Context) []violation.Violation {
		panic("boom")
	}))

	eng := &Engine{
		Registry:  reg,
		Selection: registry.Selection{Disabled: []string{CrashRuleID}},
	}
	res := eng.Run(newCtx("ls"))
	assert.Empty(t, res.Violations)
}

func TestRunDropsUnknownSpanViolations(t *testing.T) {
	reg := registry.NewRegistry()
	reg.Register(astRule("buggy", func(*lintctx.Context) []violation.Violation {
		return []violation.Violation{{Message: "no span"}}
	}))

	res := engRun(t, reg, "ls")
	assert.Empty(t, res.Violations)
}

func TestRunReportsConfigWarnings(t *testing.T) {
	reg := registry.NewRegistry()
	reg.Register(astRule("a_rule", fireAt(0, 2)))

	eng := &Engine{
		Registry:  reg,
		Selection: registry.Selection{Enabled: []string{"no_such_thing"}},
	}
	res := eng.Run(newCtx("ls"))
	assert.Empty(t, res.Violations)
	require.Len(t, res.ConfigWarnings, 1)
	assert.Contains(t, res.ConfigWarnings[0].Message, "no_such_thing")
}
