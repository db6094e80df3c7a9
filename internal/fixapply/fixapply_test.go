package fixapply

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nulint/nulint/internal/lintctx"
	"github.com/nulint/nulint/internal/span"
	"github.com/nulint/nulint/internal/violation"
)

func source(text string) span.Source {
	return span.NewSource("test.nu", []byte(text))
}

// replaceAll returns a LintFunc flagging every occurrence of old with a
// fix rewriting it to new.
func replaceAll(ruleID, old, new string) LintFunc {
	return func(ctx *lintctx.Context) []violation.Violation {
		var vs []violation.Violation
		text := string(ctx.Source.Text)
		for i := 0; ; {
			idx := strings.Index(text[i:], old)
			if idx < 0 {
				break
			}
			start := i + idx
			sp := span.Span{Start: start, End: start + len(old)}
			fix := violation.NewFix("replace "+old, violation.Replacement{Span: sp, NewText: new})
			vs = append(vs, violation.Violation{
				RuleID: ruleID, Message: "found " + old, Span: sp, Fix: &fix,
			})
			i = start + len(old)
		}
		return vs
	}
}

func TestConvergeSingleFix(t *testing.T) {
	out := Converge(source("ls -a"), replaceAll("explicit_long_flags", "-a", "--all"))
	assert.Equal(t, "ls --all", string(out.Source.Text))
	assert.Equal(t, 1, out.Iterations)
	assert.Equal(t, 1, out.Applied)
	assert.Empty(t, out.Violations)
	assert.False(t, out.ReachedCap)
}

func TestConvergeEmptySourceIsIdentity(t *testing.T) {
	out := Converge(source(""), replaceAll("r", "x", "y"))
	assert.Equal(t, "", string(out.Source.Text))
	assert.Zero(t, out.Iterations)
	assert.Empty(t, out.Violations)
}

func TestConvergeNoFixableViolations(t *testing.T) {
	lint := func(ctx *lintctx.Context) []violation.Violation {
		return []violation.Violation{{RuleID: "readonly", Message: "no fix", Span: span.Span{Start: 0, End: 2}}}
	}
	out := Converge(source("ls"), lint)
	assert.Equal(t, "ls", string(out.Source.Text))
	assert.Zero(t, out.Iterations)
	assert.Len(t, out.Violations, 1)
}

func TestOverlappingFixesPreferEarlierStartThenRuleID(t *testing.T) {
	lint := func(ctx *lintctx.Context) []violation.Violation {
		if string(ctx.Source.Text) != "abcdef" {
			return nil
		}
		mk := func(ruleID string, start, end int, text string) violation.Violation {
			sp := span.Span{Start: start, End: end}
			fix := violation.NewFix("rewrite", violation.Replacement{Span: sp, NewText: text})
			return violation.Violation{RuleID: ruleID, Message: "m", Span: sp, Fix: &fix}
		}
		return []violation.Violation{
			mk("z_rule", 0, 3, "Z"),
			mk("a_rule", 0, 3, "A"),
			mk("mid", 2, 5, "M"), // overlaps the winner, must be dropped
			mk("tail", 3, 6, "T"), // adjacent to [0,3), no overlap
		}
	}
	out := Converge(source("abcdef"), lint)
	assert.Equal(t, "AT", string(out.Source.Text))
}

func TestConvergeIterates(t *testing.T) {
	// First round rewrites a→b, second b→c; two iterations to converge.
	lint := func(ctx *lintctx.Context) []violation.Violation {
		text := string(ctx.Source.Text)
		switch {
		case strings.Contains(text, "a"):
			return replaceAll("r1", "a", "b")(ctx)
		case strings.Contains(text, "b"):
			return replaceAll("r2", "b", "c")(ctx)
		}
		return nil
	}
	out := Converge(source("a"), lint)
	assert.Equal(t, "c", string(out.Source.Text))
	assert.Equal(t, 2, out.Iterations)
}

func TestConvergeCapsIterations(t *testing.T) {
	// Each round grows the buffer and stays fixable forever; the
	// replacement text differs per round so cycle detection stays out
	// of the way.
	lint := func(ctx *lintctx.Context) []violation.Violation {
		sp := span.Span{Start: 0, End: 1}
		grown := strings.Repeat("x", len(ctx.Source.Text)+1)
		fix := violation.NewFix("grow", violation.Replacement{Span: sp, NewText: grown})
		return []violation.Violation{{RuleID: "grower", Message: "grow", Span: sp, Fix: &fix}}
	}
	out := ConvergeN(source("x"), lint, 3)
	assert.Equal(t, 3, out.Iterations)
	assert.True(t, out.ReachedCap)
}

func TestConvergeDetectsCycle(t *testing.T) {
	// Two antagonistic rules rewrite x↔y; the loop must not spin.
	lint := func(ctx *lintctx.Context) []violation.Violation {
		if strings.Contains(string(ctx.Source.Text), "x") {
			return replaceAll("to_y", "x", "y")(ctx)
		}
		return replaceAll("to_x", "y", "x")(ctx)
	}
	out := Converge(source("x"), lint)
	assert.True(t, out.CycleDetected)
	assert.Less(t, out.Iterations, DefaultMaxIterations)
}

func TestMalformedSpansDropped(t *testing.T) {
	lint := func(ctx *lintctx.Context) []violation.Violation {
		sp := span.Span{Start: 0, End: len(ctx.Source.Text) + 10}
		fix := violation.NewFix("bad", violation.Replacement{Span: sp, NewText: ""})
		return []violation.Violation{{RuleID: "bad", Message: "m", Span: span.Span{Start: 0, End: 1}, Fix: &fix}}
	}
	out := Converge(source("ls"), lint)
	assert.Equal(t, "ls", string(out.Source.Text))
	assert.Zero(t, out.Iterations)
	require.Len(t, out.Violations, 1, "violation stays reportable without its fix")
}

func TestRollbackOnNewParseErrors(t *testing.T) {
	// The fix injects an unparsable fragment; the round must roll back.
	lint := func(ctx *lintctx.Context) []violation.Violation {
		if !strings.Contains(string(ctx.Source.Text), "ls") {
			return nil
		}
		sp := span.Span{Start: 0, End: 2}
		fix := violation.NewFix("break it", violation.Replacement{Span: sp, NewText: "{ ] !"})
		return []violation.Violation{{RuleID: "breaker", Message: "m", Span: sp, Fix: &fix}}
	}
	out := Converge(source("ls -a"), lint)
	assert.True(t, out.RolledBack)
	assert.Equal(t, "ls -a", string(out.Source.Text))
	assert.Zero(t, out.Iterations)
}
