// Package diagrules bridges the host parser's own diagnostics into the
// violation stream: one rule surfaces parse errors, one surfaces
// deprecation warnings. Both are ordinary rules from the engine's
// perspective and respect selection and severity overrides.
package diagrules

import (
	"github.com/nulint/nulint/internal/lintctx"
	"github.com/nulint/nulint/internal/rule"
	"github.com/nulint/nulint/internal/span"
	"github.com/nulint/nulint/internal/violation"
)

// ParseErrorRuleID identifies the parse-error surface rule.
const ParseErrorRuleID = "nu_parse_error"

// DeprecatedRuleID identifies the deprecation-warning surface rule.
const DeprecatedRuleID = "nu_deprecated"

// ParseErrorRule surfaces every parse error the host parser produced,
// excluding module-not-found errors, which are meaningless when linting
// a single buffer. It never proposes a fix.
func ParseErrorRule() rule.Rule {
	return rule.ASTRule{
		Meta: rule.Metadata{
			ID:              ParseErrorRuleID,
			Name:            "Parse Error",
			Description:     "The source does not conform to the language grammar",
			Category:        rule.CategoryTypeSafety,
			DefaultSeverity: violation.SeverityError,
			Groups:          []string{"parser"},
		},
		Fn: checkParseErrors,
	}
}

func checkParseErrors(ctx *lintctx.Context) []violation.Violation {
	type key struct {
		start, end int
		message    string
	}
	seen := make(map[key]bool, len(ctx.ParseErrors))
	var out []violation.Violation
	for _, e := range ctx.ParseErrors {
		if e.ModuleNotFound {
			continue
		}
		k := key{e.Span.Start, e.Span.End, e.Message}
		if seen[k] {
			continue
		}
		seen[k] = true
		sp := e.Span
		if sp.IsUnknown() {
			if len(ctx.Source.Text) == 0 {
				continue
			}
			// Anchor errors the parser could not place to the first byte.
			sp = span.Span{Start: 0, End: 1}
		}
		out = append(out, violation.Violation{
			RuleID:  ParseErrorRuleID,
			Message: e.Message,
			Span:    sp,
		})
	}
	return out
}

// DeprecatedRule surfaces the parser's deprecation warnings. A fix is
// offered only for recognized patterns; currently the
// `--ignore-errors` → `--optional` flag rename.
func DeprecatedRule() rule.Rule {
	return rule.ASTRule{
		Meta: rule.Metadata{
			ID:              DeprecatedRuleID,
			Name:            "Deprecated Construct",
			Description:     "Use of a deprecated language construct",
			Category:        rule.CategoryBestPractices,
			DefaultSeverity: violation.SeverityWarning,
			Groups:          []string{"parser"},
		},
		Fn: checkDeprecations,
	}
}

func checkDeprecations(ctx *lintctx.Context) []violation.Violation {
	var out []violation.Violation
	for _, w := range ctx.ParseWarnings {
		if w.Span.IsUnknown() {
			continue
		}
		v := violation.Violation{
			RuleID:  DeprecatedRuleID,
			Message: w.Label,
			Span:    w.Span,
			Help:    w.Help,
		}
		if ctx.Slice(w.Span) == "--ignore-errors" {
			fix := violation.NewFix(
				"replace `--ignore-errors` with `--optional`",
				violation.Replacement{Span: w.Span, NewText: "--optional"},
			)
			v.Fix = &fix
		}
		out = append(out, v)
	}
	return out
}
