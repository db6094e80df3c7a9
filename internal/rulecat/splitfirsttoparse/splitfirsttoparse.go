// Package splitfirsttoparse implements the split_first_to_parse rule:
// splitting a string only to keep the first piece is a `parse` capture
// in disguise.
package splitfirsttoparse

import (
	"fmt"

	"github.com/nulint/nulint/internal/langparser"
	"github.com/nulint/nulint/internal/lintctx"
	"github.com/nulint/nulint/internal/registry"
	"github.com/nulint/nulint/internal/rule"
	"github.com/nulint/nulint/internal/rulehelp"
	"github.com/nulint/nulint/internal/span"
	"github.com/nulint/nulint/internal/violation"
)

// New returns the split_first_to_parse rule.
func New() rule.Rule {
	return rule.ASTRule{
		Meta: rule.Metadata{
			ID:              "split_first_to_parse",
			Name:            "Split-First To Parse",
			Description:     "Use `parse` instead of `split row ... | first`",
			LongDescription: "`split row <sep> | first` builds a whole list to throw most of it away; `parse \"{first}<sep>{_}\"` captures the leading field directly.",
			DocURL:          "https://nulint.dev/rules/split_first_to_parse",
			Category:        rule.CategoryPerformance,
			DefaultSeverity: violation.SeverityWarning,
			Groups:          []string{"idiom"},
		},
		Fn: check,
	}
}

func check(ctx *lintctx.Context) []violation.Violation {
	var out []violation.Violation
	for _, p := range rulehelp.Pipelines(ctx) {
		calls := p.Calls()
		for i := 0; i+1 < len(calls); i++ {
			split, first := calls[i], calls[i+1]
			if !rulehelp.IsBuiltinCall(split, "split") || !rulehelp.IsBuiltinCall(first, "first") {
				continue
			}
			sub, ok := split.Positional(0)
			if !ok || sub.Value != "row" {
				continue
			}
			sep, ok := split.Positional(1)
			if !ok || sep.Kind != langparser.ArgString || sep.Value == "" {
				continue
			}
			// `first` with arguments keeps several rows; that is a real
			// split, not a capture.
			if len(first.Args) > 0 {
				continue
			}
			sp := span.Span{Start: split.Span.Start, End: first.Span.End}
			rewrite := fmt.Sprintf("parse %s | get first",
				span.EscapeLiteral("{first}"+sep.Value+"{_}", span.QuoteDouble))
			fix := violation.NewFix(
				"capture the leading field with `parse`",
				violation.Replacement{Span: sp, NewText: rewrite},
			)
			out = append(out, violation.Violation{
				Message: "`split row ... | first` keeps only the first field; use `parse`",
				Span:    sp,
				Fix:     &fix,
			})
		}
	}
	return out
}

func init() {
	registry.Register(New())
}
