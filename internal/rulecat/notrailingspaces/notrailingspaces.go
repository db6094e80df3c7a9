// Package notrailingspaces implements the no_trailing_spaces regex
// rule. Purely lexical: the AST never sees the whitespace.
package notrailingspaces

import (
	"regexp"

	"github.com/nulint/nulint/internal/lintctx"
	"github.com/nulint/nulint/internal/registry"
	"github.com/nulint/nulint/internal/rule"
	"github.com/nulint/nulint/internal/span"
	"github.com/nulint/nulint/internal/violation"
)

var pattern = regexp.MustCompile(`(?m)[ \t]+$`)

// New returns the no_trailing_spaces rule.
func New() rule.Rule {
	return rule.RegexRule{
		Meta: rule.Metadata{
			ID:              "no_trailing_spaces",
			Name:            "No Trailing Spaces",
			Description:     "Lines must not end in whitespace",
			DocURL:          "https://nulint.dev/rules/no_trailing_spaces",
			Category:        rule.CategoryStyle,
			DefaultSeverity: violation.SeverityWarning,
			Groups:          []string{"spacing"},
		},
		Pattern: pattern,
		OnMatch: onMatch,
	}
}

func onMatch(_ *lintctx.Context, m []int) []violation.Violation {
	sp := span.Span{Start: m[0], End: m[1]}
	fix := violation.NewFix(
		"delete the trailing whitespace",
		violation.Replacement{Span: sp, NewText: ""},
	)
	return []violation.Violation{{
		Message: "trailing whitespace",
		Span:    sp,
		Fix:     &fix,
	}}
}

func init() {
	registry.Register(New())
}
