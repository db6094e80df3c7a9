// Package avoidselfimport implements the avoid_self_import rule: a
// module that `use`s its own file shadows every definition it exports.
package avoidselfimport

import (
	"fmt"
	"path/filepath"

	"github.com/nulint/nulint/internal/lintctx"
	"github.com/nulint/nulint/internal/registry"
	"github.com/nulint/nulint/internal/rule"
	"github.com/nulint/nulint/internal/violation"
)

// New returns the avoid_self_import rule.
func New() rule.Rule {
	return rule.ASTRule{
		Meta: rule.Metadata{
			ID:              "avoid_self_import",
			Name:            "Avoid Self Import",
			Description:     "A module must not `use` its own file",
			DocURL:          "https://nulint.dev/rules/avoid_self_import",
			Category:        rule.CategoryBestPractices,
			DefaultSeverity: violation.SeverityError,
			Groups:          []string{"imports"},
		},
		Fn: check,
	}
}

func check(ctx *lintctx.Context) []violation.Violation {
	self := filepath.Base(ctx.Source.Name)
	if self == "" || self == "." {
		return nil
	}
	var out []violation.Violation
	for _, call := range ctx.Calls() {
		if call.Name != "use" {
			continue
		}
		target, ok := call.Positional(0)
		if !ok || filepath.Base(target.Value) != self {
			continue
		}
		out = append(out, violation.Violation{
			Message: fmt.Sprintf("module imports its own file %q", self),
			Span:    target.Span,
		})
	}
	return out
}

func init() {
	registry.Register(New())
}
