// Package underscorecommands implements the
// discourage_underscore_commands rule: custom command names use
// kebab-case, the convention of the language's builtin set.
package underscorecommands

import (
	"fmt"
	"strings"

	"github.com/nulint/nulint/internal/langparser"
	"github.com/nulint/nulint/internal/lintctx"
	"github.com/nulint/nulint/internal/registry"
	"github.com/nulint/nulint/internal/rule"
	"github.com/nulint/nulint/internal/rulehelp"
	"github.com/nulint/nulint/internal/violation"
)

// New returns the discourage_underscore_commands rule.
func New() rule.Rule {
	return rule.ASTRule{
		Meta: rule.Metadata{
			ID:              "discourage_underscore_commands",
			Name:            "Discourage Underscore Commands",
			Description:     "Custom command names should be kebab-case",
			LongDescription: "Every builtin is kebab-cased (`sort-by`, `load-env`); a snake_cased custom command reads as foreign next to them.",
			DocURL:          "https://nulint.dev/rules/discourage_underscore_commands",
			Category:        rule.CategoryStyle,
			DefaultSeverity: violation.SeverityInfo,
			Groups:          []string{"naming"},
		},
		Fn: check,
	}
}

func check(ctx *lintctx.Context) []violation.Violation {
	var out []violation.Violation
	for _, call := range ctx.Calls() {
		if call.Name != "def" {
			continue
		}
		name, ok := call.Positional(0)
		if !ok {
			continue
		}
		cmdName := name.Value
		if !strings.Contains(cmdName, "_") {
			continue
		}
		kebab := rulehelp.ToKebabCase(cmdName)
		rewrite := kebab
		if name.Kind == langparser.ArgString {
			rewrite = `"` + kebab + `"`
		}
		fix := violation.NewFix(
			fmt.Sprintf("rename `%s` to `%s`", cmdName, kebab),
			violation.Replacement{Span: name.Span, NewText: rewrite},
		)
		out = append(out, violation.Violation{
			Message: fmt.Sprintf("command name `%s` uses underscores; prefer `%s`", cmdName, kebab),
			Span:    name.Span,
			Fix:     &fix,
		})
	}
	return out
}

func init() {
	registry.Register(New())
}
