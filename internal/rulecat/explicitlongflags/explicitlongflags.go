// Package explicitlongflags implements the explicit_long_flags rule.
// Short flags on builtin commands are cryptic in committed scripts; the
// rule rewrites the ones with a known long spelling.
package explicitlongflags

import (
	"fmt"

	"github.com/nulint/nulint/internal/langparser"
	"github.com/nulint/nulint/internal/lintctx"
	"github.com/nulint/nulint/internal/registry"
	"github.com/nulint/nulint/internal/rule"
	"github.com/nulint/nulint/internal/violation"
)

// longFlags maps builtin commands to their short→long flag spellings.
var longFlags = map[string]map[string]string{
	"ls":      {"a": "all", "l": "long", "s": "short-names", "f": "full-paths", "d": "directory"},
	"rm":      {"r": "recursive", "f": "force", "v": "verbose", "t": "trash", "p": "permanent"},
	"cp":      {"r": "recursive", "v": "verbose", "f": "force", "u": "update"},
	"mkdir":   {"v": "verbose"},
	"open":    {"r": "raw"},
	"sort-by": {"r": "reverse", "i": "ignore-case", "n": "natural"},
	"uniq":    {"c": "count", "d": "repeated", "i": "ignore-case", "u": "unique"},
	"find":    {"i": "ignore-case", "m": "multiline", "r": "regex"},
}

// New returns the explicit_long_flags rule.
func New() rule.Rule {
	return rule.ASTRule{
		Meta: rule.Metadata{
			ID:              "explicit_long_flags",
			Name:            "Explicit Long Flags",
			Description:     "Prefer long flags over short flags in scripts",
			LongDescription: "Short flags are fine interactively, but committed scripts are read far more often than written; the long spelling documents intent.",
			DocURL:          "https://nulint.dev/rules/explicit_long_flags",
			Category:        rule.CategoryStyle,
			DefaultSeverity: violation.SeverityWarning,
			Groups:          []string{"style", "explicitness"},
		},
		Fn: check,
	}
}

func check(ctx *lintctx.Context) []violation.Violation {
	var out []violation.Violation
	for _, call := range ctx.Calls() {
		if call.External {
			continue
		}
		flags, ok := longFlags[call.Name]
		if !ok {
			continue
		}
		for _, arg := range call.Args {
			if arg.Kind != langparser.ArgFlag || arg.Long {
				continue
			}
			long, known := flags[arg.Value]
			if !known {
				continue
			}
			fix := violation.NewFix(
				fmt.Sprintf("replace `-%s` with `--%s`", arg.Value, long),
				violation.Replacement{Span: arg.Span, NewText: "--" + long},
			)
			out = append(out, violation.Violation{
				Message: fmt.Sprintf("`%s -%s` is clearer as `%s --%s`", call.Name, arg.Value, call.Name, long),
				Span:    arg.Span,
				Fix:     &fix,
			})
		}
	}
	return out
}

func init() {
	registry.Register(New())
}
