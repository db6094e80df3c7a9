// Package useloadenv implements the use_load_env rule: consecutive
// `$env.NAME = value` assignments collapse into one `load-env` record.
package useloadenv

import (
	"strings"

	"github.com/nulint/nulint/internal/langparser"
	"github.com/nulint/nulint/internal/lintctx"
	"github.com/nulint/nulint/internal/registry"
	"github.com/nulint/nulint/internal/rule"
	"github.com/nulint/nulint/internal/span"
	"github.com/nulint/nulint/internal/violation"
)

// New returns the use_load_env rule.
func New() rule.Rule {
	return rule.ASTRule{
		Meta: rule.Metadata{
			ID:              "use_load_env",
			Name:            "Use load-env",
			Description:     "Collapse consecutive `$env` assignments into `load-env`",
			LongDescription: "A run of `$env.NAME = value` statements is one environment update; `load-env { ... }` states that in a single record.",
			DocURL:          "https://nulint.dev/rules/use_load_env",
			Category:        rule.CategoryStyle,
			DefaultSeverity: violation.SeverityWarning,
			Groups:          []string{"idiom"},
		},
		Fn: check,
	}
}

func check(ctx *lintctx.Context) []violation.Violation {
	var out []violation.Violation
	stmts := ctx.Program.Stmts
	for i := 0; i < len(stmts); {
		run := envRun(stmts[i:])
		if len(run) < 2 {
			i++
			continue
		}
		out = append(out, buildViolation(ctx, run))
		i += len(run)
	}
	return out
}

// envRun returns the longest prefix of stmts that are EnvAssignments.
func envRun(stmts []langparser.Node) []*langparser.EnvAssignment {
	var run []*langparser.EnvAssignment
	for _, s := range stmts {
		env, ok := s.(*langparser.EnvAssignment)
		if !ok {
			break
		}
		run = append(run, env)
	}
	return run
}

func buildViolation(ctx *lintctx.Context, run []*langparser.EnvAssignment) violation.Violation {
	sp := span.Span{Start: run[0].Span.Start, End: run[len(run)-1].Span.End}

	var fields []string
	for _, env := range run {
		fields = append(fields, env.Name+": "+ctx.Slice(env.Value.Span))
	}
	rewrite := "load-env { " + strings.Join(fields, ", ") + " }"

	fix := violation.NewFix(
		"collapse the assignments into one `load-env` call",
		violation.Replacement{Span: sp, NewText: rewrite},
	)
	return violation.Violation{
		Message: "consecutive `$env` assignments; use `load-env`",
		Span:    sp,
		Fix:     &fix,
	}
}

func init() {
	registry.Register(New())
}
