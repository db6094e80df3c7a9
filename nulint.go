// Package nulint is the library boundary of the linter: one-shot lint
// passes, selection-aware passes, iterative fix application, and LSP
// hover assembly over the resulting violations.
package nulint

import (
	"go.bug.st/lsp"

	"github.com/nulint/nulint/internal/engine"
	"github.com/nulint/nulint/internal/fixapply"
	"github.com/nulint/nulint/internal/hover"
	"github.com/nulint/nulint/internal/lintctx"
	"github.com/nulint/nulint/internal/registry"
	"github.com/nulint/nulint/internal/span"
	"github.com/nulint/nulint/internal/violation"

	// Register the full rule catalogue.
	_ "github.com/nulint/nulint/internal/rulecat/all"
)

// Source is the input to a lint pass: the buffer plus an optional file
// identity.
type Source = span.Source

// NewSource wraps text with a name.
func NewSource(name string, text []byte) Source {
	return span.NewSource(name, text)
}

// Lint runs one pass over src with every registered rule at its
// declared severity. No fixes are applied.
func Lint(src Source) []violation.Violation {
	return LintWithSelection(src, registry.Selection{})
}

// LintWithSelection runs one pass over src with the given selection.
func LintWithSelection(src Source, sel registry.Selection) []violation.Violation {
	eng := engine.New(sel)
	return eng.Run(lintctx.New(src)).Violations
}

// FixOutcome is the result of iterative fix application.
type FixOutcome = fixapply.Outcome

// ApplyFixesIteratively applies non-overlapping fixes and re-lints
// until no fixable violations remain, a fixed point or cycle is hit,
// or the iteration cap is reached.
func ApplyFixesIteratively(src Source, sel registry.Selection) FixOutcome {
	eng := engine.New(sel)
	return fixapply.Converge(src, func(ctx *lintctx.Context) []violation.Violation {
		return eng.Run(ctx).Violations
	})
}

// BuildHover renders the violations covering the byte offset into LSP
// hover content. Returns nil when none cover it.
func BuildHover(src Source, vs []violation.Violation, offset int) *lsp.Hover {
	return hover.Build(src, hover.ViolationsAt(vs, offset))
}
