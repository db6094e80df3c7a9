// Package rule defines the Rule contract and its two concrete kinds
// (AST-walking and regex-based) shared by every check in the catalogue.
package rule

import (
	"regexp"

	"github.com/nulint/nulint/internal/lintctx"
	"github.com/nulint/nulint/internal/violation"
)

// Category groups related rules for documentation and reporting.
const (
	CategoryStyle         = "style"
	CategoryBestPractices = "best-practices"
	CategoryPerformance   = "performance"
	CategoryDocumentation = "documentation"
	CategoryTypeSafety    = "type-safety"
)

// Metadata is static information about a rule, read by the registry for
// selection and by reporters for documentation links.
type Metadata struct {
	ID               string
	Name             string
	Description      string
	LongDescription  string
	DocURL           string
	Category         string
	DefaultSeverity  violation.Severity
	Groups           []string
	EnabledByDefault bool
}

// Rule is the contract every check in the catalogue implements: given a
// lint context, produce zero or more violations. A Rule must not mutate
// the Context or retain it past the call.
type Rule interface {
	Metadata() Metadata
	Check(ctx *lintctx.Context) []violation.Violation
}

// ConfigurableRule is implemented by rules that accept rule-specific
// configuration loaded from the project's TOML config.
type ConfigurableRule interface {
	Rule
	DefaultConfig() any
	ValidateConfig(cfg any) error
}

// ASTFunc is the check function signature for an AST-walking rule: it
// inspects the parsed program (and symbol table) already available on
// the context.
type ASTFunc func(ctx *lintctx.Context) []violation.Violation

// ASTRule is a Rule that operates on the parsed AST rather than raw
// source text. Most of the catalogue's semantic checks (flag usage,
// command shape, deprecated idioms) are AST rules.
type ASTRule struct {
	Meta Metadata
	Fn   ASTFunc
}

func (r ASTRule) Metadata() Metadata { return r.Meta }

func (r ASTRule) Check(ctx *lintctx.Context) []violation.Violation {
	return r.Fn(ctx)
}

// RegexMatchFunc turns one regexp match (and its byte offsets within the
// source) into zero or more violations. Returning nil skips the match.
type RegexMatchFunc func(ctx *lintctx.Context, match []int) []violation.Violation

// RegexRule is a Rule that scans raw source text with a single compiled
// pattern, for purely textual checks (trailing whitespace,
// line-length) that don't need the AST.
type RegexRule struct {
	Meta    Metadata
	Pattern *regexp.Regexp
	OnMatch RegexMatchFunc
}

func (r RegexRule) Metadata() Metadata { return r.Meta }

func (r RegexRule) Check(ctx *lintctx.Context) []violation.Violation {
	var out []violation.Violation
	text := ctx.Source.Text
	for _, m := range r.Pattern.FindAllIndex(text, -1) {
		if vs := r.OnMatch(ctx, m); vs != nil {
			out = append(out, vs...)
		}
	}
	return out
}
