// Package jqfamily implements the rules that replace external `jq`
// invocations with native pipelines: prefer_from_json for plain
// field-access filters and avoid_jq_for_simple_ops for filters built
// from the simple operations (length, keys, map, select). Both lean on
// the jq translator; filters outside its subset are reported without a
// fix.
package jqfamily

import (
	"strings"

	"github.com/nulint/nulint/internal/langparser"
	"github.com/nulint/nulint/internal/lintctx"
	"github.com/nulint/nulint/internal/registry"
	"github.com/nulint/nulint/internal/rule"
	"github.com/nulint/nulint/internal/rulehelp"
	"github.com/nulint/nulint/internal/rulehelp/jq"
	"github.com/nulint/nulint/internal/violation"
)

// NewPreferFromJSON returns the prefer_from_json rule: a jq call whose
// filter is the identity or plain field access only re-reads JSON the
// language parses natively.
func NewPreferFromJSON() rule.Rule {
	return rule.ASTRule{
		Meta: rule.Metadata{
			ID:              "prefer_from_json",
			Name:            "Prefer from json",
			Description:     "Use `from json` instead of `jq` for plain field access",
			LongDescription: "Shelling out to `jq` leaves structured-data land for a subprocess and a string round-trip; `from json` (with `open` for files) keeps the data native.",
			DocURL:          "https://nulint.dev/rules/prefer_from_json",
			Category:        rule.CategoryBestPractices,
			DefaultSeverity: violation.SeverityWarning,
			Groups:          []string{"jq", "external"},
		},
		Fn: func(ctx *lintctx.Context) []violation.Violation {
			return check(ctx, func(filter string) bool {
				return !usesOps(filter)
			}, "`jq` for plain field access; read the JSON natively", true)
		},
	}
}

// NewAvoidJqSimpleOps returns the avoid_jq_for_simple_ops rule: jq
// filters built from length/keys/map/select have direct native
// equivalents.
func NewAvoidJqSimpleOps() rule.Rule {
	return rule.ASTRule{
		Meta: rule.Metadata{
			ID:              "avoid_jq_for_simple_ops",
			Name:            "Avoid jq For Simple Operations",
			Description:     "Simple jq operations have direct native equivalents",
			DocURL:          "https://nulint.dev/rules/avoid_jq_for_simple_ops",
			Category:        rule.CategoryBestPractices,
			DefaultSeverity: violation.SeverityInfo,
			Groups:          []string{"jq", "external"},
		},
		Fn: func(ctx *lintctx.Context) []violation.Violation {
			return check(ctx, usesOps,
				"simple jq operation; use the native equivalent", false)
		},
	}
}

// usesOps reports whether the filter reaches for one of the simple
// operations rather than plain field access.
func usesOps(filter string) bool {
	for _, op := range []string{"length", "keys", "map(", "select("} {
		if strings.Contains(filter, op) {
			return true
		}
	}
	return false
}

// jqInvocation extracts the filter and optional file argument of a jq
// call. Flags or extra positionals make the call too complex to
// rewrite.
func jqInvocation(call *langparser.Call) (filter langparser.Argument, file langparser.Argument, hasFile, simple bool) {
	if !rulehelp.IsExternalCall(call, "jq") {
		return filter, file, false, false
	}
	for _, a := range call.Args {
		if a.Kind == langparser.ArgFlag {
			return filter, file, false, false
		}
	}
	filter, ok := call.Positional(0)
	if !ok || filter.Kind != langparser.ArgString {
		return filter, file, false, false
	}
	if _, extra := call.Positional(2); extra {
		return filter, file, false, false
	}
	file, hasFile = call.Positional(1)
	if hasFile && file.Kind != langparser.ArgBare {
		return filter, file, false, false
	}
	return filter, file, hasFile, true
}

// check flags every simple jq invocation whose filter satisfies want.
// withoutFix controls whether untranslatable filters are still
// reported (prefer_from_json reports them; the ops rule stays quiet
// rather than guess).
func check(ctx *lintctx.Context, want func(string) bool, msg string, withoutFix bool) []violation.Violation {
	var out []violation.Violation
	for _, call := range ctx.Calls() {
		filter, file, hasFile, simple := jqInvocation(call)
		if !simple || !want(filter.Value) {
			continue
		}
		jqCtx, path := jq.ContextPipeline, ""
		if hasFile {
			jqCtx, path = jq.ContextFile, file.Value
		}
		rewrite, ok := jq.Translate(filter.Value, jqCtx, path)
		if !ok && !withoutFix {
			continue
		}
		v := violation.Violation{Message: msg, Span: call.Span}
		if ok {
			fix := violation.NewFix(
				"replace the jq call with its native equivalent",
				violation.Replacement{Span: call.Span, NewText: rewrite},
			)
			v.Fix = &fix
		}
		out = append(out, v)
	}
	return out
}

func init() {
	registry.Register(NewPreferFromJSON())
	registry.Register(NewAvoidJqSimpleOps())
}
