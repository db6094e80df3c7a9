// Package rulehelp provides the pattern-matching helpers shared by the
// rule catalogue: external-command detection, call and pipeline matchers,
// and closure introspection. Rules compose these instead of duplicating
// AST walks.
package rulehelp

import (
	"github.com/nulint/nulint/internal/langparser"
	"github.com/nulint/nulint/internal/lintctx"
)

// IsExternal reports whether call invokes a command outside the script
// language: spelled with a leading caret, or a bare name the parser did
// not resolve to a builtin.
func IsExternal(call *langparser.Call) bool {
	if call.External {
		return true
	}
	return call.Name != "" && !langparser.IsBuiltin(call.Name)
}

// IsExternalCall reports whether call is an external invocation of name.
func IsExternalCall(call *langparser.Call, name string) bool {
	return IsExternal(call) && call.Name == name
}

// IsBuiltinCall reports whether call invokes the builtin name.
func IsBuiltinCall(call *langparser.Call, name string) bool {
	return !call.External && call.Name == name
}

// IsBuiltinCallWithFlag reports whether call invokes the builtin name
// with the given flag (short or long spelling, no dashes).
func IsBuiltinCallWithFlag(call *langparser.Call, name, flag string) bool {
	if !IsBuiltinCall(call, name) {
		return false
	}
	_, ok := call.FlagArg(flag)
	return ok
}

// ExternalArgs returns the arguments of an external call with their
// spans, or nil when call is not external.
func ExternalArgs(call *langparser.Call) []langparser.Argument {
	if !IsExternal(call) {
		return nil
	}
	return call.Args
}

// MatchPipeline reports whether p's call stages are exactly names, in
// order. A leading literal stage (a bare value feeding the pipeline) is
// ignored, so `"a:b:c" | split row ":" | first` matches
// ("split", "first").
func MatchPipeline(p *langparser.Pipeline, names ...string) bool {
	calls := p.Calls()
	if len(calls) != len(names) {
		return false
	}
	for i, c := range calls {
		if c.Name != names[i] {
			return false
		}
	}
	return true
}

// ArgText returns the raw source slice of an argument.
func ArgText(ctx *lintctx.Context, a langparser.Argument) string {
	return ctx.Slice(a.Span)
}

// Closure returns the parameter bindings and body of a block argument,
// or ok=false when a is not a block.
func Closure(a langparser.Argument) (params []string, body *langparser.Program, ok bool) {
	blk, isBlock := a.Node.(*langparser.Block)
	if !isBlock {
		return nil, nil, false
	}
	return blk.Params, blk.Body, true
}

// Pipelines returns every *Pipeline in the program, depth-first,
// including pipelines nested inside closure bodies.
func Pipelines(ctx *lintctx.Context) []*langparser.Pipeline {
	var out []*langparser.Pipeline
	lintctx.Walk(ctx.Program, func(n langparser.Node) {
		if p, ok := n.(*langparser.Pipeline); ok {
			out = append(out, p)
		}
	})
	return out
}
