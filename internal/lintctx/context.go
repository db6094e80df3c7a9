// Package lintctx bundles a parsed buffer with everything a rule needs to
// check it: the source, its AST, its symbol table, and the raw parser
// diagnostics. Rules read from a Context; nothing here is mutated once
// built.
package lintctx

import (
	"github.com/nulint/nulint/internal/langparser"
	"github.com/nulint/nulint/internal/span"
)

// Context is the read-only view every rule receives. Rules re-derive
// whatever they need by walking from Program's root rather than holding
// onto parent pointers, so a Context can be shared freely across the
// concurrent rule runs in internal/engine.
type Context struct {
	Source span.Source

	// Program is the parsed AST. Never nil, even for a source buffer that
	// fails to parse at all; in that case Program.Stmts is empty.
	Program *langparser.Program

	Symbols *langparser.SymbolTable

	ParseErrors   []langparser.ParseError
	ParseWarnings []langparser.ParseWarning
}

// New builds a Context by parsing src.
func New(src span.Source) *Context {
	res := langparser.Parse(src.Text)
	return &Context{
		Source:        src,
		Program:       res.Program,
		Symbols:       res.Symbols,
		ParseErrors:   res.Errors,
		ParseWarnings: res.Warnings,
	}
}

// Slice returns the source text covered by s.
func (c *Context) Slice(s span.Span) string {
	return c.Source.Slice(s)
}

// Walk calls visit for every node in the program, depth-first, descending
// into block bodies, record/list literals, and call arguments. Rules that
// need to inspect the whole tree should use Walk rather than re-parsing
// or caching their own traversal.
func Walk(n langparser.Node, visit func(langparser.Node)) {
	if n == nil {
		return
	}
	visit(n)
	switch t := n.(type) {
	case *langparser.Program:
		for _, s := range t.Stmts {
			Walk(s, visit)
		}
	case *langparser.Pipeline:
		for _, s := range t.Stages {
			Walk(s, visit)
		}
	case *langparser.LiteralStage:
		walkArgument(t.Value, visit)
	case *langparser.Call:
		for _, a := range t.Args {
			walkArgument(a, visit)
		}
	case *langparser.EnvAssignment:
		walkArgument(t.Value, visit)
	case *langparser.LetBinding:
		walkArgument(t.Value, visit)
	case *langparser.Block:
		if t.Body != nil {
			Walk(t.Body, visit)
		}
	case *langparser.Record:
		for _, f := range t.Fields {
			walkArgument(f.Value, visit)
		}
	case *langparser.ListLit:
		for _, item := range t.Items {
			walkArgument(item, visit)
		}
	}
}

func walkArgument(a langparser.Argument, visit func(langparser.Node)) {
	if a.Node != nil {
		Walk(a.Node, visit)
	}
}

// Calls returns every *Call in the program, depth-first, including calls
// nested inside blocks (e.g. `each {|x| ...}` closures).
func (c *Context) Calls() []*langparser.Call {
	var out []*langparser.Call
	Walk(c.Program, func(n langparser.Node) {
		if call, ok := n.(*langparser.Call); ok {
			out = append(out, call)
		}
	})
	return out
}
