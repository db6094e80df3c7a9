package langparser

import "github.com/nulint/nulint/internal/span"

// Node is any AST element; every node knows its own byte span.
type Node interface {
	NodeSpan() span.Span
}

// Program is the root of a parsed buffer: a sequence of top-level
// statements, each either a Pipeline or an EnvAssignment/LetBinding.
type Program struct {
	Span  span.Span
	Stmts []Node
}

func (p *Program) NodeSpan() span.Span { return p.Span }

// Pipeline is a sequence of stages joined by "|". Each stage is either a
// *Call (a command invocation) or a *LiteralStage (a bare value feeding
// the rest of the pipeline, e.g. the leading string in
// `"a:b:c" | split row ":" | first`).
type Pipeline struct {
	Span   span.Span
	Stages []Node
}

func (p *Pipeline) NodeSpan() span.Span { return p.Span }

// Calls returns the *Call stages of the pipeline, in order, skipping any
// leading literal stage.
func (p *Pipeline) Calls() []*Call {
	var out []*Call
	for _, s := range p.Stages {
		if c, ok := s.(*Call); ok {
			out = append(out, c)
		}
	}
	return out
}

// LiteralStage is a pipeline stage that is a bare value (string, number,
// list, record, or variable reference) rather than a command invocation.
type LiteralStage struct {
	Span  span.Span
	Value Argument
}

func (l *LiteralStage) NodeSpan() span.Span { return l.Span }

// ArgKind classifies a Call argument.
type ArgKind int

const (
	ArgBare ArgKind = iota
	ArgString
	ArgFlag // -a or --all
	ArgVar
	ArgNumber
	ArgBlock
	ArgRecord
	ArgList
)

// Argument is one positional or flag argument to a Call. It carries its
// own span independent of the call's, so diagnostics can anchor to a
// single argument.
type Argument struct {
	Span  span.Span
	Kind  ArgKind
	Text  string // raw source text
	Value string // decoded value for ArgString; flag name (without dashes) for ArgFlag
	Long  bool   // true for --long flags
	Node  Node   // populated for ArgBlock/ArgRecord/ArgList/ArgVar
}

func (a Argument) NodeSpan() span.Span { return a.Span }

// Call is a single command invocation: either external ("^name ...") or
// internal ("name ..."). HeadSpan covers just the command name, separate
// from Span which covers the whole call including its arguments.
type Call struct {
	Span     span.Span
	HeadSpan span.Span
	External bool
	Name     string
	Args     []Argument
}

func (c *Call) NodeSpan() span.Span { return c.Span }

// FlagArg returns the Argument for flag name (without leading dashes),
// matching either its short or long spelling, or ok=false.
func (c *Call) FlagArg(name string) (Argument, bool) {
	for _, a := range c.Args {
		if a.Kind == ArgFlag && a.Value == name {
			return a, true
		}
	}
	return Argument{}, false
}

// Positional returns the n-th (0-based) non-flag argument.
func (c *Call) Positional(n int) (Argument, bool) {
	count := 0
	for _, a := range c.Args {
		if a.Kind == ArgFlag {
			continue
		}
		if count == n {
			return a, true
		}
		count++
	}
	return Argument{}, false
}

// EnvAssignment models "$env.NAME = expr".
type EnvAssignment struct {
	Span     span.Span
	Name     string
	NameSpan span.Span
	Value    Argument
}

func (e *EnvAssignment) NodeSpan() span.Span { return e.Span }

// LetBinding models "let name = expr" / "mut name = expr".
type LetBinding struct {
	Span  span.Span
	Mut   bool
	Name  string
	Value Argument
}

func (l *LetBinding) NodeSpan() span.Span { return l.Span }

// Block is a closure or bare block: "{ |params| body }" or "{ body }".
// Body is a nested Program so rules can recurse into it purely by
// walking from the root; nodes hold no parent pointers.
type Block struct {
	Span   span.Span
	Params []string
	Body   *Program
}

func (b *Block) NodeSpan() span.Span { return b.Span }

// RecordField is one "key: value" entry of a Record literal.
type RecordField struct {
	Key      string
	KeySpan  span.Span
	Value    Argument
}

// Record is a "{key: value, ...}" literal.
type Record struct {
	Span   span.Span
	Fields []RecordField
}

func (r *Record) NodeSpan() span.Span { return r.Span }

// ListLit is a "[a, b, c]" literal.
type ListLit struct {
	Span  span.Span
	Items []Argument
}

func (l *ListLit) NodeSpan() span.Span { return l.Span }
