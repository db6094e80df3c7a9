package langparser

import "github.com/nulint/nulint/internal/span"

// VariableSymbol records one let/mut binding.
type VariableSymbol struct {
	Name    string
	Mutable bool
	Span    span.Span
}

// CommandSymbol records one observed call-site's command name, so rules
// can ask "is name a builtin" without re-walking the tree.
type CommandSymbol struct {
	Name     string
	External bool
}

// SymbolTable is the read-only symbol information collected while
// parsing: declared variables and the set of invoked command names.
// Keyed directly by name, which is sufficient when every analysis
// covers a single buffer.
type SymbolTable struct {
	Variables map[string]VariableSymbol
	Commands  map[string]CommandSymbol
}

func newSymbolTable() *SymbolTable {
	return &SymbolTable{
		Variables: make(map[string]VariableSymbol),
		Commands:  make(map[string]CommandSymbol),
	}
}

// builtins is the small fixed table of builtin command names the rule
// helpers need to recognize. It is not an attempt at a complete
// standard-library listing.
var builtins = map[string]bool{
	"ls": true, "get": true, "split": true, "parse": true, "first": true,
	"last": true, "each": true, "where": true, "load-env": true, "open": true,
	"from": true, "to": true, "str": true, "if": true, "let": true, "mut": true,
	"print": true, "echo": true, "append": true, "select": true, "columns": true,
	"length": true, "keys": true, "values": true, "filter": true, "reduce": true,
	"find": true, "sort-by": true, "uniq": true, "flatten": true, "headers": true,
}

// IsBuiltin reports whether name is a recognized builtin command.
func IsBuiltin(name string) bool {
	return builtins[name]
}
