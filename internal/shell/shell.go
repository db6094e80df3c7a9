// Package shell provides shell script parsing utilities for the rules
// that inspect embedded subprocess scripts (`^bash -c "..."`). It wraps
// mvdan.cc/sh/v3/syntax to provide a simple API for extracting command
// names from shell code.
package shell

import (
	"path"
	"strings"

	"mvdan.cc/sh/v3/syntax"
)

// Variant represents a shell variant for parsing.
type Variant int

const (
	// VariantBash is the GNU Bash shell.
	VariantBash Variant = iota
	// VariantPOSIX is the POSIX-compliant shell (sh, dash, ash).
	VariantPOSIX
)

// VariantFromShell returns the appropriate Variant for a shell name.
func VariantFromShell(shell string) Variant {
	switch strings.ToLower(path.Base(shell)) {
	case "sh", "dash", "ash":
		return VariantPOSIX
	default:
		return VariantBash
	}
}

func (v Variant) toLangVariant() syntax.LangVariant {
	if v == VariantPOSIX {
		return syntax.LangPOSIX
	}
	return syntax.LangBash
}

// Parse parses script under the given shell variant.
func Parse(script string, variant Variant) (*syntax.File, error) {
	parser := syntax.NewParser(
		syntax.Variant(variant.toLangVariant()),
		syntax.KeepComments(false),
	)
	return parser.Parse(strings.NewReader(script), "")
}

// CommandNames extracts all command names from a shell script, in
// order of appearance. A script that fails to parse yields nil.
func CommandNames(script string, variant Variant) []string {
	file, err := Parse(script, variant)
	if err != nil {
		return nil
	}

	var names []string
	syntax.Walk(file, func(node syntax.Node) bool {
		call, ok := node.(*syntax.CallExpr)
		if !ok || len(call.Args) == 0 {
			return true
		}
		if name := literalWord(call.Args[0]); name != "" {
			names = append(names, name)
		}
		return true
	})
	return names
}

// UsesPipes reports whether the script contains at least one pipeline.
func UsesPipes(script string, variant Variant) bool {
	file, err := Parse(script, variant)
	if err != nil {
		return false
	}
	found := false
	syntax.Walk(file, func(node syntax.Node) bool {
		if bin, ok := node.(*syntax.BinaryCmd); ok && (bin.Op == syntax.Pipe || bin.Op == syntax.PipeAll) {
			found = true
		}
		return !found
	})
	return found
}

// literalWord returns the plain text of a word composed solely of
// literal parts, or "" when any part is an expansion.
func literalWord(word *syntax.Word) string {
	var b strings.Builder
	for _, part := range word.Parts {
		lit, ok := part.(*syntax.Lit)
		if !ok {
			return ""
		}
		b.WriteString(lit.Value)
	}
	return b.String()
}
