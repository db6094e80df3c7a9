// Package hover renders the violations under a cursor position into
// LSP hover content: one markdown section per violation, separated by
// horizontal rules when several overlap.
package hover

import (
	"fmt"
	"strings"

	"go.bug.st/lsp"

	"github.com/nulint/nulint/internal/span"
	"github.com/nulint/nulint/internal/violation"
)

// sectionSeparator joins the markdown sections of overlapping
// violations.
const sectionSeparator = "\n\n---\n\n"

// ViolationsAt returns the violations whose span contains the byte
// offset, in their engine order.
func ViolationsAt(vs []violation.Violation, offset int) []violation.Violation {
	var out []violation.Violation
	for _, v := range vs {
		if v.Span.Start <= offset && offset < v.Span.End {
			out = append(out, v)
		}
	}
	return out
}

// Build renders hover content for violations already filtered to a
// position. Returns nil when there is nothing to show.
func Build(src span.Source, vs []violation.Violation) *lsp.Hover {
	if len(vs) == 0 {
		return nil
	}

	sections := make([]string, 0, len(vs))
	for _, v := range vs {
		sections = append(sections, section(v))
	}

	// All violations share the position; anchor the hover range to the
	// first one.
	rng := toRange(src, vs[0].Span)
	return &lsp.Hover{
		Contents: lsp.MarkupContent{
			Kind:  lsp.MarkupKindMarkdown,
			Value: strings.Join(sections, sectionSeparator),
		},
		Range: &rng,
	}
}

// section renders one violation as its markdown hover block:
// heading with rule id and groups, italicized short description, long
// description, and a documentation link.
func section(v violation.Violation) string {
	var parts []string

	heading := fmt.Sprintf("### `%s`", v.RuleID)
	if len(v.Groups) > 0 {
		heading += fmt.Sprintf(" (%s)", strings.Join(v.Groups, ", "))
	}
	parts = append(parts, heading)

	short := v.Descriptions.Short
	if short == "" {
		short = v.Message
	}
	if short != "" {
		parts = append(parts, "*"+short+"*")
	}
	if v.Descriptions.Long != "" {
		parts = append(parts, v.Descriptions.Long)
	}
	if v.DocURL != "" {
		parts = append(parts, fmt.Sprintf("[Documentation](%s)", v.DocURL))
	}
	return strings.Join(parts, "\n\n")
}

// toRange converts a byte span to a zero-based LSP range.
func toRange(src span.Source, sp span.Span) lsp.Range {
	start := src.Locate(sp.Start)
	end := src.Locate(sp.End)
	return lsp.Range{
		Start: lsp.Position{Line: start.Line - 1, Character: start.Column - 1},
		End:   lsp.Position{Line: end.Line - 1, Character: end.Column - 1},
	}
}
