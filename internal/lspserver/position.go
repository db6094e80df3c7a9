package lspserver

import (
	"go.bug.st/lsp"

	"github.com/nulint/nulint/internal/span"
)

// offsetAt converts a zero-based LSP (line, character) position into a
// byte offset. Positions past end-of-line clamp to the line end;
// positions past end-of-buffer clamp to the buffer length.
func offsetAt(text []byte, line, character int) int {
	offset := 0
	for line > 0 && offset < len(text) {
		if text[offset] == '\n' {
			line--
		}
		offset++
	}
	for character > 0 && offset < len(text) && text[offset] != '\n' {
		character--
		offset++
	}
	return offset
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
