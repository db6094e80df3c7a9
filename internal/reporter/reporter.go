// Package reporter provides output formatters for lint results.
//
// The package supports multiple output formats:
//   - text: Human-readable terminal output with colors
//   - json: Machine-readable JSON output
//   - sarif: Static Analysis Results Interchange Format for CI/CD
package reporter

import (
	"fmt"
	"io"

	"github.com/nulint/nulint/internal/span"
	"github.com/nulint/nulint/internal/violation"
)

// FileResult pairs one linted buffer with its violations, already in
// the engine's (Span.Start, RuleID) order.
type FileResult struct {
	Source     span.Source
	Violations []violation.Violation
}

// Metadata contains contextual information about the lint run.
type Metadata struct {
	// FilesScanned is the total number of files that were scanned.
	FilesScanned int

	// RulesEnabled is the total number of rules that were active.
	RulesEnabled int

	// ToolVersion is included in SARIF output.
	ToolVersion string
}

// Reporter formats and outputs lint results.
type Reporter interface {
	// Report writes the results to the configured output.
	Report(results []FileResult, metadata Metadata) error
}

// Format represents an output format type.
type Format string

const (
	// FormatText is human-readable terminal output.
	FormatText Format = "text"
	// FormatJSON is machine-readable JSON output.
	FormatJSON Format = "json"
	// FormatSARIF is Static Analysis Results Interchange Format.
	FormatSARIF Format = "sarif"
)

// ParseFormat parses a format string into a Format type.
// Returns an error if the format is unknown.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "text", "":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "sarif":
		return FormatSARIF, nil
	default:
		return "", fmt.Errorf("unknown format: %q (valid: text, json, sarif)", s)
	}
}

// New creates a reporter for the given format writing to w.
func New(format Format, w io.Writer) (Reporter, error) {
	switch format {
	case FormatText, "":
		return NewTextReporter(w, nil), nil
	case FormatJSON:
		return NewJSONReporter(w), nil
	case FormatSARIF:
		return NewSARIFReporter(w), nil
	default:
		return nil, fmt.Errorf("unknown format: %q", format)
	}
}

// CountBySeverity tallies violations at or above the given severity.
// Severity values order error < warning < info, so "at or above" means
// numerically less-or-equal.
func CountBySeverity(results []FileResult, threshold violation.Severity) int {
	count := 0
	for _, fr := range results {
		for _, v := range fr.Violations {
			if v.Severity <= threshold {
				count++
			}
		}
	}
	return count
}
