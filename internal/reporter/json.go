package reporter

import (
	"encoding/json"
	"io"
	"path/filepath"

	"github.com/nulint/nulint/internal/violation"
)

// JSONOutput is the top-level structure for JSON output.
type JSONOutput struct {
	// Files contains results grouped by file.
	Files []JSONFileResult `json:"files"`
	// Summary contains aggregate statistics.
	Summary Summary `json:"summary"`
	// FilesScanned is the total number of files scanned.
	FilesScanned int `json:"files_scanned"`
	// RulesEnabled is the total number of rules that were active.
	RulesEnabled int `json:"rules_enabled"`
}

// JSONFileResult contains the linting results for a single file.
type JSONFileResult struct {
	File       string                `json:"file"`
	Violations []violation.Violation `json:"violations"`
}

// Summary contains aggregate statistics about violations.
type Summary struct {
	Total    int `json:"total"`
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
	Info     int `json:"info"`
	Files    int `json:"files"`
}

// JSONReporter formats violations as JSON output.
type JSONReporter struct {
	writer io.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(w io.Writer) *JSONReporter {
	return &JSONReporter{writer: w}
}

// Report implements Reporter.
func (r *JSONReporter) Report(results []FileResult, metadata Metadata) error {
	out := JSONOutput{
		Files:        make([]JSONFileResult, 0, len(results)),
		FilesScanned: metadata.FilesScanned,
		RulesEnabled: metadata.RulesEnabled,
	}

	for _, fr := range results {
		vs := fr.Violations
		if vs == nil {
			vs = []violation.Violation{}
		}
		out.Files = append(out.Files, JSONFileResult{
			File:       filepath.ToSlash(fr.Source.Name),
			Violations: vs,
		})
		if len(vs) > 0 {
			out.Summary.Files++
		}
		for _, v := range vs {
			out.Summary.Total++
			switch v.Severity {
			case violation.SeverityError:
				out.Summary.Errors++
			case violation.SeverityWarning:
				out.Summary.Warnings++
			case violation.SeverityInfo:
				out.Summary.Info++
			}
		}
	}

	enc := json.NewEncoder(r.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
