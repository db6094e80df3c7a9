package reporter

import (
	"io"
	"path/filepath"
	"sort"

	"github.com/owenrumney/go-sarif/v3/pkg/report/v210/sarif"

	"github.com/nulint/nulint/internal/violation"
)

// Default SARIF tool information.
const (
	sarifToolName = "nulint"
	sarifToolURI  = "https://nulint.dev"
)

// SARIFReporter formats violations as SARIF (Static Analysis Results
// Interchange Format), widely supported by CI/CD systems including
// GitHub Code Scanning.
//
// See: https://docs.oasis-open.org/sarif/sarif/v2.1.0/
type SARIFReporter struct {
	writer io.Writer
}

// NewSARIFReporter creates a new SARIF reporter.
func NewSARIFReporter(w io.Writer) *SARIFReporter {
	return &SARIFReporter{writer: w}
}

// Report implements Reporter.
func (r *SARIFReporter) Report(results []FileResult, metadata Metadata) error {
	report := sarif.NewReport()

	run := sarif.NewRunWithInformationURI(sarifToolName, sarifToolURI)
	if metadata.ToolVersion != "" {
		run.Tool.Driver.WithVersion(metadata.ToolVersion)
	}

	// Rule definitions: first occurrence of each rule id wins.
	ruleSet := make(map[string]violation.Violation)
	for _, fr := range results {
		for _, v := range fr.Violations {
			if _, exists := ruleSet[v.RuleID]; !exists {
				ruleSet[v.RuleID] = v
			}
		}
	}
	ruleIDs := make([]string, 0, len(ruleSet))
	for id := range ruleSet {
		ruleIDs = append(ruleIDs, id)
	}
	sort.Strings(ruleIDs)

	for _, id := range ruleIDs {
		v := ruleSet[id]
		ruleDef := run.AddRule(id)
		if v.Descriptions.Short != "" {
			ruleDef.WithShortDescription(sarif.NewMultiformatMessageString().WithText(v.Descriptions.Short))
		}
		if v.DocURL != "" {
			ruleDef.WithHelpURI(v.DocURL)
		}
	}

	for _, fr := range results {
		filePath := filepath.ToSlash(fr.Source.Name)
		run.AddDistinctArtifact(filePath)

		for _, v := range fr.Violations {
			start := fr.Source.Locate(v.Span.Start)
			end := fr.Source.Locate(v.Span.End)

			region := sarif.NewRegion().
				WithStartLine(start.Line).
				WithStartColumn(start.Column).
				WithEndLine(end.Line).
				WithEndColumn(end.Column)

			physicalLocation := sarif.NewPhysicalLocation().
				WithArtifactLocation(sarif.NewSimpleArtifactLocation(filePath)).
				WithRegion(region)

			result := sarif.NewRuleResult(v.RuleID).
				WithMessage(sarif.NewTextMessage(v.Message)).
				WithLevel(severityToSARIFLevel(v.Severity)).
				WithLocations([]*sarif.Location{
					sarif.NewLocationWithPhysicalLocation(physicalLocation),
				})
			run.AddResult(result)
		}
	}

	report.AddRun(run)
	return report.PrettyWrite(r.writer)
}

// severityToSARIFLevel maps our Severity to SARIF levels
// ("error", "warning", "note", "none").
func severityToSARIFLevel(s violation.Severity) string {
	switch s {
	case violation.SeverityError:
		return "error"
	case violation.SeverityWarning:
		return "warning"
	case violation.SeverityInfo:
		return "note"
	default:
		return "warning"
	}
}
