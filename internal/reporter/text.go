package reporter

import (
	"fmt"
	"io"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/muesli/termenv"

	"github.com/nulint/nulint/internal/violation"
)

// Color detection using termenv (respects NO_COLOR, CLICOLOR_FORCE,
// terminal detection).
var useColors = termenv.EnvColorProfile() != termenv.Ascii

// Styles for different parts of the output.
var (
	ruleIDStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196")) // Red

	urlStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")). // Blue
			Underline(true)

	fileLocStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("252")) // Light gray

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")) // Gray

	fixStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")) // Green

	severityStyles = map[violation.Severity]lipgloss.Style{
		violation.SeverityError: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196")), // Red
		violation.SeverityWarning: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214")), // Orange
		violation.SeverityInfo: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")), // Blue
	}
)

// TextReporter formats violations as styled terminal output.
type TextReporter struct {
	writer io.Writer
	color  bool
}

// NewTextReporter creates a new text reporter. color nil means
// auto-detect.
func NewTextReporter(w io.Writer, color *bool) *TextReporter {
	enabled := useColors
	if color != nil {
		enabled = *color
	}
	return &TextReporter{writer: w, color: enabled}
}

// Report implements Reporter.
func (r *TextReporter) Report(results []FileResult, metadata Metadata) error {
	total := 0
	for _, fr := range results {
		for _, v := range fr.Violations {
			if err := r.printViolation(fr, v); err != nil {
				return err
			}
			total++
		}
	}
	return r.printSummary(total, metadata)
}

func (r *TextReporter) printViolation(fr FileResult, v violation.Violation) error {
	pos := fr.Source.Locate(v.Span.Start)
	loc := fmt.Sprintf("%s:%d:%d", fr.Source.Name, pos.Line, pos.Column)
	sevLabel := strings.ToUpper(v.Severity.String())

	var b strings.Builder
	if r.color {
		sevStyle, ok := severityStyles[v.Severity]
		if !ok {
			sevStyle = severityStyles[violation.SeverityWarning]
		}
		fmt.Fprintf(&b, "%s %s %s\n", fileLocStyle.Render(loc),
			sevStyle.Render(sevLabel+":"), ruleIDStyle.Render(v.RuleID))
		fmt.Fprintf(&b, "  %s\n", v.Message)
		if v.Help != "" {
			fmt.Fprintf(&b, "  %s\n", helpStyle.Render("help: "+v.Help))
		}
		if v.IsFixable() {
			fmt.Fprintf(&b, "  %s\n", fixStyle.Render("fix: "+v.Fix.Description))
		}
		if v.DocURL != "" {
			fmt.Fprintf(&b, "  %s\n", urlStyle.Render(v.DocURL))
		}
	} else {
		fmt.Fprintf(&b, "%s %s: %s\n", loc, sevLabel, v.RuleID)
		fmt.Fprintf(&b, "  %s\n", v.Message)
		if v.Help != "" {
			fmt.Fprintf(&b, "  help: %s\n", v.Help)
		}
		if v.IsFixable() {
			fmt.Fprintf(&b, "  fix: %s\n", v.Fix.Description)
		}
		if v.DocURL != "" {
			fmt.Fprintf(&b, "  %s\n", v.DocURL)
		}
	}
	b.WriteByte('\n')
	_, err := io.WriteString(r.writer, b.String())
	return err
}

func (r *TextReporter) printSummary(total int, metadata Metadata) error {
	var summary string
	if total == 0 {
		summary = fmt.Sprintf("no violations in %d file(s)\n", metadata.FilesScanned)
	} else {
		summary = fmt.Sprintf("%d violation(s) in %d file(s), %d rule(s) enabled\n",
			total, metadata.FilesScanned, metadata.RulesEnabled)
	}
	_, err := io.WriteString(r.writer, summary)
	return err
}
