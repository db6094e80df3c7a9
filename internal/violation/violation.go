// Package violation defines the diagnostic and fix data model shared by
// every rule kind: the Violation record, Severity, Fix, and Replacement.
package violation

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/nulint/nulint/internal/span"
)

// Severity is the resolved criticality of a violation.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityInfo
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	default:
		return "unknown"
	}
}

// MarshalJSON renders the severity as its lowercase string name, the
// spelling the violation wire schema uses.
func (s Severity) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// ParseSeverity parses a severity string (case-insensitive).
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToLower(s) {
	case "error":
		return SeverityError, nil
	case "warning", "warn":
		return SeverityWarning, nil
	case "info":
		return SeverityInfo, nil
	default:
		return SeverityError, fmt.Errorf("unknown severity %q", s)
	}
}

// Replacement is a single textual edit: replace [Span.Start, Span.End)
// with NewText. An empty NewText deletes the span.
type Replacement struct {
	Span    span.Span
	NewText string
}

// Fix is a non-empty, mutually non-overlapping set of replacements plus
// a human explanation.
type Fix struct {
	Description  string
	Replacements []Replacement
}

// NewFix builds a Fix, panicking if two replacements within it overlap,
// a violation of the contract that a single fix's edits don't collide
// with each other. Cross-violation collisions are the applier's job.
func NewFix(description string, replacements ...Replacement) Fix {
	for i := range replacements {
		for j := i + 1; j < len(replacements); j++ {
			if replacements[i].Span.Overlaps(replacements[j].Span) {
				panic(fmt.Sprintf("nulint: overlapping replacements within one fix: %v and %v", replacements[i].Span, replacements[j].Span))
			}
		}
	}
	return Fix{Description: description, Replacements: replacements}
}

// Violation is a single diagnostic produced by a rule or by the
// parser-diagnostic bridge (component I).
type Violation struct {
	RuleID   string
	Message  string
	Span     span.Span
	Severity Severity
	Help     string
	DocURL   string
	Groups   []string
	File     string
	Fix      *Fix

	// Detail carries extra diagnostic context that is not part of the
	// wire schema, e.g. the log tail attached to a rule-crash report.
	Detail string

	// Descriptions carries the rule's short/long description for LSP
	// hover rendering; populated by the engine from rule metadata.
	Descriptions Descriptions
}

// Descriptions points at a rule's documentation strings so hover
// assembly does not need registry access.
type Descriptions struct {
	Short string
	Long  string
}

// IsFixable reports whether this violation carries an applicable fix.
func (v Violation) IsFixable() bool {
	return v.Fix != nil && len(v.Fix.Replacements) > 0
}

// jsonReplacement and jsonFix mirror the external wire shape.
type jsonReplacement struct {
	Span    jsonSpan `json:"span"`
	NewText string   `json:"new_text"`
}

type jsonFix struct {
	Description  string            `json:"description"`
	Replacements []jsonReplacement `json:"replacements"`
}

type jsonSpan struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

type jsonViolation struct {
	RuleID   string   `json:"rule_id"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
	Span     jsonSpan `json:"span"`
	Help     string   `json:"help,omitempty"`
	DocURL   string   `json:"doc_url,omitempty"`
	Groups   []string `json:"groups"`
	Fix      *jsonFix `json:"fix,omitempty"`
}

// MarshalJSON renders the violation using the external wire schema.
func (v Violation) MarshalJSON() ([]byte, error) {
	out := jsonViolation{
		RuleID:   v.RuleID,
		Message:  v.Message,
		Severity: v.Severity,
		Span:     jsonSpan{Start: v.Span.Start, End: v.Span.End},
		Help:     v.Help,
		DocURL:   v.DocURL,
		Groups:   v.Groups,
	}
	if out.Groups == nil {
		out.Groups = []string{}
	}
	if v.Fix != nil {
		jf := &jsonFix{Description: v.Fix.Description}
		for _, r := range v.Fix.Replacements {
			jf.Replacements = append(jf.Replacements, jsonReplacement{
				Span:    jsonSpan{Start: r.Span.Start, End: r.Span.End},
				NewText: r.NewText,
			})
		}
		out.Fix = jf
	}
	return json.Marshal(out)
}
