package registry

import (
	"fmt"
	"sort"

	"github.com/nulint/nulint/internal/rule"
	"github.com/nulint/nulint/internal/violation"
)

// Selection is the resolved configuration input for one lint pass:
// which rules or groups to activate, which to suppress, and per-rule
// severity overrides. The zero value selects every rule at its declared
// severity.
type Selection struct {
	// Enabled lists rule ids or group names to activate. Empty means
	// all rules.
	Enabled []string

	// Disabled lists rule ids or group names to suppress. Disabled
	// wins over Enabled on conflict.
	Disabled []string

	// SeverityOverrides maps rule ids to a severity replacing the
	// rule's declared default.
	SeverityOverrides map[string]violation.Severity
}

// Warning is a non-fatal configuration problem: an unknown id or group.
// The pass proceeds with the best-effort resolved selection.
type Warning struct {
	Message string
}

func (w Warning) String() string { return w.Message }

// Resolve expands sel against the registry into the ordered list of
// rule instances to run, plus warnings for unknown ids or groups.
func (r *Registry) Resolve(sel Selection) ([]rule.Rule, []Warning) {
	var warnings []Warning
	groups := r.Groups()

	// expand turns a mixed id/group list into a rule-id set.
	expand := func(names []string, kind string) map[string]bool {
		set := make(map[string]bool)
		for _, name := range names {
			if ids, ok := groups[name]; ok {
				for _, id := range ids {
					set[id] = true
				}
				continue
			}
			if r.Has(name) {
				set[name] = true
				continue
			}
			warnings = append(warnings, Warning{
				Message: fmt.Sprintf("unknown rule or group %q in %s list", name, kind),
			})
		}
		return set
	}

	enabled := expand(sel.Enabled, "enabled")
	disabled := expand(sel.Disabled, "disabled")

	for id := range sel.SeverityOverrides {
		if !r.Has(id) {
			warnings = append(warnings, Warning{
				Message: fmt.Sprintf("severity override for unknown rule %q", id),
			})
		}
	}

	var selected []rule.Rule
	for _, rl := range r.All() {
		id := rl.Metadata().ID
		if disabled[id] {
			continue
		}
		if len(sel.Enabled) > 0 && !enabled[id] {
			continue
		}
		selected = append(selected, rl)
	}
	sort.Slice(selected, func(i, j int) bool {
		return selected[i].Metadata().ID < selected[j].Metadata().ID
	})
	return selected, warnings
}

// Severity returns the severity a violation of the given rule should
// carry under sel: the override when present, the declared default
// otherwise.
func (sel Selection) Severity(meta rule.Metadata) violation.Severity {
	if s, ok := sel.SeverityOverrides[meta.ID]; ok {
		return s
	}
	return meta.DefaultSeverity
}
