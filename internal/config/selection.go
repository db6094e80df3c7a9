package config

import (
	"fmt"

	"github.com/nulint/nulint/internal/registry"
	"github.com/nulint/nulint/internal/violation"
)

// Selection resolves the config's select section into the engine's
// Selection value. Malformed severity names are reported as warnings
// and skipped; the pass proceeds with the best-effort result.
func (c *Config) Selection() (registry.Selection, []registry.Warning) {
	sel := registry.Selection{
		Enabled:  c.Select.Enabled,
		Disabled: c.Select.Disabled,
	}
	var warnings []registry.Warning
	if len(c.Select.SeverityOverrides) > 0 {
		sel.SeverityOverrides = make(map[string]violation.Severity, len(c.Select.SeverityOverrides))
		for ruleID, name := range c.Select.SeverityOverrides {
			sev, err := violation.ParseSeverity(name)
			if err != nil {
				warnings = append(warnings, registry.Warning{
					Message: fmt.Sprintf("invalid severity %q for rule %q", name, ruleID),
				})
				continue
			}
			sel.SeverityOverrides[ruleID] = sev
		}
	}
	return sel, warnings
}

// FailSeverity converts the output.fail-level setting to the lowest
// severity that should flip the exit code. ok is false for "none".
func (c *Config) FailSeverity() (violation.Severity, bool) {
	switch c.Output.FailLevel {
	case "none":
		return 0, false
	case "":
		return violation.SeverityWarning, true
	default:
		sev, err := violation.ParseSeverity(c.Output.FailLevel)
		if err != nil {
			return violation.SeverityWarning, true
		}
		return sev, true
	}
}
