package config

import (
	"encoding/json"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
)

// ruleOptionSchemas holds the JSON schema for each rule that accepts
// options. Tables for rules without a schema are rejected at load time
// so typos surface immediately instead of being silently ignored.
var ruleOptionSchemas = map[string]string{
	"consistent_indentation": `{
		"type": "object",
		"additionalProperties": false,
		"properties": {
			"indent-style": {"type": "string", "enum": ["tab", "space"]},
			"indent-size": {"type": "integer", "minimum": 1, "maximum": 16}
		}
	}`,
	"no_bash_subprocess": `{
		"type": "object",
		"additionalProperties": false,
		"properties": {
			"allowed-shells": {"type": "array", "items": {"type": "string"}}
		}
	}`,
}

// validateRuleOptions checks every [rules.<id>] table against its
// schema.
func validateRuleOptions(tables map[string]map[string]any) error {
	for ruleID, opts := range tables {
		src, ok := ruleOptionSchemas[ruleID]
		if !ok {
			return fmt.Errorf("rule %q does not accept options", ruleID)
		}
		resolved, err := resolveSchema(ruleID, src)
		if err != nil {
			return err
		}
		if err := resolved.Validate(normalize(opts)); err != nil {
			return fmt.Errorf("invalid options for rule %q: %w", ruleID, err)
		}
	}
	return nil
}

func resolveSchema(ruleID, src string) (*jsonschema.Resolved, error) {
	var schema jsonschema.Schema
	if err := json.Unmarshal([]byte(src), &schema); err != nil {
		return nil, fmt.Errorf("parse schema for rule %q: %w", ruleID, err)
	}
	resolved, err := schema.Resolve(nil)
	if err != nil {
		return nil, fmt.Errorf("resolve schema for rule %q: %w", ruleID, err)
	}
	return resolved, nil
}

// normalize round-trips a value through JSON so the validator sees
// canonical JSON types (TOML integers arrive as int64, not float64).
func normalize(v any) any {
	data, err := json.Marshal(v)
	if err != nil {
		return v
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return v
	}
	return out
}
