// Package jq translates a small subset of jq filter expressions into
// native script-language pipelines. It backs the jq-family rules that
// rewrite external `^jq` invocations: only expressions the translator
// fully understands produce a fix; everything else is reported without
// one.
package jq

import (
	"fmt"
	"strings"
)

// Context selects where the JSON data comes from.
type Context int

const (
	// ContextPipeline means the data arrives from stdin: the
	// translation starts with `from json`.
	ContextPipeline Context = iota
	// ContextFile means the data arrives from a file path: the
	// translation is prefixed with `open <file> | from json`.
	ContextFile
)

// Translate converts filter (a jq expression) into a script-language
// pipeline. For ContextFile, file is the path argument of the jq call.
// ok is false when the filter uses anything outside the supported
// subset: identity, field access, array iteration, length, keys,
// map(·), and select(·).
func Translate(filter string, ctx Context, file string) (string, bool) {
	stages, ok := translateFilter(filter)
	if !ok {
		return "", false
	}
	prefix := []string{"from json"}
	if ctx == ContextFile {
		prefix = []string{fmt.Sprintf("open %s", file), "from json"}
	}
	return strings.Join(append(prefix, stages...), " | "), true
}

// translateFilter translates one jq filter (possibly a |-chain) into
// pipeline stages, without the data-source prefix.
func translateFilter(filter string) ([]string, bool) {
	var stages []string
	for _, part := range splitPipe(filter) {
		part = strings.TrimSpace(part)
		st, ok := translateStep(part)
		if !ok {
			return nil, false
		}
		if st != "" {
			stages = append(stages, st)
		}
	}
	return stages, true
}

// splitPipe splits a jq filter on top-level '|' (not inside parens).
func splitPipe(s string) []string {
	var parts []string
	depth := 0
	last := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
		case '|':
			if depth == 0 {
				parts = append(parts, s[last:i])
				last = i + 1
			}
		}
	}
	parts = append(parts, s[last:])
	return parts
}

func translateStep(step string) (string, bool) {
	switch {
	case step == "" || step == ".":
		// Identity: the parsed value flows through unchanged.
		return "", true
	case step == ".[]":
		// Array iteration: a list already streams through the pipeline.
		return "", true
	case step == "length":
		return "length", true
	case step == "keys":
		return "columns", true
	case strings.HasPrefix(step, "map(") && strings.HasSuffix(step, ")"):
		return translateMap(step[len("map(") : len(step)-1])
	case strings.HasPrefix(step, "select(") && strings.HasSuffix(step, ")"):
		return translateSelect(step[len("select(") : len(step)-1])
	case strings.HasPrefix(step, "."):
		return translatePath(step)
	default:
		return "", false
	}
}

// translatePath handles `.a`, `.a.b`, and `.a[]` field access.
func translatePath(step string) (string, bool) {
	path := strings.TrimPrefix(step, ".")
	path = strings.TrimSuffix(path, "[]")
	if path == "" {
		return "", true
	}
	for _, seg := range strings.Split(path, ".") {
		if !isIdent(seg) {
			return "", false
		}
	}
	return "get " + path, true
}

// translateMap handles map(EXPR) for field-access bodies: mapping a
// field over a table is a plain column `get` in the script language.
func translateMap(body string) (string, bool) {
	body = strings.TrimSpace(body)
	if !strings.HasPrefix(body, ".") {
		return "", false
	}
	return translatePath(body)
}

// translateSelect handles select(.field OP value) comparisons.
func translateSelect(body string) (string, bool) {
	body = strings.TrimSpace(body)
	for _, op := range []string{"==", "!=", ">=", "<=", ">", "<"} {
		if idx := strings.Index(body, op); idx > 0 {
			lhs := strings.TrimSpace(body[:idx])
			rhs := strings.TrimSpace(body[idx+len(op):])
			if !strings.HasPrefix(lhs, ".") || rhs == "" {
				return "", false
			}
			field := strings.TrimPrefix(lhs, ".")
			if !isIdent(field) {
				return "", false
			}
			return fmt.Sprintf("where %s %s %s", field, op, rhs), true
		}
	}
	return "", false
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c == '_':
		case c >= '0' && c <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}
