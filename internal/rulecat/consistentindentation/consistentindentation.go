// Package consistentindentation implements the consistent_indentation
// regex rule. The expected style can come from a project's resolved
// .editorconfig definition via NewWithDefinition; resolution happens
// outside the pass, so the rule itself does no I/O.
package consistentindentation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/editorconfig/editorconfig-core-go/v2"

	"github.com/nulint/nulint/internal/lintctx"
	"github.com/nulint/nulint/internal/registry"
	"github.com/nulint/nulint/internal/rule"
	"github.com/nulint/nulint/internal/span"
	"github.com/nulint/nulint/internal/violation"
)

// Style is the expected indentation of a buffer.
type Style struct {
	// UseTabs selects tab indentation; false means spaces.
	UseTabs bool

	// Size is the number of spaces per indent level when UseTabs is
	// false.
	Size int
}

// DefaultStyle is four-space indentation, the convention in the
// script language's standard library.
var DefaultStyle = Style{UseTabs: false, Size: 4}

var leadingWhitespace = regexp.MustCompile(`(?m)^[ \t]+`)

// New returns the consistent_indentation rule with DefaultStyle.
func New() rule.Rule {
	return NewWithStyle(DefaultStyle)
}

// NewWithDefinition builds the rule from a resolved .editorconfig
// definition. Properties the definition leaves unset keep their
// defaults.
func NewWithDefinition(def *editorconfig.Definition) rule.Rule {
	style := DefaultStyle
	if def != nil {
		if def.IndentStyle == editorconfig.IndentStyleTab {
			style.UseTabs = true
		}
		if n, err := strconv.Atoi(def.IndentSize); err == nil && n > 0 {
			style.Size = n
		}
	}
	return NewWithStyle(style)
}

// NewWithStyle builds the rule for an explicit style.
func NewWithStyle(style Style) rule.Rule {
	return rule.RegexRule{
		Meta: rule.Metadata{
			ID:              "consistent_indentation",
			Name:            "Consistent Indentation",
			Description:     "Indentation must match the project's declared style",
			DocURL:          "https://nulint.dev/rules/consistent_indentation",
			Category:        rule.CategoryStyle,
			DefaultSeverity: violation.SeverityInfo,
			Groups:          []string{"spacing"},
		},
		Pattern: leadingWhitespace,
		OnMatch: func(ctx *lintctx.Context, m []int) []violation.Violation {
			return checkIndent(ctx, span.Span{Start: m[0], End: m[1]}, style)
		},
	}
}

func checkIndent(ctx *lintctx.Context, sp span.Span, style Style) []violation.Violation {
	indent := ctx.Slice(sp)
	if style.UseTabs {
		if !strings.Contains(indent, " ") {
			return nil
		}
		fix := violation.NewFix(
			"convert the indentation to tabs",
			violation.Replacement{Span: sp, NewText: toTabs(indent, style.Size)},
		)
		return []violation.Violation{{
			Message: "space indentation in a tab-indented project",
			Span:    sp,
			Fix:     &fix,
		}}
	}
	if strings.Contains(indent, "\t") {
		fix := violation.NewFix(
			fmt.Sprintf("convert the indentation to %d-space units", style.Size),
			violation.Replacement{Span: sp, NewText: strings.ReplaceAll(indent, "\t", strings.Repeat(" ", style.Size))},
		)
		return []violation.Violation{{
			Message: "tab indentation in a space-indented project",
			Span:    sp,
			Fix:     &fix,
		}}
	}
	return nil
}

// toTabs rewrites leading whitespace as tabs, one per size-space run;
// a trailing partial run is kept as spaces.
func toTabs(indent string, size int) string {
	spaces := strings.Count(indent, " ")
	tabs := strings.Count(indent, "\t") + spaces/size
	return strings.Repeat("\t", tabs) + strings.Repeat(" ", spaces%size)
}

func init() {
	registry.Register(New())
}
