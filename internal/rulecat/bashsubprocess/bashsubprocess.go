// Package bashsubprocess implements the no_bash_subprocess rule:
// shelling out to `^bash -c "..."` for work the pipeline language does
// natively costs a process spawn and a quoting layer.
package bashsubprocess

import (
	"fmt"
	"strings"

	"github.com/nulint/nulint/internal/langparser"
	"github.com/nulint/nulint/internal/lintctx"
	"github.com/nulint/nulint/internal/registry"
	"github.com/nulint/nulint/internal/rule"
	"github.com/nulint/nulint/internal/rulehelp"
	"github.com/nulint/nulint/internal/shell"
	"github.com/nulint/nulint/internal/violation"
)

// New returns the no_bash_subprocess rule.
func New() rule.Rule {
	return rule.ASTRule{
		Meta: rule.Metadata{
			ID:              "no_bash_subprocess",
			Name:            "No Bash Subprocess",
			Description:     "Avoid `bash -c` subprocesses for work the pipeline can do",
			LongDescription: "A `^bash -c` call spawns a shell, re-quotes the embedded script, and loses structured data at the boundary. Most short scripts translate directly to a native pipeline.",
			DocURL:          "https://nulint.dev/rules/no_bash_subprocess",
			Category:        rule.CategoryBestPractices,
			DefaultSeverity: violation.SeverityWarning,
			Groups:          []string{"posix", "external"},
		},
		Fn: check,
	}
}

func check(ctx *lintctx.Context) []violation.Violation {
	var out []violation.Violation
	for _, call := range ctx.Calls() {
		shellName, script, ok := subprocessScript(call)
		if !ok {
			continue
		}
		variant := shell.VariantFromShell(shellName)
		names := shell.CommandNames(script, variant)

		msg := fmt.Sprintf("`%s -c` spawns a shell subprocess", shellName)
		help := "express the script as a native pipeline"
		if len(names) > 0 {
			help = fmt.Sprintf("the embedded script runs [%s]; express it as a native pipeline",
				strings.Join(names, ", "))
		}
		out = append(out, violation.Violation{
			Message: msg,
			Span:    call.Span,
			Help:    help,
		})
	}
	return out
}

// subprocessScript recognizes `^bash -c "script"` / `^sh -c 'script'`
// invocations and extracts the embedded script text.
func subprocessScript(call *langparser.Call) (shellName, script string, ok bool) {
	switch call.Name {
	case "bash", "sh", "dash", "zsh":
	default:
		return "", "", false
	}
	if !rulehelp.IsExternal(call) {
		return "", "", false
	}
	if _, hasC := call.FlagArg("c"); !hasC {
		return "", "", false
	}
	arg, found := call.Positional(0)
	if !found || arg.Kind != langparser.ArgString {
		return "", "", false
	}
	return call.Name, arg.Value, true
}

func init() {
	registry.Register(New())
}
