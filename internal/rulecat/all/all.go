// Package all imports all rule packages to register them.
// Import this package with a blank identifier to enable all rules:
//
//	import _ "github.com/nulint/nulint/internal/rulecat/all"
package all

import (
	"github.com/nulint/nulint/internal/diagrules"
	"github.com/nulint/nulint/internal/registry"

	// Import all rule packages to trigger their init() registration.
	_ "github.com/nulint/nulint/internal/rulecat/avoidselfimport"
	_ "github.com/nulint/nulint/internal/rulecat/bashsubprocess"
	_ "github.com/nulint/nulint/internal/rulecat/consistentindentation"
	_ "github.com/nulint/nulint/internal/rulecat/explicitlongflags"
	_ "github.com/nulint/nulint/internal/rulecat/jqfamily"
	_ "github.com/nulint/nulint/internal/rulecat/nohardcodedsecrets"
	_ "github.com/nulint/nulint/internal/rulecat/notrailingspaces"
	_ "github.com/nulint/nulint/internal/rulecat/splitfirsttoparse"
	_ "github.com/nulint/nulint/internal/rulecat/underscorecommands"
	_ "github.com/nulint/nulint/internal/rulecat/useloadenv"
)

// The parser-diagnostic bridge rules are ordinary rules from the
// engine's perspective; they register here alongside the catalogue.
func init() {
	registry.Register(diagrules.ParseErrorRule())
	registry.Register(diagrules.DeprecatedRule())
}
