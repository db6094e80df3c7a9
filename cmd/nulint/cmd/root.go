package cmd

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/nulint/nulint/internal/version"
)

// Exit codes.
const (
	ExitSuccess     = 0 // No violations (or below fail-level threshold)
	ExitViolations  = 1 // Violations found at or above fail-level
	ExitConfigError = 2 // Parse or config error
	ExitNoFiles     = 3 // No script files found
)

// NewApp creates the CLI application.
func NewApp() *cli.Command {
	return &cli.Command{
		Name:    "nulint",
		Usage:   "A linter for shell-pipeline scripts",
		Version: version.Version(),
		Description: `nulint is a fast, configurable linter for shell-pipeline scripts.

It checks scripts for style issues, deprecated constructs, needless
external-command invocations, and leaked secrets, and can rewrite most
of what it finds.

Examples:
  nulint lint script.nu
  nulint lint --format json .
  nulint fix script.nu`,
		Commands: []*cli.Command{
			lintCommand(),
			fixCommand(),
			lspCommand(),
			versionCommand(),
		},
	}
}

// Execute runs the CLI application.
func Execute() error {
	return NewApp().Run(context.Background(), os.Args)
}
