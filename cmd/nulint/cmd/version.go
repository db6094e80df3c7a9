package cmd

import (
	stdcontext "context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/nulint/nulint/internal/version"
)

func versionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Print version information",
		Action: func(_ stdcontext.Context, _ *cli.Command) error {
			fmt.Printf("nulint %s\n", version.Version())
			if commit := version.Commit(); commit != "" {
				fmt.Printf("commit: %s\n", commit)
			}
			fmt.Printf("go: %s\n", version.GoVersion())
			return nil
		},
	}
}
