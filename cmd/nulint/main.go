// Command nulint is the CLI entry point for the script linter.
package main

import (
	"fmt"
	"os"

	"github.com/nulint/nulint/cmd/nulint/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(cmd.ExitConfigError)
	}
}
