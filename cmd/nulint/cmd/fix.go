package cmd

import (
	stdcontext "context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/nulint/nulint/internal/discovery"
	"github.com/nulint/nulint/internal/fixapply"
	"github.com/nulint/nulint/internal/lintctx"
	"github.com/nulint/nulint/internal/nulog"
	"github.com/nulint/nulint/internal/span"
	"github.com/nulint/nulint/internal/violation"
)

func fixCommand() *cli.Command {
	return &cli.Command{
		Name:      "fix",
		Usage:     "Apply fixes iteratively until the file is clean or converged",
		ArgsUsage: "[FILE|DIR|GLOB...]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file (default: auto-discover)",
			},
			&cli.BoolFlag{
				Name:    "dry-run",
				Aliases: []string{"n"},
				Usage:   "Show what would change without writing files",
			},
			&cli.StringSliceFlag{
				Name:  "enable",
				Usage: "Rule id or group to enable (restricts the set; can be repeated)",
			},
			&cli.StringSliceFlag{
				Name:  "disable",
				Usage: "Rule id or group to disable (can be repeated)",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Enable debug logging",
			},
		},
		Action: runFix,
	}
}

func runFix(_ stdcontext.Context, cmd *cli.Command) error {
	log := nulog.New(os.Stderr, logLevel(cmd))
	tail := nulog.WithTail(log, nulog.DefaultTailLimit)

	inputs := cmd.Args().Slice()
	if len(inputs) == 0 {
		inputs = []string{"."}
	}
	files, err := discovery.Discover(inputs, discovery.Options{})
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Fprintln(os.Stderr, "no script files found")
		os.Exit(ExitNoFiles)
	}

	stopSpinner := startFixSpinner(len(files))
	changed := 0
	remaining := 0
	for _, path := range files {
		cfg, err := loadConfig(cmd, path)
		if err != nil {
			stopSpinner()
			return err
		}
		text, err := os.ReadFile(path)
		if err != nil {
			stopSpinner()
			return err
		}

		sel, warnings := selection(cmd, cfg)
		for _, w := range warnings {
			log.Warn(w.Message)
		}
		eng := newEngine(cfg, sel, log, tail)
		tail.Reset()

		out := fixapply.Converge(span.NewSource(path, text), func(ctx *lintctx.Context) []violation.Violation {
			return eng.Run(ctx).Violations
		})
		remaining += len(out.Violations)

		if out.Applied == 0 {
			continue
		}
		changed++
		if cmd.Bool("dry-run") {
			fmt.Printf("%s: %d replacement(s) over %d iteration(s) (dry run)\n",
				path, out.Applied, out.Iterations)
			continue
		}
		if err := os.WriteFile(path, out.Source.Text, 0o644); err != nil {
			stopSpinner()
			return err
		}
		note := ""
		if out.ReachedCap {
			note = " (converged to cap)"
		}
		if out.CycleDetected {
			note = " (stopped on fix cycle)"
		}
		fmt.Printf("%s: applied %d replacement(s) over %d iteration(s)%s\n",
			path, out.Applied, out.Iterations, note)
	}
	stopSpinner()

	fmt.Printf("fixed %d of %d file(s), %d violation(s) remain\n", changed, len(files), remaining)
	return nil
}
