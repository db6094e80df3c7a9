package cmd

import (
	stdcontext "context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"

	"github.com/nulint/nulint/internal/config"
	"github.com/nulint/nulint/internal/discovery"
	"github.com/nulint/nulint/internal/engine"
	"github.com/nulint/nulint/internal/lintctx"
	"github.com/nulint/nulint/internal/nulog"
	"github.com/nulint/nulint/internal/registry"
	"github.com/nulint/nulint/internal/reporter"
	"github.com/nulint/nulint/internal/rulecat/consistentindentation"
	"github.com/nulint/nulint/internal/span"
	"github.com/nulint/nulint/internal/version"

	// Register the full rule catalogue.
	_ "github.com/nulint/nulint/internal/rulecat/all"
)

// newEngine builds an engine for one target: the given selection, the
// shared logger with its crash tail, and the indentation rule rebound
// to the target's resolved .editorconfig when one is in scope.
func newEngine(cfg *config.Config, sel registry.Selection, log *logrus.Logger, tail *nulog.TailBuffer) *engine.Engine {
	eng := engine.New(sel)
	eng.Logger = log
	eng.LogTail = tail
	if cfg.EditorConfig != nil {
		reg := registry.DefaultRegistry().Clone()
		reg.Replace(consistentindentation.NewWithDefinition(cfg.EditorConfig))
		eng.Registry = reg
	}
	return eng
}

func lintCommand() *cli.Command {
	return &cli.Command{
		Name:      "lint",
		Usage:     "Lint script file(s) for issues",
		ArgsUsage: "[FILE|DIR|GLOB...]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file (default: auto-discover)",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: text, json, sarif",
				Sources: cli.EnvVars("NULINT_OUTPUT_FORMAT"),
			},
			&cli.BoolFlag{
				Name:    "no-color",
				Usage:   "Disable colored output",
				Sources: cli.EnvVars("NO_COLOR"),
			},
			&cli.StringFlag{
				Name:    "fail-level",
				Usage:   "Minimum severity to cause non-zero exit: error, warning, info, none",
				Sources: cli.EnvVars("NULINT_OUTPUT_FAIL_LEVEL"),
			},
			&cli.StringSliceFlag{
				Name:    "exclude",
				Usage:   "Glob pattern to exclude files (can be repeated)",
				Sources: cli.EnvVars("NULINT_EXCLUDE"),
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
		Action: runLint,
	}
}

func runLint(_ stdcontext.Context, cmd *cli.Command) error {
	log := nulog.New(os.Stderr, logLevel(cmd))
	tail := nulog.WithTail(log, nulog.DefaultTailLimit)

	results, rulesEnabled, cfg, err := lintInputs(cmd, log, tail)
	if err != nil {
		return err
	}
	if results == nil {
		os.Exit(ExitNoFiles)
	}

	format, err := reporter.ParseFormat(pick(cmd.String("format"), cfg.Output.Format))
	if err != nil {
		return err
	}
	rep, err := reporter.New(format, os.Stdout)
	if err != nil {
		return err
	}
	if format == reporter.FormatText && cmd.Bool("no-color") {
		color := false
		rep = reporter.NewTextReporter(os.Stdout, &color)
	}
	meta := reporter.Metadata{
		FilesScanned: len(results),
		RulesEnabled: rulesEnabled,
		ToolVersion:  version.Version(),
	}
	if err := rep.Report(results, meta); err != nil {
		return err
	}

	if failLevel := pick(cmd.String("fail-level"), cfg.Output.FailLevel); failLevel != "" {
		cfg.Output.FailLevel = failLevel
	}
	if sev, ok := cfg.FailSeverity(); ok && reporter.CountBySeverity(results, sev) > 0 {
		os.Exit(ExitViolations)
	}
	return nil
}

// lintInputs discovers, reads, and lints every input file. A nil
// result slice with nil error means no files matched.
func lintInputs(cmd *cli.Command, log *logrus.Logger, tail *nulog.TailBuffer) ([]reporter.FileResult, int, *config.Config, error) {
	inputs := cmd.Args().Slice()
	if len(inputs) == 0 {
		inputs = []string{"."}
	}
	files, err := discovery.Discover(inputs, discovery.Options{
		ExcludePatterns: cmd.StringSlice("exclude"),
	})
	if err != nil {
		return nil, 0, nil, err
	}
	if len(files) == 0 {
		fmt.Fprintln(os.Stderr, "no script files found")
		return nil, 0, nil, nil
	}

	lastCfg := config.Default()
	rulesEnabled := 0
	results := make([]reporter.FileResult, 0, len(files))
	for _, path := range files {
		cfg, err := loadConfig(cmd, path)
		if err != nil {
			return nil, 0, nil, err
		}
		lastCfg = cfg

		text, err := os.ReadFile(path)
		if err != nil {
			return nil, 0, nil, err
		}
		src := span.NewSource(path, text)

		sel, warnings := selection(cmd, cfg)
		eng := newEngine(cfg, sel, log, tail)
		tail.Reset()
		res := eng.Run(lintctx.New(src))
		for _, w := range warnings {
			log.Warn(w.Message)
		}
		for _, w := range res.ConfigWarnings {
			log.Warn(w.Message)
		}

		rules, _ := eng.Registry.Resolve(sel)
		if len(rules) > rulesEnabled {
			rulesEnabled = len(rules)
		}
		results = append(results, reporter.FileResult{Source: src, Violations: res.Violations})
	}
	return results, rulesEnabled, lastCfg, nil
}

func loadConfig(cmd *cli.Command, path string) (*config.Config, error) {
	if explicit := cmd.String("config"); explicit != "" {
		return config.LoadFromFile(explicit)
	}
	return config.Load(path)
}

// selection merges the config's select section with CLI overrides.
func selection(cmd *cli.Command, cfg *config.Config) (registry.Selection, []registry.Warning) {
	sel, warnings := cfg.Selection()
	if enable := cmd.StringSlice("enable"); len(enable) > 0 {
		sel.Enabled = enable
	}
	sel.Disabled = append(sel.Disabled, cmd.StringSlice("disable")...)
	return sel, warnings
}

func logLevel(cmd *cli.Command) logrus.Level {
	if cmd.Bool("verbose") {
		return logrus.DebugLevel
	}
	return logrus.WarnLevel
}

// pick returns the first non-empty string.
func pick(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
