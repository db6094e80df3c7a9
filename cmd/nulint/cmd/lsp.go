package cmd

import (
	stdcontext "context"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"

	"github.com/nulint/nulint/internal/lspserver"
	"github.com/nulint/nulint/internal/nulog"
)

func lspCommand() *cli.Command {
	return &cli.Command{
		Name:  "lsp",
		Usage: "Run the language server on stdin/stdout",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "stdio",
				Usage: "Use stdio transport (the only supported transport)",
				Value: true,
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Enable debug logging on stderr",
			},
		},
		Action: func(_ stdcontext.Context, cmd *cli.Command) error {
			level := logrus.InfoLevel
			if cmd.Bool("verbose") {
				level = logrus.DebugLevel
			}
			log := nulog.New(os.Stderr, level)
			return lspserver.New(os.Stdin, os.Stdout, log).Run()
		},
	}
}
