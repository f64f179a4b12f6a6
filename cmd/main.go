package main

import (
	"context"
	"os"

	"github.com/desertthunder/shelf/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)
	runner := NewRunner(RunnerOpts{Logger: logger})

	err := newApp(runner).Run(context.Background(), os.Args)
	if cerr := runner.Close(); cerr != nil {
		logger.Warn("failed to close store", "error", cerr)
	}
	if err != nil {
		logger.Fatalf("application error: %v", err)
	}
}

// newApp builds the root command. Without a subcommand it starts the interactive menu.
func newApp(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "shelf",
		Usage:     "Manage a personal library catalog",
		Version:   "1.0.0",
		Writer:    r.output,
		ErrWriter: r.output,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
			&cli.StringFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Usage:   "Catalog location, overrides the configured path for the active driver",
			},
			&cli.StringFlag{
				Name:  "driver",
				Usage: "Storage driver (json or sqlite), overrides the configuration",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Enable debug logging",
			},
		},
		Action:   r.Menu,
		Commands: r.register(),
	}
}
