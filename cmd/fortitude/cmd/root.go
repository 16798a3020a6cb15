package cmd

import (
	"context"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"

	"github.com/wharflab/fortitude/internal/version"
)

// NewApp creates the CLI application
func NewApp() *cli.Command {
	return &cli.Command{
		Name:    "fortitude",
		Usage:   "A Fortran linter",
		Version: version.Version(),
		Description: `fortitude checks Fortran sources for style, typing and modernisation
issues, and can fix many of them in place.

Examples:
  fortitude check
  fortitude check --select S,T --fix src/
  fortitude explain S041`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config-file",
				Usage: "Path to a fortitude.toml or fpm.toml (default: auto-discover)",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Enable debug logging",
			},
			&cli.BoolFlag{
				Name:  "quiet",
				Usage: "Only log errors",
			},
		},
		Before: setupLogging,
		Commands: []*cli.Command{
			checkCommand(),
			explainCommand(),
			versionCommand(),
		},
	}
}

// Execute runs the CLI application
func Execute() error {
	return NewApp().Run(context.Background(), os.Args)
}

func setupLogging(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	logrus.SetOutput(os.Stderr)
	logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	logrus.SetLevel(logLevel(cmd.Bool("verbose"), cmd.Bool("quiet")))
	return ctx, nil
}

func logLevel(verbose, quiet bool) logrus.Level {
	switch {
	case verbose:
		return logrus.DebugLevel
	case quiet:
		return logrus.ErrorLevel
	default:
		return logrus.WarnLevel
	}
}
