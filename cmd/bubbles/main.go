package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"
)

var (
	version = "dev"
	commit  = "none"    //nolint:unused // set via ldflags at build time
	date    = "unknown" //nolint:unused // set via ldflags at build time
)

func newApp() *cli.App {
	return &cli.App{
		Name:    "bubbles",
		Usage:   "Commit churn and test-coverage bubbles from git history",
		Version: version,
		Description: `bubbles reads every change-set of a git repository, counts changed lines
in testable files and in test files, and writes per-year, per-month and
per-day JSON buckets plus a static viewer.

Configuration is read from .commit-bubbles.yml in the target directory.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file (YAML, JSON, or TOML)",
				EnvVars: []string{"BUBBLES_CONFIG"},
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Enable debug logging",
			},
			&cli.BoolFlag{
				Name:  "no-color",
				Usage: "Disable colored output",
			},
		},
		Before: func(c *cli.Context) error {
			if c.Bool("no-color") {
				color.NoColor = true
			}
			return nil
		},
		Commands: []*cli.Command{
			generateCmd(),
			summaryCmd(),
			initCmd(),
			mcpCmd(),
		},
		DefaultCommand: "generate",
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}
}
