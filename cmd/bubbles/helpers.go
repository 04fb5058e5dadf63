package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/panbanda/bubbles/internal/progress"
	"github.com/panbanda/bubbles/pkg/analyzer"
	"github.com/panbanda/bubbles/pkg/analyzer/bubbles"
	"github.com/panbanda/bubbles/pkg/config"
)

// argOr returns positional argument n, or def when it is absent.
func argOr(c *cli.Context, n int, def string) string {
	if c.Args().Len() > n {
		return c.Args().Get(n)
	}
	return def
}

// loadConfig reads --config when given, otherwise the configuration file in dir.
func loadConfig(c *cli.Context, dir string) (*config.Config, error) {
	if path := c.String("config"); path != "" {
		return config.Load(path)
	}
	return config.LoadFromDir(dir)
}

// applyOverrides copies explicitly set command flags over the configuration.
func applyOverrides(c *cli.Context, cfg *config.Config) {
	if c.IsSet("native-git") {
		cfg.NativeGit = c.Bool("native-git")
	}
	if c.IsSet("commits-file") {
		cfg.SourceCommitsFromFile = c.String("commits-file")
	}
	if c.IsSet("merge-parents") {
		cfg.MergeCommitParents = c.Bool("merge-parents")
	}
}

func newLogger(c *cli.Context) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(c.App.ErrWriter)
	logger.SetFormatter(&logrus.TextFormatter{
		DisableColors:    c.Bool("no-color"),
		DisableTimestamp: true,
	})
	if c.Bool("verbose") {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}
	return logger
}

// analyze runs the pipeline over repo, drawing a progress bar unless
// --no-progress is set.
func analyze(c *cli.Context, cfg *config.Config, repo string) (*bubbles.Result, error) {
	a, err := bubbles.New(cfg, bubbles.WithLogger(newLogger(c)))
	if err != nil {
		return nil, err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if c.Bool("no-progress") {
		return a.Analyze(ctx, repo, nil)
	}

	bar := progress.NewTrackerTo(c.App.ErrWriter, "Change-sets")
	ctx = analyzer.WithTracker(ctx, analyzer.NewTracker(bar.Update))
	res, err := a.Analyze(ctx, repo, nil)
	if err != nil {
		bar.FinishError(err)
		return nil, err
	}
	bar.FinishSuccess()
	return res, nil
}

func pipelineFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:  "native-git",
			Usage: "Read history with the git binary instead of go-git (default from config)",
		},
		&cli.StringFlag{
			Name:  "commits-file",
			Usage: "Read change-set ids from this file, one per line",
		},
		&cli.BoolFlag{
			Name:  "merge-parents",
			Usage: "Also process parents missing from the change-set list",
		},
		&cli.BoolFlag{
			Name:  "no-progress",
			Usage: "Do not draw a progress bar",
		},
	}
}
