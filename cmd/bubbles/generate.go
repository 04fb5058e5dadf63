package main

import (
	"fmt"
	"path/filepath"

	"github.com/urfave/cli/v2"

	"github.com/panbanda/bubbles/internal/output"
	"github.com/panbanda/bubbles/internal/report"
)

func generateCmd() *cli.Command {
	return &cli.Command{
		Name:      "generate",
		Aliases:   []string{"gen"},
		Usage:     "Analyze history and write the data directory and viewer",
		ArgsUsage: "[repo] [target]",
		Description: `Walks every change-set of repo (default ".") and writes
<target>/data/**/index.json, the navigation index, index.html and
overview.html. target defaults to repo.`,
		Flags: append(pipelineFlags(),
			&cli.BoolFlag{
				Name:  "no-report",
				Usage: "Write only the data directory",
			},
		),
		Action: runGenerate,
	}
}

func runGenerate(c *cli.Context) error {
	repo := argOr(c, 0, ".")
	target := argOr(c, 1, repo)

	cfg, err := loadConfig(c, target)
	if err != nil {
		return err
	}
	applyOverrides(c, cfg)

	res, err := analyze(c, cfg, repo)
	if err != nil {
		return err
	}

	dataDir := filepath.Join(target, "data")
	store := output.NewStore(dataDir)
	if err := res.Write(store); err != nil {
		return fmt.Errorf("writing %s: %w", dataDir, err)
	}

	if !c.Bool("no-report") {
		renderer, err := report.NewRenderer()
		if err != nil {
			return err
		}
		if err := renderer.RenderToFile(dataDir, filepath.Join(target, "index.html")); err != nil {
			return fmt.Errorf("writing index.html: %w", err)
		}
		if err := report.RenderOverviewToFile(dataDir, filepath.Join(target, "overview.html")); err != nil {
			return fmt.Errorf("writing overview.html: %w", err)
		}
	}

	out := output.NewWriterFormatter(output.FormatText, c.App.Writer, !c.Bool("no-color"))
	out.Success("Processed %d of %d change-sets (%d skipped, %d bucketed)",
		res.Processed, res.Total, len(res.Skipped), res.Bucketed)
	if len(res.Skipped) > 0 {
		out.Warning("%d change-sets could not be read; run with --verbose for details", len(res.Skipped))
	}
	out.Info("Wrote %d files to %s (%d unchanged)", store.Written(), dataDir, store.Unchanged())
	return nil
}
