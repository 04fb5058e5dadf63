package main

import (
	"github.com/urfave/cli/v2"

	"github.com/panbanda/bubbles/internal/output"
	"github.com/panbanda/bubbles/pkg/analyzer/bubbles"
)

func summaryCmd() *cli.Command {
	return &cli.Command{
		Name:      "summary",
		Usage:     "Print per-year coverage without writing files",
		ArgsUsage: "[repo]",
		Flags: append(pipelineFlags(),
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Value:   "text",
				Usage:   "Output format: text, json, markdown, toon",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Write output to file",
			},
		),
		Action: runSummary,
	}
}

func runSummary(c *cli.Context) error {
	repo := argOr(c, 0, ".")

	cfg, err := loadConfig(c, repo)
	if err != nil {
		return err
	}
	applyOverrides(c, cfg)

	res, err := analyze(c, cfg, repo)
	if err != nil {
		return err
	}

	var formatter *output.Formatter
	if path := c.String("output"); path != "" {
		formatter, err = output.NewFormatter(output.ParseFormat(c.String("format")), path, false)
		if err != nil {
			return err
		}
	} else {
		formatter = output.NewWriterFormatter(output.ParseFormat(c.String("format")), c.App.Writer, !c.Bool("no-color"))
	}
	defer formatter.Close()

	return formatter.Output(bubbles.Summarize(res, cfg.Description))
}
