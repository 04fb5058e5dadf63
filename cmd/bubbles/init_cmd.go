package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/pelletier/go-toml"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/panbanda/bubbles/pkg/config"
)

func initCmd() *cli.Command {
	return &cli.Command{
		Name:      "init",
		Usage:     "Write a starter .commit-bubbles configuration file",
		ArgsUsage: "[target]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "format",
				Value: "yaml",
				Usage: "Config format: yaml or toml",
			},
			&cli.StringSliceFlag{
				Name:  "suffix",
				Usage: "Testable file suffix (repeatable)",
			},
			&cli.StringFlag{
				Name:  "description",
				Usage: "Project description shown in the viewer",
			},
			&cli.BoolFlag{
				Name:  "force",
				Usage: "Overwrite existing config file",
			},
		},
		Action: runInit,
	}
}

func runInit(c *cli.Context) error {
	target := argOr(c, 0, ".")
	format := strings.ToLower(c.String("format"))

	var name string
	switch format {
	case "yaml", "yml":
		name = ".commit-bubbles.yml"
	case "toml":
		name = ".commit-bubbles.toml"
	default:
		return fmt.Errorf("unsupported config format %q (use yaml or toml)", format)
	}
	outputPath := filepath.Join(target, name)

	if _, err := os.Stat(outputPath); err == nil && !c.Bool("force") {
		return fmt.Errorf("config file %q already exists (use --force to overwrite)", outputPath)
	}
	if err := os.MkdirAll(target, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %q: %w", target, err)
	}

	cfg := starterConfig(c.StringSlice("suffix"), c.String("description"))
	content, err := renderConfig(cfg, format)
	if err != nil {
		return err
	}
	if err := os.WriteFile(outputPath, content, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	color.New(color.FgGreen).Fprintf(c.App.Writer, "Created %s\n", outputPath)
	fmt.Fprintln(c.App.Writer, "Edit testable-file-suffixes and description before generating.")
	return nil
}

func starterConfig(suffixes []string, description string) *config.Config {
	cfg := config.DefaultConfig()
	cfg.TestableFileSuffixes = suffixes
	if len(cfg.TestableFileSuffixes) == 0 {
		cfg.TestableFileSuffixes = []string{".go", ".java", ".py", ".ts", ".js"}
	}
	cfg.Description = description
	if cfg.Description == "" {
		cfg.Description = "My project"
	}
	return cfg
}

func renderConfig(cfg *config.Config, format string) ([]byte, error) {
	var buf strings.Builder
	buf.WriteString("# commit bubbles configuration\n")
	buf.WriteString("# aliases entries look like \"Preferred Name;term1,term2\"\n\n")

	switch format {
	case "toml":
		content, err := toml.Marshal(cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal config to TOML: %w", err)
		}
		buf.Write(content)
	default:
		content, err := yaml.Marshal(cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal config to YAML: %w", err)
		}
		buf.Write(content)
	}
	return []byte(buf.String()), nil
}
