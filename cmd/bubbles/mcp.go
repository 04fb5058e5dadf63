package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/panbanda/bubbles/internal/mcpserver"
)

func mcpCmd() *cli.Command {
	return &cli.Command{
		Name:  "mcp",
		Usage: "Start MCP (Model Context Protocol) server for LLM tool integration",
		Description: `Starts an MCP server over stdio transport that exposes the commit
bubbles pipeline as tools that LLMs can invoke.

To use with an MCP client, add to its config:
  {
    "mcpServers": {
      "bubbles": {
        "command": "bubbles",
        "args": ["mcp"]
      }
    }
  }

Available tools:
  - coverage_summary   Per-year test line percentage and trend
  - coverage_bucket    Change-sets in one year, month or day
  - commit_stats       Line counts for specific change-sets`,
		Action: runMCPCmd,
	}
}

func runMCPCmd(c *cli.Context) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// stdout carries the protocol; logs go to stderr.
	server := mcpserver.NewServer(version, newLogger(c))
	return server.Run(ctx)
}
