package mcpserver

import (
	"context"
	"fmt"
	"sort"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	toon "github.com/toon-format/toon-go"

	"github.com/panbanda/bubbles/internal/output"
	"github.com/panbanda/bubbles/pkg/analyzer/bubbles"
	"github.com/panbanda/bubbles/pkg/config"
)

// RepoInput is the base input for all tools.
type RepoInput struct {
	Repo      string `json:"repo,omitempty" jsonschema:"Path to the git repository. Defaults to current directory."`
	Config    string `json:"config,omitempty" jsonschema:"Path to a config file. Defaults to the .commit-bubbles file in repo."`
	NativeGit *bool  `json:"native_git,omitempty" jsonschema:"Read history with the git binary instead of go-git."`
	Format    string `json:"format,omitempty" jsonschema:"Output format: toon (default), json, or markdown."`
}

// BucketInput selects one time bucket.
type BucketInput struct {
	RepoInput
	Key string `json:"key" jsonschema:"Bucket key: YYYY, YYYY/MM or YYYY/MM/DD."`
}

// CommitStatsInput lists the change-sets to compute.
type CommitStatsInput struct {
	RepoInput
	IDs []string `json:"ids" jsonschema:"Change-set ids (commit hashes) to compute."`
}

type commitStatsOutput struct {
	Commits []bubbles.CommitStats `json:"commits" toon:"commits"`
	Skipped []string              `json:"skipped" toon:"skipped"`
}

func getRepo(input RepoInput) string {
	if input.Repo == "" {
		return "."
	}
	return input.Repo
}

func getFormat(input RepoInput) output.Format {
	switch input.Format {
	case "json":
		return output.FormatJSON
	case "markdown", "md":
		return output.FormatMarkdown
	default:
		return output.FormatTOON
	}
}

func loadConfig(input RepoInput) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if input.Config != "" {
		cfg, err = config.Load(input.Config)
	} else {
		cfg, err = config.LoadFromDir(getRepo(input))
	}
	if err != nil {
		return nil, err
	}
	if input.NativeGit != nil {
		cfg.NativeGit = *input.NativeGit
	}
	return cfg, nil
}

func formatOutput(data any, format output.Format) (string, error) {
	switch format {
	case output.FormatJSON:
		out, err := output.EncodeJSON(data)
		if err != nil {
			return "", err
		}
		return string(out), nil
	case output.FormatMarkdown:
		out, err := toon.Marshal(data, toon.WithIndent(2))
		if err != nil {
			return "", err
		}
		return "```\n" + string(out) + "\n```", nil
	default:
		out, err := toon.Marshal(data, toon.WithIndent(2))
		if err != nil {
			return "", err
		}
		return string(out), nil
	}
}

func toolResult(data any, format output.Format) (*mcp.CallToolResult, any, error) {
	text, err := formatOutput(data, format)
	if err != nil {
		return nil, nil, err
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}, nil, nil
}

func toolError(msg string) (*mcp.CallToolResult, any, error) {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: "Error: " + msg},
		},
		IsError: true,
	}, nil, nil
}

func (s *Server) analyze(ctx context.Context, input RepoInput, ids []string, captureAll bool) (*config.Config, *bubbles.Result, error) {
	cfg, err := loadConfig(input)
	if err != nil {
		return nil, nil, err
	}
	if captureAll {
		cfg.WriteJSONDiffs = true
	}
	a, err := bubbles.New(cfg, bubbles.WithLogger(s.logger))
	if err != nil {
		return nil, nil, err
	}
	res, err := a.Analyze(ctx, getRepo(input), ids)
	if err != nil {
		return nil, nil, err
	}
	return cfg, res, nil
}

// Tool handlers

func (s *Server) handleCoverageSummary(ctx context.Context, req *mcp.CallToolRequest, input RepoInput) (*mcp.CallToolResult, any, error) {
	cfg, res, err := s.analyze(ctx, input, nil, false)
	if err != nil {
		return toolError(err.Error())
	}
	return toolResult(bubbles.Summarize(res, cfg.Description), getFormat(input))
}

func (s *Server) handleCoverageBucket(ctx context.Context, req *mcp.CallToolRequest, input BucketInput) (*mcp.CallToolResult, any, error) {
	if input.Key == "" {
		return toolError("key is required")
	}
	_, res, err := s.analyze(ctx, input.RepoInput, nil, false)
	if err != nil {
		return toolError(err.Error())
	}
	bucket, ok := res.Aggregator.Bucket(input.Key)
	if !ok {
		return toolError(fmt.Sprintf("no bucket %q", input.Key))
	}
	return toolResult(bucket, getFormat(input.RepoInput))
}

func (s *Server) handleCommitStats(ctx context.Context, req *mcp.CallToolRequest, input CommitStatsInput) (*mcp.CallToolResult, any, error) {
	if len(input.IDs) == 0 {
		return toolError("ids is required")
	}
	_, res, err := s.analyze(ctx, input.RepoInput, input.IDs, true)
	if err != nil {
		return toolError(err.Error())
	}

	// Every captured change-set lands in exactly one year bucket.
	out := commitStatsOutput{Commits: []bubbles.CommitStats{}, Skipped: res.Skipped}
	for _, year := range res.Aggregator.Keys() {
		if len(year) != 4 {
			continue
		}
		bucket, _ := res.Aggregator.Bucket(year)
		out.Commits = append(out.Commits, bucket.Commits...)
	}
	order := make(map[string]int, len(input.IDs))
	for i, id := range input.IDs {
		order[id] = i
	}
	sort.SliceStable(out.Commits, func(i, j int) bool {
		return order[out.Commits[i].ID] < order[out.Commits[j].ID]
	})
	if out.Skipped == nil {
		out.Skipped = []string{}
	}
	return toolResult(out, getFormat(input.RepoInput))
}
