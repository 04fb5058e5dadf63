package mcpserver

import (
	"context"
	"io"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sirupsen/logrus"
)

// Server wraps the MCP server and registers the bubbles tools.
type Server struct {
	server *mcp.Server
	logger logrus.FieldLogger
}

// NewServer creates a new MCP server with all tools and prompts registered.
// A nil logger discards pipeline logging.
func NewServer(version string, logger logrus.FieldLogger) *Server {
	if version == "" {
		version = "dev"
	}
	if logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		logger = l
	}
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "bubbles",
			Version: version,
		},
		nil,
	)

	s := &Server{server: server, logger: logger}
	s.registerTools()
	s.registerPrompts()
	return s
}

// Run starts the MCP server over stdio transport.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "coverage_summary",
		Description: describeSummary(),
	}, s.handleCoverageSummary)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "coverage_bucket",
		Description: describeBucket(),
	}, s.handleCoverageBucket)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "commit_stats",
		Description: describeCommitStats(),
	}, s.handleCommitStats)
}
