package mcp

import (
	"context"
	"log"
	"net/http"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/jmalles/diffscope/internal/db"
)

type ToolAdapter interface {
	ToolAdapter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error)
}

type Server struct {
	MCP     *server.MCPServer
	HTTP    *server.StreamableHTTPServer
	Handler http.Handler
	DB      *db.Database
}

func New(cfg Config) *Server {
	mcpServer := server.NewMCPServer(
		"diffscope-server",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	// Register tools with their proper schemas using mcp-go builder pattern
	toolDefinitions := map[string]mcp.Tool{
		"search_reviews": mcp.NewTool("search_reviews",
			mcp.WithDescription("Semantic search across stored pull request reviews using embeddings. Returns matching reviews with similarity scores, change statistics, and review bodies."),
			mcp.WithString("query",
				mcp.Required(),
				mcp.Description("Natural language search query (e.g., 'reviews touching retry logic')"),
			),
			mcp.WithNumber("limit",
				mcp.Description("Maximum number of results to return (default: 10)"),
			),
		),
		"get_review": mcp.NewTool("get_review",
			mcp.WithDescription("Retrieve the latest stored review for a pull request, including change statistics, the review body, and posting state."),
			mcp.WithNumber("pr_number",
				mcp.Required(),
				mcp.Description("The pull request number (e.g., 1234)"),
			),
			mcp.WithString("repo",
				mcp.Description("Repository full name (owner/name). Defaults to the configured repository."),
			),
		),
		"analyze_patch": mcp.NewTool("analyze_patch",
			mcp.WithDescription("Classify a unified diff without calling a model: post-change line numbers for added and removed lines, detected language, test-file flag, and matched function, import, and test declarations."),
			mcp.WithString("patch",
				mcp.Required(),
				mcp.Description("Unified diff text for a single file, including the @@ hunk headers"),
			),
		),
		"list_recent_reviews": mcp.NewTool("list_recent_reviews",
			mcp.WithDescription("List the most recently stored reviews across all pull requests, newest first."),
			mcp.WithNumber("limit",
				mcp.Description("Maximum number of results to return (default: 10)"),
			),
		),
	}

	for name, adapter := range cfg.ToolAdapters {
		tool := toolDefinitions[name]
		mcpServer.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return adapter.ToolAdapter(ctx, req)
		})
	}

	httpServer := server.NewStreamableHTTPServer(mcpServer, cfg.Options...)

	return &Server{
		MCP:     mcpServer,
		HTTP:    httpServer,
		Handler: httpServer,
		DB:      cfg.Database,
	}
}

func (s *Server) Close() {
	if s.DB != nil {
		if err := s.DB.Close(); err != nil {
			log.Printf("error closing database: %v", err)
		}
	}
}
