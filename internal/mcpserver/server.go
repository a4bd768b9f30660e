// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes Seograph tools for LLM integration via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/mixfield/seograph/internal/seoservice"
)

// Server wraps the MCP server with Seograph tools.
type Server struct {
	mcp *server.MCPServer
	svc *seoservice.Service
}

// New creates a new MCP server with all Seograph tools registered.
func New(svc *seoservice.Service) *Server {
	s := &Server{svc: svc}

	s.mcp = server.NewMCPServer(
		"Seograph",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("suggest_links",
		mcp.WithDescription("Compute ranked internal link suggestions (pillar, hub, related posts) for a blog post."),
		mcp.WithString("post_id", mcp.Required(), mcp.Description("Post id or slug")),
	), s.suggestLinks)

	s.mcp.AddTool(mcp.NewTool("audit_content",
		mcp.WithDescription("Run the site-wide indexability audit: every page with its verdict and noindex reason."),
	), s.auditContent)

	s.mcp.AddTool(mcp.NewTool("validate_robots",
		mcp.WithDescription("Lint robots.txt text for structural problems (missing User-agent, orphaned rules, missing Sitemap)."),
		mcp.WithString("text", mcp.Required(), mcp.Description("robots.txt body to validate")),
	), s.validateRobots)

	s.mcp.AddTool(mcp.NewTool("get_sitemap",
		mcp.WithDescription("Render the XML sitemap for the current content snapshot."),
	), s.getSitemap)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) suggestLinks(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	postID, err := req.RequireString("post_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	links, err := s.svc.SuggestLinks(ctx, postID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(links, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) auditContent(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	audit, err := s.svc.AuditContent(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(audit, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) validateRobots(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := req.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	issues := s.svc.ValidateRobots(ctx, text)
	if len(issues) == 0 {
		return mcp.NewToolResultText("no issues found"), nil
	}
	out, _ := json.MarshalIndent(issues, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) getSitemap(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	body, err := s.svc.Sitemap(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(body), nil
}
