// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes Dagaz session tools for LLM integration via stdio
// transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/dagaz/internal/closer"
	"github.com/starford/dagaz/internal/index"
	"github.com/starford/dagaz/internal/journal"
)

// Server wraps the MCP server with Dagaz tools.
type Server struct {
	mcp   *server.MCPServer
	svc   *closer.Service
	db    *index.DB
	store journal.Provider
}

// New creates a new MCP server with all Dagaz tools registered.
func New(svc *closer.Service, db *index.DB, store journal.Provider) *Server {
	s := &Server{svc: svc, db: db, store: store}

	s.mcp = server.NewMCPServer(
		"Dagaz",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("close_session",
		mcp.WithDescription("Close the current work session: extract a structured summary "+
			"from free text, append it to the journal, sync it to Notion, and commit the "+
			"touched files. See the get_summary_contract tool for the expected input format."),
		mcp.WithString("summary", mcp.Required(), mcp.Description("Free-text session summary in Markdown")),
	), s.closeSession)

	s.mcp.AddTool(mcp.NewTool("create_page",
		mcp.WithDescription("Create a Notion document directly from Markdown, outside the "+
			"session-close flow. Fails loudly if the remote write does not go through."),
		mcp.WithString("markdown", mcp.Required(), mcp.Description("Markdown content for the document")),
		mcp.WithString("title", mcp.Description("Document title (database mode only)")),
		mcp.WithString("page_id", mcp.Description("Target page to append to (overrides the configured target)")),
		mcp.WithString("database_id", mcp.Description("Target database to create a page in")),
		mcp.WithString("project", mcp.Description("Project label for the database entry")),
	), s.createPage)

	s.mcp.AddTool(mcp.NewTool("search_sessions",
		mcp.WithDescription("Search closed sessions by title and body text."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search query string")),
	), s.searchSessions)

	s.mcp.AddTool(mcp.NewTool("read_session",
		mcp.WithDescription("Read the full journal entry for a closed session."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Journal path (e.g. sessions/2026-08-29.md)")),
	), s.readSession)

	s.mcp.AddTool(mcp.NewTool("get_summary_contract",
		mcp.WithDescription("Returns the canonical session summary format. "+
			"Call this before close_session to structure the summary correctly."),
	), s.getSummaryContract)

	// Resource: summary format contract.
	s.mcp.AddResource(
		mcp.NewResource("dagaz://summary-format", "Session Summary Format",
			mcp.WithResourceDescription("Canonical Markdown summary format close_session understands."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readSummaryFormatResource,
	)

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

func (s *Server) closeSession(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	summary, err := req.RequireString("summary")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	result, err := s.svc.CloseSession(ctx, summary)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) createPage(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	markdown, err := req.RequireString("markdown")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	pr := closer.PageRequest{
		Markdown:   markdown,
		Title:      req.GetString("title", ""),
		PageID:     req.GetString("page_id", ""),
		DatabaseID: req.GetString("database_id", ""),
		Project:    req.GetString("project", ""),
	}
	res, err := s.svc.CreatePage(ctx, pr)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("created: %d blocks in %d chunks", res.TotalBlocks, res.ChunkCount)), nil
}

func (s *Server) searchSessions(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	results, err := s.db.Search(query, 20)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(results, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) readSession(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	data, err := s.store.Read(path)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s", path)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func (s *Server) getSummaryContract(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(SummaryFormatContract), nil
}

func (s *Server) readSummaryFormatResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "dagaz://summary-format",
			MIMEType: "text/markdown",
			Text:     SummaryFormatContract,
		},
	}, nil
}
