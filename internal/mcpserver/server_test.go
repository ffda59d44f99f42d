package mcpserver

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/starford/dagaz/internal/closer"
	"github.com/starford/dagaz/internal/index"
	"github.com/starford/dagaz/internal/journal"
)

func testServer(t *testing.T) (*Server, journal.Provider) {
	t.Helper()

	store, err := journal.NewFS(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	dbFile, err := os.CreateTemp("", "dagaz-mcp-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })

	db, err := index.Open(dbFile.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := closer.NewService(store, db, nil, nil, closer.Config{}, logger)
	srv := New(svc, db, store)
	return srv, store
}

func callTool(t *testing.T, srv *Server, name string, args map[string]interface{}) *mcp.CallToolResult {
	t.Helper()
	ctx := context.Background()
	req := mcp.CallToolRequest{}
	req.Method = "tools/call"
	req.Params.Name = name
	req.Params.Arguments = args

	var result *mcp.CallToolResult
	var err error

	switch name {
	case "close_session":
		result, err = srv.closeSession(ctx, req)
	case "create_page":
		result, err = srv.createPage(ctx, req)
	case "search_sessions":
		result, err = srv.searchSessions(ctx, req)
	case "read_session":
		result, err = srv.readSession(ctx, req)
	case "get_summary_contract":
		result, err = srv.getSummaryContract(ctx, req)
	default:
		t.Fatalf("unknown tool: %s", name)
	}

	if err != nil {
		t.Fatalf("tool %s error: %v", name, err)
	}
	return result
}

func resultText(r *mcp.CallToolResult) string {
	if len(r.Content) > 0 {
		if tc, ok := r.Content[0].(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func TestCloseSessionTool(t *testing.T) {
	srv, store := testServer(t)

	r := callTool(t, srv, "close_session", map[string]interface{}{
		"summary": "## Accomplishments\n- finished the exporter\n",
	})
	if r.IsError {
		t.Fatalf("close_session error: %s", resultText(r))
	}
	text := resultText(r)
	if !strings.Contains(text, `"success": true`) {
		t.Errorf("result = %s", text)
	}

	entries, err := store.List("sessions")
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("journal entries = %d, want 1", len(entries))
	}
}

func TestCloseSessionTool_MissingSummary(t *testing.T) {
	srv, _ := testServer(t)

	r := callTool(t, srv, "close_session", map[string]interface{}{})
	if !r.IsError {
		t.Error("expected error result without summary")
	}
}

func TestSearchSessionsTool(t *testing.T) {
	srv, _ := testServer(t)

	callTool(t, srv, "close_session", map[string]interface{}{
		"summary": "- rebuilt the chunker pipeline",
	})

	r := callTool(t, srv, "search_sessions", map[string]interface{}{"query": "chunker"})
	if r.IsError {
		t.Fatalf("search error: %s", resultText(r))
	}
	if !strings.Contains(resultText(r), "sessions/") {
		t.Errorf("search result = %s", resultText(r))
	}
}

func TestReadSessionTool(t *testing.T) {
	srv, store := testServer(t)

	if err := store.Write("sessions/2026-08-29.md", []byte("## Session\n- work\n")); err != nil {
		t.Fatal(err)
	}

	r := callTool(t, srv, "read_session", map[string]interface{}{"path": "sessions/2026-08-29.md"})
	if r.IsError {
		t.Fatalf("read error: %s", resultText(r))
	}
	if !strings.Contains(resultText(r), "- work") {
		t.Errorf("content = %s", resultText(r))
	}
}

func TestReadSessionToolMissing(t *testing.T) {
	srv, _ := testServer(t)

	r := callTool(t, srv, "read_session", map[string]interface{}{"path": "sessions/none.md"})
	if !r.IsError {
		t.Error("expected error for missing entry")
	}
}

func TestCreatePageTool_NotConfigured(t *testing.T) {
	srv, _ := testServer(t)

	r := callTool(t, srv, "create_page", map[string]interface{}{"markdown": "# Note"})
	if !r.IsError {
		t.Error("expected error without a notion client configured")
	}
}

func TestSummaryContract(t *testing.T) {
	srv, _ := testServer(t)

	r := callTool(t, srv, "get_summary_contract", map[string]interface{}{})
	if !strings.Contains(resultText(r), "Accomplishments") {
		t.Errorf("contract = %s", resultText(r))
	}
}
