package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	mcpclient "github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
)

// ToolCaller is the tool-invocation transport. CallTool invokes a named
// remote tool with a structured argument object and returns the text of
// the first content item on success.
type ToolCaller interface {
	CallTool(ctx context.Context, name string, args map[string]any) (string, error)
	Close() error
}

// mcpTransport runs the Notion MCP server as a subprocess and speaks the
// stdio tool protocol to it.
type mcpTransport struct {
	client *mcpclient.Client
}

// dialMCP starts the MCP subprocess and performs the initialize handshake.
func dialMCP(ctx context.Context, command string, args, env []string) (*mcpTransport, error) {
	c, err := mcpclient.NewStdioMCPClient(command, env, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: start %s: %v", ErrNotConnected, command, err)
	}

	initReq := mcp.InitializeRequest{}
	initReq.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	initReq.Params.ClientInfo = mcp.Implementation{Name: "dagaz", Version: "1.0.0"}
	if _, err := c.Initialize(ctx, initReq); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("%w: initialize: %v", ErrNotConnected, err)
	}

	return &mcpTransport{client: c}, nil
}

func (t *mcpTransport) CallTool(ctx context.Context, name string, args map[string]any) (string, error) {
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args

	res, err := t.client.CallTool(ctx, req)
	if err != nil {
		return "", fmt.Errorf("call %s: %w", name, err)
	}

	text := firstText(res)
	if res.IsError {
		return "", fmt.Errorf("%w: %s: %s", ErrToolResult, name, text)
	}
	return text, nil
}

func (t *mcpTransport) Close() error {
	return t.client.Close()
}

// firstText returns the text of the first content item, if any.
func firstText(res *mcp.CallToolResult) string {
	if len(res.Content) > 0 {
		if tc, ok := res.Content[0].(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

// httpAPI issues signed requests directly against the Notion REST API.
// It exists because the tool path has historically mis-serialised nested
// object parameters; an explicit JSON body sidesteps that boundary.
type httpAPI struct {
	baseURL string
	token   string
	version string
	client  *http.Client
}

// AppendChildren issues PATCH /v1/blocks/{pageID}/children.
func (h *httpAPI) AppendChildren(ctx context.Context, pageID string, children []Block) (string, error) {
	url := fmt.Sprintf("%s/v1/blocks/%s/children", h.baseURL, pageID)
	return h.do(ctx, http.MethodPatch, url, map[string]any{"children": children})
}

// CreatePage issues POST /v1/pages.
func (h *httpAPI) CreatePage(ctx context.Context, parent Parent, properties Properties) (string, error) {
	url := h.baseURL + "/v1/pages"
	return h.do(ctx, http.MethodPost, url, map[string]any{
		"parent":     parent,
		"properties": properties,
	})
}

func (h *httpAPI) do(ctx context.Context, method, url string, payload any) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+h.token)
	req.Header.Set("Notion-Version", h.version)
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%s %s: %w", method, url, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%s %s: status %d: %s", method, url, resp.StatusCode, data)
	}
	return string(data), nil
}
