package notion

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// Config holds everything the client needs. Credential and target
// resolution happens at the process boundary; the client never reads
// environment variables itself.
type Config struct {
	Token       string
	BaseURL     string
	Version     string
	MCPCommand  string
	MCPArgs     []string
	HTTPTimeout time.Duration
	ChunkSize   int
}

// AppendResult summarises a completed multi-chunk append.
type AppendResult struct {
	ChunkCount  int `json:"chunk_count"`
	TotalBlocks int `json:"total_blocks"`
}

// Client performs the remote document operations (append blocks, create
// page, query database, fetch page blocks), hiding transport choice and
// fallback behind one interface.
//
// The connected/disconnected state is plain mutable state with no lock;
// a Client instance must not be shared across concurrent requests.
type Client struct {
	cfg    Config
	logger *slog.Logger
	http   *httpAPI
	tool   ToolCaller

	// dial is swapped out in tests to inject a fake transport.
	dial func(ctx context.Context) (ToolCaller, error)
}

// NewClient creates a client from cfg. Zero-value fields get defaults.
func NewClient(cfg Config, logger *slog.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.notion.com"
	}
	if cfg.Version == "" {
		cfg.Version = "2022-06-28"
	}
	if cfg.HTTPTimeout <= 0 {
		cfg.HTTPTimeout = 30 * time.Second
	}
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = DefaultChunkSize
	}
	if logger == nil {
		logger = slog.Default()
	}

	c := &Client{
		cfg:    cfg,
		logger: logger,
		http: &httpAPI{
			baseURL: cfg.BaseURL,
			token:   cfg.Token,
			version: cfg.Version,
			client:  &http.Client{Timeout: cfg.HTTPTimeout},
		},
	}
	c.dial = func(ctx context.Context) (ToolCaller, error) {
		var env []string
		if cfg.Token != "" {
			env = append(env, "NOTION_API_TOKEN="+cfg.Token)
		}
		return dialMCP(ctx, cfg.MCPCommand, cfg.MCPArgs, env)
	}
	return c
}

// Connect establishes the MCP tool session if not already established.
// Idempotent.
func (c *Client) Connect(ctx context.Context) error {
	if c.tool != nil {
		return nil
	}
	if c.cfg.MCPCommand == "" {
		return fmt.Errorf("%w: no MCP command configured", ErrNotConnected)
	}
	tool, err := c.dial(ctx)
	if err != nil {
		return err
	}
	c.tool = tool
	c.logger.Info("notion: MCP session established", slog.String("command", c.cfg.MCPCommand))
	return nil
}

// Close tears down the MCP session. Idempotent and safe when never
// connected.
func (c *Client) Close() error {
	if c.tool == nil {
		return nil
	}
	err := c.tool.Close()
	c.tool = nil
	return err
}

// toolCall connects on demand and invokes one tool over the MCP session.
func (c *Client) toolCall(ctx context.Context, name string, args map[string]any) (string, error) {
	if c.tool == nil {
		if err := c.Connect(ctx); err != nil {
			return "", err
		}
	}
	return c.tool.CallTool(ctx, name, args)
}

// strategy is one way of performing a logical operation. Strategies are
// tried in order; the first success wins.
type strategy struct {
	name string
	run  func(context.Context) (string, error)
}

func (c *Client) runStrategies(ctx context.Context, op string, strategies []strategy) (string, error) {
	var errs []error
	for _, s := range strategies {
		out, err := s.run(ctx)
		if err == nil {
			return out, nil
		}
		c.logger.Warn("notion: strategy failed",
			slog.String("op", op),
			slog.String("strategy", s.name),
			slog.String("error", err.Error()))
		errs = append(errs, fmt.Errorf("%s: %w", s.name, err))
	}
	return "", errors.Join(errs...)
}

// AppendBlocks appends blocks to the page in chunks of at most the
// configured size, one ordered write per chunk. Each chunk tries the MCP
// path first and falls back to a direct HTTP PATCH. On failure the
// returned *AppendError states how many chunks were already committed;
// those are not rolled back.
func (c *Client) AppendBlocks(ctx context.Context, pageID string, blocks []Block) (*AppendResult, error) {
	pageID = NormalizeID(pageID)
	chunks := ChunkBlocks(blocks, c.cfg.ChunkSize)

	for i, chunk := range chunks {
		chunk := chunk
		_, err := c.runStrategies(ctx, "append_blocks", []strategy{
			{name: "mcp", run: func(ctx context.Context) (string, error) {
				return c.toolCall(ctx, "append_blocks", map[string]any{
					"page_id":  pageID,
					"children": chunk,
				})
			}},
			{name: "http", run: func(ctx context.Context) (string, error) {
				return c.http.AppendChildren(ctx, pageID, chunk)
			}},
		})
		if err != nil {
			return nil, &AppendError{
				ChunksCommitted: i,
				ChunkCount:      len(chunks),
				TotalBlocks:     len(blocks),
				Err:             err,
			}
		}
	}

	return &AppendResult{ChunkCount: len(chunks), TotalBlocks: len(blocks)}, nil
}

// CreatePage creates a page under parent with the given properties,
// trying the MCP path first and falling back to a direct HTTP POST with
// the same structured parent and properties.
func (c *Client) CreatePage(ctx context.Context, parent Parent, properties Properties) (string, error) {
	out, err := c.runStrategies(ctx, "create_page", []strategy{
		{name: "mcp", run: func(ctx context.Context) (string, error) {
			return c.toolCall(ctx, "create_page", map[string]any{
				"parent":     parent,
				"properties": properties,
			})
		}},
		{name: "http", run: func(ctx context.Context) (string, error) {
			return c.http.CreatePage(ctx, parent, properties)
		}},
	})
	if err != nil {
		return "", fmt.Errorf("notion: create page: %w", err)
	}
	return out, nil
}

// QueryDatabase runs a database query over the MCP session. Read-only,
// so no HTTP fallback.
func (c *Client) QueryDatabase(ctx context.Context, databaseID string, filter map[string]any) (string, error) {
	args := map[string]any{"database_id": NormalizeID(databaseID)}
	if filter != nil {
		args["filter"] = filter
	}
	out, err := c.toolCall(ctx, "query_database", args)
	if err != nil {
		return "", fmt.Errorf("notion: query database: %w", err)
	}
	return out, nil
}

// GetPageBlocks fetches the existing blocks of a page over the MCP
// session. No fallback.
func (c *Client) GetPageBlocks(ctx context.Context, pageID string) (string, error) {
	out, err := c.toolCall(ctx, "get_block_children", map[string]any{
		"page_id": NormalizeID(pageID),
	})
	if err != nil {
		return "", fmt.Errorf("notion: get page blocks: %w", err)
	}
	return out, nil
}
