package internal

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/starford/dagaz/internal/index"
	"github.com/starford/dagaz/internal/journal"
	"github.com/starford/dagaz/internal/mcpserver"
)

// RunMCP serves the Dagaz tools over MCP stdio instead of HTTP. Logs go
// to stderr so stdout stays clean for the protocol stream.
func RunMCP(ctx context.Context, opts ...Option) error {
	app := &application{}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return fmt.Errorf("config is required")
	}

	cfg := app.config

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	if err := os.MkdirAll(cfg.Journal.Path, 0o755); err != nil {
		return fmt.Errorf("create journal dir: %w", err)
	}

	store, err := journal.NewFS(cfg.Journal.Path)
	if err != nil {
		return fmt.Errorf("init journal: %w", err)
	}

	db, err := index.Open(cfg.SQLite.Path)
	if err != nil {
		return fmt.Errorf("init index: %w", err)
	}
	defer db.Close()

	if err := index.Sync(db, store, logger); err != nil {
		logger.Warn("initial sync failed", slog.String("error", err.Error()))
	}

	docs := buildNotionClient(cfg, logger)
	if docs != nil {
		defer docs.Close()
	}
	repo := buildRepo(cfg, logger)
	svc := newCloseService(store, db, docs, repo, cfg, logger)

	logger.Info("Serving MCP tools on stdio")
	return mcpserver.New(svc, db, store).ServeStdio()
}
