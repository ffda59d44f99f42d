// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/starford/dagaz/internal/api"
	"github.com/starford/dagaz/internal/closer"
	"github.com/starford/dagaz/internal/index"
	"github.com/starford/dagaz/internal/journal"
	"github.com/starford/dagaz/internal/notion"
	"github.com/starford/dagaz/internal/sse"
	"github.com/starford/dagaz/internal/vcs"
)

// Run starts the application with the given options.
func Run(ctx context.Context, opts ...Option) error {
	app := &application{}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return fmt.Errorf("config is required")
	}

	cfg := app.config

	// Initialize structured JSON logger.
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("Configuration loaded",
		slog.String("http_address", cfg.App.HTTP.Address()),
		slog.String("journal_path", cfg.Journal.Path),
		slog.String("sqlite_path", cfg.SQLite.Path),
		slog.String("log_level", cfg.App.LogLevel.String()))

	// Ensure journal directory exists.
	if err := os.MkdirAll(cfg.Journal.Path, 0o755); err != nil {
		return fmt.Errorf("create journal dir: %w", err)
	}

	// Initialize journal storage.
	store, err := journal.NewFS(cfg.Journal.Path)
	if err != nil {
		return fmt.Errorf("init journal: %w", err)
	}

	// Initialize SQLite session log.
	db, err := index.Open(cfg.SQLite.Path)
	if err != nil {
		return fmt.Errorf("init index: %w", err)
	}
	defer db.Close()

	// Run initial sync.
	if err := index.Sync(db, store, logger); err != nil {
		logger.Warn("initial sync failed", slog.String("error", err.Error()))
	}

	// SSE broker.
	broker := sse.NewBroker()
	defer broker.Close()

	// Notion client, service, and close orchestrator.
	docs := buildNotionClient(cfg, logger)
	if docs != nil {
		defer docs.Close()
	}
	repo := buildRepo(cfg, logger)
	svc := newCloseService(store, db, docs, repo, cfg, logger)

	apiRouter := api.NewRouter(svc, db, store, cfg.Auth.AuthEnabled(), cfg.Auth.Token, broker)

	// Build chi router.
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Health check endpoints (unauthenticated).
	r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/health/ready", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// Mount API routes under /api.
	r.Mount("/api", apiRouter)

	httpServer := &http.Server{
		Addr:    cfg.App.HTTP.Address(),
		Handler: r,
	}

	logger.Info("Server starting...", slog.String("http_address", cfg.App.HTTP.Address()))

	g, gCtx := errgroup.WithContext(ctx)

	// Start file watcher with SSE callback.
	g.Go(func() error {
		index.Watch(gCtx, db, store, cfg.Journal.Path, logger, func(kind, path string) {
			broker.PublishSessionEvent(kind, path)
		})
		return nil
	})

	// Start HTTP server.
	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", cfg.App.HTTP.Address()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	// Handle shutdown signals.
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
			logger.Info("Context cancelled, initiating shutdown")
		}

		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}

		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Server stopped successfully")
	return nil
}

// buildNotionClient returns nil when neither a token nor an MCP command
// is configured, which disables the remote sync step entirely.
func buildNotionClient(cfg *Config, logger *slog.Logger) *notion.Client {
	n := cfg.Notion
	if n.Token == "" && n.MCP.Command == "" {
		logger.Info("Notion integration disabled, no credentials configured")
		return nil
	}
	return notion.NewClient(notion.Config{
		Token:       n.Token,
		BaseURL:     n.BaseURL,
		Version:     n.Version,
		MCPCommand:  n.MCP.Command,
		MCPArgs:     n.MCP.Args,
		HTTPTimeout: n.Timeout(),
	}, logger)
}

// buildRepo opens the configured git repository. A missing or invalid
// repository only disables the commit step.
func buildRepo(cfg *Config, logger *slog.Logger) vcs.Committer {
	if cfg.Git.RepoPath == "" {
		return nil
	}
	repo, err := vcs.Open(cfg.Git.RepoPath, cfg.Git.AuthorName, cfg.Git.AuthorEmail)
	if err != nil {
		logger.Warn("git repository unavailable, commit step disabled",
			slog.String("path", cfg.Git.RepoPath),
			slog.String("error", err.Error()))
		return nil
	}
	return repo
}

// newCloseService wires the orchestrator from the loaded configuration.
func newCloseService(store journal.Provider, db *index.DB, docs *notion.Client, repo vcs.Committer, cfg *Config, logger *slog.Logger) *closer.Service {
	var dc closer.DocumentClient
	if docs != nil {
		dc = docs
	}
	return closer.NewService(store, db, dc, repo, closer.Config{
		PageID:       cfg.Notion.PageID,
		DatabaseID:   cfg.Notion.DatabaseID,
		Project:      cfg.Session.Project,
		LegacyScript: cfg.Session.LegacyScript,
	}, logger)
}
