// Package closer implements the session-close use case: build the
// structured summary, update the local journal, push a copy to Notion
// on a best-effort basis, and commit the touched files.
package closer

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"github.com/starford/dagaz/internal/apperr"
	"github.com/starford/dagaz/internal/checksum"
	"github.com/starford/dagaz/internal/index"
	"github.com/starford/dagaz/internal/journal"
	"github.com/starford/dagaz/internal/models"
	"github.com/starford/dagaz/internal/notion"
	"github.com/starford/dagaz/internal/summary"
	"github.com/starford/dagaz/internal/vcs"
)

// DocumentClient is the subset of the Notion client the orchestrator
// depends on.
type DocumentClient interface {
	AppendBlocks(ctx context.Context, pageID string, blocks []notion.Block) (*notion.AppendResult, error)
	CreatePage(ctx context.Context, parent notion.Parent, properties notion.Properties) (string, error)
}

// Config holds the orchestrator's targets and fallbacks.
type Config struct {
	// PageID is the Notion page appended to in append mode.
	PageID string
	// DatabaseID is the Notion database pages are created in. Takes
	// precedence over PageID for session-close syncs.
	DatabaseID string
	// Project is the label written into the "Project" select.
	Project string
	// LegacyScript, when set, is invoked with the rendered markdown on
	// stdin if the Notion client path fails entirely.
	LegacyScript string
}

// CloseResult is the outcome of one session-close request. Local steps
// succeeding is enough for Success; remote sync failures are carried in
// RemoteError.
type CloseResult struct {
	Success          bool            `json:"success"`
	Summary          *models.Summary `json:"summary"`
	FilesUpdated     []string        `json:"files_updated"`
	GitCommitMessage string          `json:"git_commit_message,omitempty"`
	GitCommitHash    string          `json:"git_commit_hash,omitempty"`
	RemoteSynced     bool            `json:"remote_synced"`
	RemoteError      string          `json:"remote_error,omitempty"`
}

// PageRequest is a direct document-creation request.
type PageRequest struct {
	Title      string `json:"title"`
	Markdown   string `json:"markdown"`
	PageID     string `json:"page_id,omitempty"`
	DatabaseID string `json:"database_id,omitempty"`
	Project    string `json:"project,omitempty"`
}

// Service sequences the session-close steps.
type Service struct {
	store  journal.Provider
	db     *index.DB
	docs   DocumentClient
	repo   vcs.Committer
	cfg    Config
	logger *slog.Logger

	now       func() time.Time
	runScript func(ctx context.Context, script string, stdin string) error
}

// NewService creates the orchestrator. docs and repo may be nil, which
// disables the corresponding steps.
func NewService(store journal.Provider, db *index.DB, docs DocumentClient, repo vcs.Committer, cfg Config, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		store:     store,
		db:        db,
		docs:      docs,
		repo:      repo,
		cfg:       cfg,
		logger:    logger,
		now:       time.Now,
		runScript: runScript,
	}
}

// EntryPath returns the journal file a session closed at t is appended to.
func EntryPath(t time.Time) string {
	return "sessions/" + t.Format("2006-01-02") + ".md"
}

// CloseSession runs the full close sequence. Only a failure to write the
// local journal entry is fatal; every later step is best-effort.
func (s *Service) CloseSession(ctx context.Context, freeText string) (*CloseResult, error) {
	now := s.now()
	sum := summary.Extract(freeText, now)

	if s.repo != nil {
		changed, err := s.repo.ChangedFiles()
		if err != nil {
			s.logger.Warn("close: changed files lookup failed", slog.String("error", err.Error()))
		} else {
			sum.FilesChanged = changed
		}
	}

	entry := summary.Render(sum)
	path := EntryPath(now)
	if err := s.store.Append(path, []byte(entry)); err != nil {
		return nil, fmt.Errorf("close: write journal entry: %w", err)
	}
	result := &CloseResult{
		Success:      true,
		Summary:      sum,
		FilesUpdated: []string{path},
	}

	s.indexEntry(path, now)

	if err := s.syncRemote(ctx, sum, entry); err != nil {
		s.logger.Warn("close: remote sync failed", slog.String("error", err.Error()))
		result.RemoteError = err.Error()
	} else {
		result.RemoteSynced = true
	}

	if s.repo != nil {
		msg := "session close: " + summary.Title(sum)
		hash, err := s.repo.Commit(msg, result.FilesUpdated)
		if err != nil {
			s.logger.Warn("close: commit failed", slog.String("error", err.Error()))
		} else if hash != "" {
			result.GitCommitMessage = msg
			result.GitCommitHash = hash
		}
	}

	return result, nil
}

// indexEntry re-reads the appended file and upserts it into the session
// log. Best-effort; the watcher will catch up if this fails.
func (s *Service) indexEntry(path string, closedAt time.Time) {
	if s.db == nil {
		return
	}
	data, err := s.store.Read(path)
	if err != nil {
		s.logger.Warn("close: re-read for index failed", slog.String("path", path), slog.String("error", err.Error()))
		return
	}
	body := string(data)
	title := path
	for _, line := range strings.Split(body, "\n") {
		if strings.HasPrefix(line, "## ") {
			title = strings.TrimSpace(strings.TrimPrefix(line, "## "))
			break
		}
	}
	err = s.db.UpsertEntry(index.EntryRow{
		Path:     path,
		Title:    title,
		Checksum: checksum.Sum(data),
		ClosedAt: closedAt,
	}, body)
	if err != nil {
		s.logger.Warn("close: index failed", slog.String("path", path), slog.String("error", err.Error()))
	}
}

// remoteStrategy is one way of delivering the summary remotely.
// Strategies are tried in order; the first success wins.
type remoteStrategy struct {
	name string
	run  func(context.Context) error
}

// syncRemote delivers the summary through the first working strategy:
// the Notion client, then the legacy script. A missing configuration
// short-circuits before any network activity.
func (s *Service) syncRemote(ctx context.Context, sum *models.Summary, entry string) error {
	var strategies []remoteStrategy

	if s.docs != nil && (s.cfg.DatabaseID != "" || s.cfg.PageID != "") {
		strategies = append(strategies, remoteStrategy{name: "notion", run: func(ctx context.Context) error {
			return s.notionSync(ctx, sum, entry)
		}})
	}
	if s.cfg.LegacyScript != "" {
		strategies = append(strategies, remoteStrategy{name: "legacy-script", run: func(ctx context.Context) error {
			return s.runScript(ctx, s.cfg.LegacyScript, entry)
		}})
	}

	if len(strategies) == 0 {
		return fmt.Errorf("%w: no notion target or legacy script configured", apperr.ErrConfiguration)
	}

	var lastErr error
	for _, st := range strategies {
		err := st.run(ctx)
		if err == nil {
			s.logger.Info("close: remote sync succeeded", slog.String("strategy", st.name))
			return nil
		}
		s.logger.Warn("close: remote strategy failed",
			slog.String("strategy", st.name),
			slog.String("error", err.Error()))
		lastErr = err
	}
	return lastErr
}

// notionSync creates a database page in create mode, or appends the
// rendered entry to the configured page in append mode.
func (s *Service) notionSync(ctx context.Context, sum *models.Summary, entry string) error {
	if s.cfg.DatabaseID != "" {
		parent := notion.DatabaseParent(s.cfg.DatabaseID)
		_, err := s.docs.CreatePage(ctx, parent, PageProperties(sum, s.cfg.Project))
		return err
	}
	_, err := s.docs.AppendBlocks(ctx, s.cfg.PageID, notion.ToBlocks(entry))
	return err
}

// CreatePage serves a direct document-creation request. Unlike the
// session-close path, a remote failure here is the whole call failing.
func (s *Service) CreatePage(ctx context.Context, req PageRequest) (*notion.AppendResult, error) {
	if s.docs == nil {
		return nil, fmt.Errorf("%w: notion client not configured", apperr.ErrConfiguration)
	}

	databaseID := req.DatabaseID
	if databaseID == "" && req.PageID == "" {
		databaseID = s.cfg.DatabaseID
	}
	pageID := req.PageID
	if pageID == "" && databaseID == "" {
		pageID = s.cfg.PageID
	}

	switch {
	case databaseID != "":
		title := req.Title
		if title == "" {
			title = "Note " + s.now().Format("2006-01-02 15:04")
		}
		props := notion.Properties{
			"Session Title": notion.TitleProperty(title),
			"Date":          notion.DateProperty(s.now().Format("2006-01-02")),
			"Project":       notion.SelectProperty(NormalizeProject(req.Project)),
		}
		if _, err := s.docs.CreatePage(ctx, notion.DatabaseParent(databaseID), props); err != nil {
			return nil, err
		}
		return &notion.AppendResult{}, nil

	case pageID != "":
		return s.docs.AppendBlocks(ctx, pageID, notion.ToBlocks(req.Markdown))

	default:
		return nil, fmt.Errorf("%w: no page or database target resolved", apperr.ErrConfiguration)
	}
}

// runScript pipes stdin into the legacy summary script and waits for it.
func runScript(ctx context.Context, script string, stdin string) error {
	cmd := exec.CommandContext(ctx, script)
	cmd.Stdin = strings.NewReader(stdin)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("legacy script %s: %w: %s", script, err, strings.TrimSpace(string(out)))
	}
	return nil
}
