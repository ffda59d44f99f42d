package api

import (
	"time"

	"github.com/starford/dagaz/internal/closer"
)

// CloseSessionRequest is the request body for closing a session.
type CloseSessionRequest struct {
	Summary string `json:"summary" example:"## Accomplishments\n- shipped the thing" validate:"required"`
}

// CloseSessionResponse is the outcome of a close, aliased from the
// domain layer so the wire shape and the orchestrator stay in lockstep.
type CloseSessionResponse = closer.CloseResult

// CreatePageRequest is the request body for creating a document directly.
type CreatePageRequest = closer.PageRequest

// CreatePageResponse reports the outcome of a direct document creation.
type CreatePageResponse struct {
	Success     bool   `json:"success" validate:"required"`
	ChunkCount  int    `json:"chunk_count"`
	TotalBlocks int    `json:"total_blocks"`
	Error       string `json:"error,omitempty"`
}

// SessionListItem is a lightweight item in a session list response.
type SessionListItem struct {
	Path     string    `json:"path" example:"sessions/2026-08-29.md" validate:"required"`
	Title    string    `json:"title" example:"Session 2026-08-29 16:30" validate:"required"`
	Checksum string    `json:"checksum" example:"abc123..." validate:"required"`
	ClosedAt time.Time `json:"closed_at"`
}

// SessionListResponse wraps paginated session listings.
type SessionListResponse struct {
	Sessions []SessionListItem `json:"sessions" validate:"required"`
	Total    int               `json:"total" example:"42" validate:"required"`
}

// SessionDetail is the full journal entry for one session file.
type SessionDetail struct {
	Path     string `json:"path" example:"sessions/2026-08-29.md" validate:"required"`
	Content  string `json:"content" validate:"required"`
	Checksum string `json:"checksum" example:"abc123..." validate:"required"`
}

// SearchResult is a single search hit in the API response.
type SearchResult struct {
	Path    string `json:"path" example:"sessions/2026-08-29.md" validate:"required"`
	Title   string `json:"title" example:"Session 2026-08-29 16:30" validate:"required"`
	Snippet string `json:"snippet" example:"...matched text..." validate:"required"`
}

// SearchResponse wraps search results.
type SearchResponse struct {
	Results []SearchResult `json:"results" validate:"required"`
}
