package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/starford/dagaz/internal/apperr"
	"github.com/starford/dagaz/internal/checksum"
	"github.com/starford/dagaz/internal/closer"
	"github.com/starford/dagaz/internal/index"
	"github.com/starford/dagaz/internal/journal"
)

// Handler holds API route handlers.
type Handler struct {
	svc   *closer.Service
	db    *index.DB
	store journal.Provider
}

// NewHandler creates a new Handler.
func NewHandler(svc *closer.Service, db *index.DB, store journal.Provider) *Handler {
	return &Handler{svc: svc, db: db, store: store}
}

// sessionPath extracts the journal path from the URL (everything after
// /api/sessions/). Supports encoded slashes from generated clients
// (e.g. sessions%2F2026-08-29.md).
func sessionPath(r *http.Request) string {
	raw := strings.TrimPrefix(chi.URLParam(r, "*"), "/")
	if raw == "" {
		return ""
	}
	decoded, err := url.PathUnescape(raw)
	if err != nil {
		return raw
	}
	return decoded
}

// CloseSession handles POST /api/sessions/close.
//
//	@Summary		Close a session from a free-text summary
//	@Tags			sessions
//	@Accept			json
//	@Produce		json
//	@Param			body	body		CloseSessionRequest	true	"Session summary"
//	@Success		200		{object}	CloseSessionResponse
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/sessions/close [post]
func (h *Handler) CloseSession(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 10<<20)
	var req CloseSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if strings.TrimSpace(req.Summary) == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("summary is required"))
		return
	}
	result, err := h.svc.CloseSession(r.Context(), req.Summary)
	if err != nil {
		slog.Error("close session failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// CreatePage handles POST /api/pages. Unlike the session-close flow, a
// remote failure here is surfaced to the caller as a non-2xx response.
//
//	@Summary		Create a Notion document directly
//	@Tags			pages
//	@Accept			json
//	@Produce		json
//	@Param			body	body		CreatePageRequest	true	"Document to create"
//	@Success		200		{object}	CreatePageResponse
//	@Failure		400		{object}	CreatePageResponse
//	@Failure		502		{object}	CreatePageResponse
//	@Security		BearerAuth
//	@Router			/pages [post]
func (h *Handler) CreatePage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 10<<20)
	var req CreatePageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if strings.TrimSpace(req.Markdown) == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("markdown is required"))
		return
	}
	res, err := h.svc.CreatePage(r.Context(), req)
	if err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, apperr.ErrConfiguration) {
			status = http.StatusBadRequest
		}
		slog.Error("create page failed", slog.String("error", err.Error()))
		writeJSON(w, status, CreatePageResponse{Success: false, Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, CreatePageResponse{
		Success:     true,
		ChunkCount:  res.ChunkCount,
		TotalBlocks: res.TotalBlocks,
	})
}

// ListSessions handles GET /api/sessions.
//
//	@Summary		List closed sessions with pagination
//	@Tags			sessions
//	@Produce		json
//	@Param			limit	query		int	false	"Page size"
//	@Param			offset	query		int	false	"Page offset"
//	@Success		200		{object}	SessionListResponse
//	@Security		BearerAuth
//	@Router			/sessions [get]
func (h *Handler) ListSessions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	offset, _ := strconv.Atoi(q.Get("offset"))

	rows, total, err := h.db.ListEntries(limit, offset)
	if err != nil {
		slog.Error("list sessions failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	items := make([]SessionListItem, len(rows))
	for i, row := range rows {
		items[i] = SessionListItem{
			Path:     row.Path,
			Title:    row.Title,
			Checksum: row.Checksum,
			ClosedAt: row.ClosedAt,
		}
	}
	writeJSON(w, http.StatusOK, SessionListResponse{Sessions: items, Total: total})
}

// Search handles GET /api/sessions/search.
//
//	@Summary		Search session entries by title and body
//	@Tags			sessions
//	@Produce		json
//	@Param			q		query		string	true	"Search query"
//	@Param			limit	query		int		false	"Max results"
//	@Success		200		{object}	SearchResponse
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/sessions/search [get]
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("query parameter 'q' is required"))
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	hits, err := h.db.Search(q, limit)
	if err != nil {
		slog.Error("search failed", slog.String("query", q), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	results := make([]SearchResult, len(hits))
	for i, hit := range hits {
		results[i] = SearchResult{Path: hit.Path, Title: hit.Title, Snippet: hit.Snippet}
	}
	writeJSON(w, http.StatusOK, SearchResponse{Results: results})
}

// GetSession handles GET /api/sessions/*.
//
//	@Summary		Read a single journal entry by path
//	@Tags			sessions
//	@Produce		json
//	@Param			path	path		string	true	"Journal path"
//	@Success		200		{object}	SessionDetail
//	@Failure		404		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/sessions/{path} [get]
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	path := sessionPath(r)
	if path == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("path is required"))
		return
	}
	data, err := h.store.Read(path)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) || errors.Is(err, os.ErrNotExist) {
			writeJSON(w, http.StatusNotFound, errorBody("not found"))
		} else {
			slog.Error("get session failed", slog.String("path", path), slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	writeJSON(w, http.StatusOK, SessionDetail{
		Path:     path,
		Content:  string(data),
		Checksum: checksum.Sum(data),
	})
}
