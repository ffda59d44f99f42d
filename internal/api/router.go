package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/starford/dagaz/internal/closer"
	"github.com/starford/dagaz/internal/index"
	"github.com/starford/dagaz/internal/journal"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
// sseHandler, if non-nil, is mounted at GET /events inside the auth group.
func NewRouter(svc *closer.Service, db *index.DB, store journal.Provider, authEnabled bool, token string, sseHandler http.Handler) chi.Router {
	h := NewHandler(svc, db, store)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	// Session close and journal access.
	r.Post("/sessions/close", h.CloseSession)
	r.Get("/sessions", h.ListSessions)
	r.Get("/sessions/search", h.Search)
	r.Get("/sessions/*", h.GetSession)

	// Direct document creation.
	r.Post("/pages", h.CreatePage)

	// SSE endpoint (protected by same auth middleware).
	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}
