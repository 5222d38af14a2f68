package rest

import (
	"net/http"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Health    *HealthHandler
	Share     *ShareHandler
	Documents *DocumentHandler
	Inbox     *InboxHandler
	Tasks     *TaskHandler
	Links     *LinkHandler
	Audit     *AuditHandler

	// ResolveLimit wraps the public share resolution endpoint; every other
	// route is reached with a session and is not rate limited here.
	ResolveLimit func(http.Handler) http.Handler
}

// NewRouter assembles the HTTP surface.
func NewRouter(h Handlers) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /live", h.Health.Live)
	mux.HandleFunc("GET /ready", h.Health.Ready)
	mux.HandleFunc("GET /health", h.Health.Health)

	resolve := http.HandlerFunc(h.Share.Resolve)
	mux.Handle("GET /share/{token}", h.ResolveLimit(resolve))

	mux.HandleFunc("GET /circles/{circleID}/documents", h.Documents.List)
	mux.HandleFunc("GET /documents/{id}", h.Documents.Get)
	mux.HandleFunc("PATCH /documents/{id}", h.Documents.Update)
	mux.HandleFunc("POST /documents/{id}/publish", h.Documents.Publish)
	mux.HandleFunc("GET /documents/{id}/revisions", h.Documents.ListRevisions)
	mux.HandleFunc("GET /documents/{id}/revisions/{revision}", h.Documents.GetRevision)

	mux.HandleFunc("POST /circles/{circleID}/inbox", h.Inbox.Capture)
	mux.HandleFunc("GET /circles/{circleID}/inbox", h.Inbox.List)
	mux.HandleFunc("GET /inbox/{id}", h.Inbox.Get)
	mux.HandleFunc("POST /inbox/{id}/assign", h.Inbox.Assign)
	mux.HandleFunc("POST /inbox/{id}/triage", h.Inbox.Triage)
	mux.HandleFunc("GET /inbox/{id}/triage-log", h.Inbox.ListTriageLog)

	mux.HandleFunc("POST /circles/{circleID}/tasks", h.Tasks.Create)
	mux.HandleFunc("GET /circles/{circleID}/tasks", h.Tasks.List)
	mux.HandleFunc("GET /tasks/{id}", h.Tasks.Get)
	mux.HandleFunc("POST /tasks/{id}/complete", h.Tasks.Complete)

	mux.HandleFunc("POST /circles/{circleID}/share-links", h.Links.Issue)
	mux.HandleFunc("DELETE /share-links/{id}", h.Links.Revoke)
	mux.HandleFunc("GET /share-links/{id}/access-log", h.Links.ListAccessLog)

	mux.HandleFunc("GET /circles/{circleID}/audit", h.Audit.List)

	return mux
}
