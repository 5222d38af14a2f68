package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/careloop/careloop-backend/internal/domain"
	sharelinksvc "github.com/careloop/careloop-backend/internal/service/sharelink"
)

// linkService defines the minimal interface needed by LinkHandler. It is the
// authenticated side of share links; resolution lives on ShareHandler.
type linkService interface {
	Issue(ctx context.Context, input sharelinksvc.IssueInput) (*domain.ShareLink, error)
	Revoke(ctx context.Context, linkID uuid.UUID) error
	ListAccessLog(ctx context.Context, linkID uuid.UUID) ([]domain.ShareLinkAccess, error)
}

// LinkHandler serves share link management endpoints.
type LinkHandler struct {
	svc linkService
	log *slog.Logger
}

// NewLinkHandler creates a LinkHandler.
func NewLinkHandler(svc linkService, logger *slog.Logger) *LinkHandler {
	return &LinkHandler{svc: svc, log: logger.With("handler", "link")}
}

type issueLinkRequest struct {
	ObjectType     string    `json:"object_type"`
	ObjectID       uuid.UUID `json:"object_id"`
	TTLSeconds     int       `json:"ttl_seconds"`
	MaxAccessCount *int      `json:"max_access_count"`
}

type linkResponse struct {
	ID             uuid.UUID  `json:"id"`
	CircleID       uuid.UUID  `json:"circle_id"`
	ObjectType     string     `json:"object_type"`
	ObjectID       uuid.UUID  `json:"object_id"`
	Token          string     `json:"token"`
	ExpiresAt      time.Time  `json:"expires_at"`
	MaxAccessCount *int       `json:"max_access_count,omitempty"`
	AccessCount    int        `json:"access_count"`
	LastAccessedAt *time.Time `json:"last_accessed_at,omitempty"`
	CreatedBy      uuid.UUID  `json:"created_by"`
	CreatedAt      time.Time  `json:"created_at"`
}

type accessLogResponse struct {
	ID            uuid.UUID `json:"id"`
	RequesterHash string    `json:"requester_hash"`
	AccessedAt    time.Time `json:"accessed_at"`
}

func toLinkResponse(l *domain.ShareLink) linkResponse {
	return linkResponse{
		ID:             l.ID,
		CircleID:       l.CircleID,
		ObjectType:     l.ObjectType,
		ObjectID:       l.ObjectID,
		Token:          l.Token,
		ExpiresAt:      l.ExpiresAt,
		MaxAccessCount: l.MaxAccessCount,
		AccessCount:    l.AccessCount,
		LastAccessedAt: l.LastAccessedAt,
		CreatedBy:      l.CreatedBy,
		CreatedAt:      l.CreatedAt,
	}
}

// Issue handles POST /circles/{circleID}/share-links. The token appears only
// here; it never shows up in list or audit surfaces.
func (h *LinkHandler) Issue(w http.ResponseWriter, r *http.Request) {
	circleID, ok := pathUUID(w, r, "circleID")
	if !ok {
		return
	}

	var req issueLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	link, err := h.svc.Issue(r.Context(), sharelinksvc.IssueInput{
		CircleID:       circleID,
		ObjectType:     req.ObjectType,
		ObjectID:       req.ObjectID,
		TTL:            time.Duration(req.TTLSeconds) * time.Second,
		MaxAccessCount: req.MaxAccessCount,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, toLinkResponse(link))
}

// Revoke handles DELETE /share-links/{id}. Revoking an already revoked link
// succeeds.
func (h *LinkHandler) Revoke(w http.ResponseWriter, r *http.Request) {
	linkID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.svc.Revoke(r.Context(), linkID); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListAccessLog handles GET /share-links/{id}/access-log.
func (h *LinkHandler) ListAccessLog(w http.ResponseWriter, r *http.Request) {
	linkID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	accesses, err := h.svc.ListAccessLog(r.Context(), linkID)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	resp := make([]accessLogResponse, 0, len(accesses))
	for _, a := range accesses {
		resp = append(resp, accessLogResponse{
			ID:            a.ID,
			RequesterHash: a.RequesterHash,
			AccessedAt:    a.AccessedAt,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}
