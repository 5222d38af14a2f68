package rest

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/careloop/careloop-backend/internal/domain"
	sharelinksvc "github.com/careloop/careloop-backend/internal/service/sharelink"
)

type shareResolver interface {
	Resolve(ctx context.Context, input sharelinksvc.ResolveInput) (*domain.ShareLink, error)
}

// ShareHandler serves the public, unauthenticated share resolution endpoint.
type ShareHandler struct {
	links shareResolver
}

// NewShareHandler creates a ShareHandler.
func NewShareHandler(links shareResolver) *ShareHandler {
	return &ShareHandler{links: links}
}

// ShareResponse is the JSON response for a successful resolution.
type ShareResponse struct {
	ObjectType  string    `json:"object_type"`
	ObjectID    uuid.UUID `json:"object_id"`
	CircleID    uuid.UUID `json:"circle_id"`
	ExpiresAt   time.Time `json:"expires_at"`
	AccessCount int       `json:"access_count"`
}

// Resolve redeems the token from the URL path. The bearer of a valid token
// needs no account; expired, revoked and exhausted links all answer 410 so
// a dead link never reveals which guard killed it beyond its own state.
func (h *ShareHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	token := r.PathValue("token")

	link, err := h.links.Resolve(r.Context(), sharelinksvc.ResolveInput{
		Token:              token,
		RequesterIP:        remoteIP(r),
		RequesterUserAgent: r.UserAgent(),
	})
	if err != nil {
		writeResolveError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, ShareResponse{
		ObjectType:  link.ObjectType,
		ObjectID:    link.ObjectID,
		CircleID:    link.CircleID,
		ExpiresAt:   link.ExpiresAt,
		AccessCount: link.AccessCount,
	})
}

func writeResolveError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "link not found"})
	case errors.Is(err, domain.ErrExpired):
		writeJSON(w, http.StatusGone, errorResponse{Error: "link expired"})
	case errors.Is(err, domain.ErrRevoked):
		writeJSON(w, http.StatusGone, errorResponse{Error: "link revoked"})
	case errors.Is(err, domain.ErrAccessLimitReached):
		writeJSON(w, http.StatusGone, errorResponse{Error: "link access limit reached"})
	case errors.Is(err, domain.ErrValidation):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid token"})
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func remoteIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
