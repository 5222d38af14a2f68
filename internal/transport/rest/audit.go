package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/careloop/careloop-backend/internal/domain"
	auditsvc "github.com/careloop/careloop-backend/internal/service/audit"
)

// auditService defines the minimal interface needed by AuditHandler.
type auditService interface {
	List(ctx context.Context, input auditsvc.ListInput) ([]domain.AuditEvent, error)
}

// AuditHandler serves the admin-gated audit read surface.
type AuditHandler struct {
	svc auditService
	log *slog.Logger
}

// NewAuditHandler creates an AuditHandler.
func NewAuditHandler(svc auditService, logger *slog.Logger) *AuditHandler {
	return &AuditHandler{svc: svc, log: logger.With("handler", "audit")}
}

type auditEventResponse struct {
	ID         uuid.UUID      `json:"id"`
	CircleID   uuid.UUID      `json:"circle_id"`
	ActorID    uuid.UUID      `json:"actor_id"`
	EventType  string         `json:"event_type"`
	ObjectType string         `json:"object_type"`
	ObjectID   *uuid.UUID     `json:"object_id,omitempty"`
	Metadata   map[string]any `json:"metadata"`
	CreatedAt  time.Time      `json:"created_at"`
}

// List handles GET /circles/{circleID}/audit.
func (h *AuditHandler) List(w http.ResponseWriter, r *http.Request) {
	circleID, ok := pathUUID(w, r, "circleID")
	if !ok {
		return
	}

	q := r.URL.Query()
	input := auditsvc.ListInput{
		CircleID: circleID,
		Limit:    queryInt(q, "limit"),
		Offset:   queryInt(q, "offset"),
	}
	if raw := q.Get("actor_id"); raw != "" {
		actorID, err := uuid.Parse(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid actor_id")
			return
		}
		input.ActorID = &actorID
	}
	if raw := q.Get("event_type"); raw != "" {
		input.EventType = &raw
	}
	if raw := q.Get("since"); raw != "" {
		since, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid since")
			return
		}
		input.Since = &since
	}
	if raw := q.Get("until"); raw != "" {
		until, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid until")
			return
		}
		input.Until = &until
	}

	events, err := h.svc.List(r.Context(), input)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	resp := make([]auditEventResponse, 0, len(events))
	for _, e := range events {
		resp = append(resp, auditEventResponse{
			ID:         e.ID,
			CircleID:   e.CircleID,
			ActorID:    e.ActorID,
			EventType:  e.EventType,
			ObjectType: e.ObjectType,
			ObjectID:   e.ObjectID,
			Metadata:   e.Metadata,
			CreatedAt:  e.CreatedAt,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}
