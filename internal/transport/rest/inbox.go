package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/careloop/careloop-backend/internal/domain"
	inboxsvc "github.com/careloop/careloop-backend/internal/service/inbox"
)

// inboxService defines the minimal interface needed by InboxHandler.
type inboxService interface {
	Capture(ctx context.Context, input inboxsvc.CaptureInput) (*domain.InboxItem, error)
	Get(ctx context.Context, itemID uuid.UUID) (*domain.InboxItem, error)
	List(ctx context.Context, input inboxsvc.ListInput) ([]*domain.InboxItem, error)
	Assign(ctx context.Context, input inboxsvc.AssignInput) error
	Triage(ctx context.Context, input inboxsvc.TriageInput) (*domain.TriageLogEntry, error)
	ListTriageLog(ctx context.Context, itemID uuid.UUID) ([]domain.TriageLogEntry, error)
}

// InboxHandler serves inbox REST endpoints.
type InboxHandler struct {
	svc inboxService
	log *slog.Logger
}

// NewInboxHandler creates an InboxHandler.
func NewInboxHandler(svc inboxService, logger *slog.Logger) *InboxHandler {
	return &InboxHandler{svc: svc, log: logger.With("handler", "inbox")}
}

type captureRequest struct {
	Kind         string     `json:"kind"`
	Title        *string    `json:"title"`
	Note         *string    `json:"note"`
	AttachmentID *uuid.UUID `json:"attachment_id"`
	PatientID    *uuid.UUID `json:"patient_id"`
}

type assignRequest struct {
	AssigneeID uuid.UUID `json:"assignee_id"`
}

type triageRequest struct {
	Destination string     `json:"destination"`
	Note        *string    `json:"note"`
	PatientID   *uuid.UUID `json:"patient_id"`
	AssigneeID  *uuid.UUID `json:"assignee_id"`
	Priority    *string    `json:"priority"`
	DueDate     *time.Time `json:"due_date"`
}

type inboxItemResponse struct {
	ID           uuid.UUID  `json:"id"`
	CircleID     uuid.UUID  `json:"circle_id"`
	CapturedBy   uuid.UUID  `json:"captured_by"`
	Kind         string     `json:"kind"`
	Title        *string    `json:"title,omitempty"`
	Note         *string    `json:"note,omitempty"`
	AttachmentID *uuid.UUID `json:"attachment_id,omitempty"`
	PatientID    *uuid.UUID `json:"patient_id,omitempty"`
	AssigneeID   *uuid.UUID `json:"assignee_id,omitempty"`
	Status       string     `json:"status"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

type triageLogResponse struct {
	ID            uuid.UUID  `json:"id"`
	ItemID        uuid.UUID  `json:"item_id"`
	ActorID       uuid.UUID  `json:"actor_id"`
	Destination   string     `json:"destination"`
	DestinationID *uuid.UUID `json:"destination_id,omitempty"`
	Note          *string    `json:"note,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

func toInboxItemResponse(item *domain.InboxItem) inboxItemResponse {
	return inboxItemResponse{
		ID:           item.ID,
		CircleID:     item.CircleID,
		CapturedBy:   item.CapturedBy,
		Kind:         string(item.Kind),
		Title:        item.Title,
		Note:         item.Note,
		AttachmentID: item.AttachmentID,
		PatientID:    item.PatientID,
		AssigneeID:   item.AssigneeID,
		Status:       string(item.Status),
		CreatedAt:    item.CreatedAt,
		UpdatedAt:    item.UpdatedAt,
	}
}

func toTriageLogResponse(entry domain.TriageLogEntry) triageLogResponse {
	return triageLogResponse{
		ID:            entry.ID,
		ItemID:        entry.ItemID,
		ActorID:       entry.ActorID,
		Destination:   string(entry.Destination),
		DestinationID: entry.DestinationID,
		Note:          entry.Note,
		CreatedAt:     entry.CreatedAt,
	}
}

// Capture handles POST /circles/{circleID}/inbox.
func (h *InboxHandler) Capture(w http.ResponseWriter, r *http.Request) {
	circleID, ok := pathUUID(w, r, "circleID")
	if !ok {
		return
	}

	var req captureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := h.svc.Capture(r.Context(), inboxsvc.CaptureInput{
		CircleID:     circleID,
		Kind:         domain.InboxKind(req.Kind),
		Title:        req.Title,
		Note:         req.Note,
		AttachmentID: req.AttachmentID,
		PatientID:    req.PatientID,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, toInboxItemResponse(item))
}

// List handles GET /circles/{circleID}/inbox.
func (h *InboxHandler) List(w http.ResponseWriter, r *http.Request) {
	circleID, ok := pathUUID(w, r, "circleID")
	if !ok {
		return
	}

	q := r.URL.Query()
	input := inboxsvc.ListInput{
		CircleID: circleID,
		Limit:    queryInt(q, "limit"),
		Offset:   queryInt(q, "offset"),
	}
	if raw := q.Get("status"); raw != "" {
		status := domain.InboxStatus(raw)
		input.Status = &status
	}

	items, err := h.svc.List(r.Context(), input)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	resp := make([]inboxItemResponse, 0, len(items))
	for _, item := range items {
		resp = append(resp, toInboxItemResponse(item))
	}
	writeJSON(w, http.StatusOK, resp)
}

// Get handles GET /inbox/{id}.
func (h *InboxHandler) Get(w http.ResponseWriter, r *http.Request) {
	itemID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	item, err := h.svc.Get(r.Context(), itemID)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toInboxItemResponse(item))
}

// Assign handles POST /inbox/{id}/assign.
func (h *InboxHandler) Assign(w http.ResponseWriter, r *http.Request) {
	itemID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req assignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.svc.Assign(r.Context(), inboxsvc.AssignInput{
		ItemID:     itemID,
		AssigneeID: req.AssigneeID,
	}); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Triage handles POST /inbox/{id}/triage.
func (h *InboxHandler) Triage(w http.ResponseWriter, r *http.Request) {
	itemID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req triageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	input := inboxsvc.TriageInput{
		ItemID:      itemID,
		Destination: domain.TriageDestination(req.Destination),
		Note:        req.Note,
		PatientID:   req.PatientID,
		AssigneeID:  req.AssigneeID,
		DueDate:     req.DueDate,
	}
	if req.Priority != nil {
		priority := domain.TaskPriority(*req.Priority)
		input.Priority = &priority
	}

	entry, err := h.svc.Triage(r.Context(), input)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, toTriageLogResponse(*entry))
}

// ListTriageLog handles GET /inbox/{id}/triage-log.
func (h *InboxHandler) ListTriageLog(w http.ResponseWriter, r *http.Request) {
	itemID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	entries, err := h.svc.ListTriageLog(r.Context(), itemID)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	resp := make([]triageLogResponse, 0, len(entries))
	for _, entry := range entries {
		resp = append(resp, toTriageLogResponse(entry))
	}
	writeJSON(w, http.StatusOK, resp)
}
