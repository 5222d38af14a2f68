package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/careloop/careloop-backend/internal/domain"
	documentsvc "github.com/careloop/careloop-backend/internal/service/document"
)

// documentService defines the minimal interface needed by DocumentHandler.
type documentService interface {
	Get(ctx context.Context, docID uuid.UUID) (*domain.Document, error)
	List(ctx context.Context, input documentsvc.ListInput) ([]*domain.Document, error)
	Update(ctx context.Context, input documentsvc.UpdateInput) (int, error)
	Publish(ctx context.Context, input documentsvc.PublishInput) (*domain.Document, error)
	GetRevision(ctx context.Context, docID uuid.UUID, revision int) (*domain.Revision, error)
	ListRevisions(ctx context.Context, docID uuid.UUID) ([]domain.Revision, error)
}

// DocumentHandler serves document REST endpoints.
type DocumentHandler struct {
	svc documentService
	log *slog.Logger
}

// NewDocumentHandler creates a DocumentHandler.
func NewDocumentHandler(svc documentService, logger *slog.Logger) *DocumentHandler {
	return &DocumentHandler{svc: svc, log: logger.With("handler", "document")}
}

type updateDocumentRequest struct {
	Content map[string]any `json:"content"`
	Title   *string        `json:"title"`
	Status  *string        `json:"status"`
}

type publishDocumentRequest struct {
	Content map[string]any `json:"content"`
}

type documentResponse struct {
	ID              uuid.UUID      `json:"id"`
	CircleID        uuid.UUID      `json:"circle_id"`
	PatientID       *uuid.UUID     `json:"patient_id,omitempty"`
	Kind            string         `json:"kind"`
	BinderType      *string        `json:"binder_type,omitempty"`
	Title           string         `json:"title"`
	Content         map[string]any `json:"content"`
	CurrentRevision int            `json:"current_revision"`
	Status          string         `json:"status"`
	PublishedAt     *time.Time     `json:"published_at,omitempty"`
	CreatedBy       uuid.UUID      `json:"created_by"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

type revisionResponse struct {
	ID         uuid.UUID      `json:"id"`
	DocumentID uuid.UUID      `json:"document_id"`
	Revision   int            `json:"revision"`
	Content    map[string]any `json:"content"`
	EditedBy   uuid.UUID      `json:"edited_by"`
	CreatedAt  time.Time      `json:"created_at"`
}

func toDocumentResponse(d *domain.Document) documentResponse {
	resp := documentResponse{
		ID:              d.ID,
		CircleID:        d.CircleID,
		PatientID:       d.PatientID,
		Kind:            string(d.Kind),
		Title:           d.Title,
		Content:         d.Content,
		CurrentRevision: d.CurrentRevision,
		Status:          string(d.Status),
		PublishedAt:     d.PublishedAt,
		CreatedBy:       d.CreatedBy,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
	if d.BinderType != nil {
		bt := string(*d.BinderType)
		resp.BinderType = &bt
	}
	return resp
}

func toRevisionResponse(rev domain.Revision) revisionResponse {
	return revisionResponse{
		ID:         rev.ID,
		DocumentID: rev.DocumentID,
		Revision:   rev.Revision,
		Content:    rev.Content,
		EditedBy:   rev.EditedBy,
		CreatedAt:  rev.CreatedAt,
	}
}

// List handles GET /circles/{circleID}/documents.
func (h *DocumentHandler) List(w http.ResponseWriter, r *http.Request) {
	circleID, ok := pathUUID(w, r, "circleID")
	if !ok {
		return
	}

	q := r.URL.Query()
	docs, err := h.svc.List(r.Context(), documentsvc.ListInput{
		CircleID: circleID,
		Kind:     domain.DocumentKind(q.Get("kind")),
		Limit:    queryInt(q, "limit"),
		Offset:   queryInt(q, "offset"),
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	resp := make([]documentResponse, 0, len(docs))
	for _, d := range docs {
		resp = append(resp, toDocumentResponse(d))
	}
	writeJSON(w, http.StatusOK, resp)
}

// Get handles GET /documents/{id}.
func (h *DocumentHandler) Get(w http.ResponseWriter, r *http.Request) {
	docID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	doc, err := h.svc.Get(r.Context(), docID)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toDocumentResponse(doc))
}

// Update handles PATCH /documents/{id}.
func (h *DocumentHandler) Update(w http.ResponseWriter, r *http.Request) {
	docID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req updateDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	input := documentsvc.UpdateInput{
		DocID:   docID,
		Content: req.Content,
		Title:   req.Title,
	}
	if req.Status != nil {
		status := domain.DocumentStatus(*req.Status)
		input.Status = &status
	}

	revision, err := h.svc.Update(r.Context(), input)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"revision": revision})
}

// Publish handles POST /documents/{id}/publish.
func (h *DocumentHandler) Publish(w http.ResponseWriter, r *http.Request) {
	docID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	// Body is optional: publish-with-content saves and publishes atomically.
	var req publishDocumentRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	doc, err := h.svc.Publish(r.Context(), documentsvc.PublishInput{
		DocID:   docID,
		Content: req.Content,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toDocumentResponse(doc))
}

// ListRevisions handles GET /documents/{id}/revisions.
func (h *DocumentHandler) ListRevisions(w http.ResponseWriter, r *http.Request) {
	docID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	revs, err := h.svc.ListRevisions(r.Context(), docID)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	resp := make([]revisionResponse, 0, len(revs))
	for _, rev := range revs {
		resp = append(resp, toRevisionResponse(rev))
	}
	writeJSON(w, http.StatusOK, resp)
}

// GetRevision handles GET /documents/{id}/revisions/{revision}.
func (h *DocumentHandler) GetRevision(w http.ResponseWriter, r *http.Request) {
	docID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	revision, err := strconv.Atoi(r.PathValue("revision"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid revision")
		return
	}

	rev, err := h.svc.GetRevision(r.Context(), docID, revision)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toRevisionResponse(*rev))
}
