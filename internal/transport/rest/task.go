package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/careloop/careloop-backend/internal/domain"
	tasksvc "github.com/careloop/careloop-backend/internal/service/task"
)

// taskService defines the minimal interface needed by TaskHandler.
type taskService interface {
	Create(ctx context.Context, input tasksvc.CreateInput) (*domain.Task, error)
	Get(ctx context.Context, taskID uuid.UUID) (*domain.Task, error)
	List(ctx context.Context, input tasksvc.ListInput) ([]*domain.Task, error)
	Complete(ctx context.Context, taskID uuid.UUID) (*domain.Task, error)
}

// TaskHandler serves task REST endpoints.
type TaskHandler struct {
	svc taskService
	log *slog.Logger
}

// NewTaskHandler creates a TaskHandler.
func NewTaskHandler(svc taskService, logger *slog.Logger) *TaskHandler {
	return &TaskHandler{svc: svc, log: logger.With("handler", "task")}
}

type createTaskRequest struct {
	AssigneeID  uuid.UUID  `json:"assignee_id"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"due_date"`
	Priority    string     `json:"priority"`
}

type taskResponse struct {
	ID          uuid.UUID  `json:"id"`
	CircleID    uuid.UUID  `json:"circle_id"`
	AssigneeID  uuid.UUID  `json:"assignee_id"`
	CreatedBy   uuid.UUID  `json:"created_by"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Priority    string     `json:"priority"`
	Status      string     `json:"status"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func toTaskResponse(t *domain.Task) taskResponse {
	return taskResponse{
		ID:          t.ID,
		CircleID:    t.CircleID,
		AssigneeID:  t.AssigneeID,
		CreatedBy:   t.CreatedBy,
		Description: t.Description,
		DueDate:     t.DueDate,
		Priority:    string(t.Priority),
		Status:      string(t.Status),
		CompletedAt: t.CompletedAt,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// Create handles POST /circles/{circleID}/tasks.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	circleID, ok := pathUUID(w, r, "circleID")
	if !ok {
		return
	}

	var req createTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	task, err := h.svc.Create(r.Context(), tasksvc.CreateInput{
		CircleID:    circleID,
		AssigneeID:  req.AssigneeID,
		Description: req.Description,
		DueDate:     req.DueDate,
		Priority:    domain.TaskPriority(req.Priority),
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, toTaskResponse(task))
}

// List handles GET /circles/{circleID}/tasks.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	circleID, ok := pathUUID(w, r, "circleID")
	if !ok {
		return
	}

	q := r.URL.Query()
	input := tasksvc.ListInput{
		CircleID: circleID,
		Limit:    queryInt(q, "limit"),
		Offset:   queryInt(q, "offset"),
	}
	if raw := q.Get("status"); raw != "" {
		status := domain.TaskStatus(raw)
		input.Status = &status
	}

	tasks, err := h.svc.List(r.Context(), input)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	resp := make([]taskResponse, 0, len(tasks))
	for _, t := range tasks {
		resp = append(resp, toTaskResponse(t))
	}
	writeJSON(w, http.StatusOK, resp)
}

// Get handles GET /tasks/{id}.
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	taskID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	task, err := h.svc.Get(r.Context(), taskID)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toTaskResponse(task))
}

// Complete handles POST /tasks/{id}/complete.
func (h *TaskHandler) Complete(w http.ResponseWriter, r *http.Request) {
	taskID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	task, err := h.svc.Complete(r.Context(), taskID)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toTaskResponse(task))
}
