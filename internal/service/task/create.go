package task

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/careloop/careloop-backend/internal/domain"
	"github.com/careloop/careloop-backend/pkg/ctxutil"
)

// Create creates a task directly, outside of triage. The assignee defaults
// to the actor and must be an active circle member.
func (s *Service) Create(ctx context.Context, input CreateInput) (*domain.Task, error) {
	actorID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	allowed, err := s.access.HasRole(ctx, input.CircleID, actorID, domain.RoleContributor)
	if err != nil {
		return nil, fmt.Errorf("check role: %w", err)
	}
	if !allowed {
		return nil, domain.ErrForbidden
	}

	assigneeID := input.AssigneeID
	if assigneeID == uuid.Nil {
		assigneeID = actorID
	}
	if assigneeID != actorID {
		member, err := s.access.IsMember(ctx, input.CircleID, assigneeID)
		if err != nil {
			return nil, fmt.Errorf("check assignee membership: %w", err)
		}
		if !member {
			return nil, domain.NewValidationError("assignee_id", "not an active circle member")
		}
	}

	priority := input.Priority
	if priority == "" {
		priority = domain.TaskPriorityMed
	}

	now := s.now()
	task := &domain.Task{
		ID:          uuid.New(),
		CircleID:    input.CircleID,
		AssigneeID:  assigneeID,
		CreatedBy:   actorID,
		Description: input.Description,
		DueDate:     input.DueDate,
		Priority:    priority,
		Status:      domain.TaskStatusOpen,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	s.log.InfoContext(ctx, "task created",
		slog.String("task_id", task.ID.String()),
		slog.String("circle_id", task.CircleID.String()),
		slog.String("assignee_id", task.AssigneeID.String()),
	)

	return task, nil
}
