package task

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/careloop/careloop-backend/internal/domain"
	"github.com/careloop/careloop-backend/pkg/ctxutil"
)

// Get returns a task the actor is allowed to see.
func (s *Service) Get(ctx context.Context, taskID uuid.UUID) (*domain.Task, error) {
	actorID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if taskID == uuid.Nil {
		return nil, domain.NewValidationError("task_id", "required")
	}

	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}

	member, err := s.access.IsMember(ctx, task.CircleID, actorID)
	if err != nil {
		return nil, fmt.Errorf("check membership: %w", err)
	}
	if !member {
		return nil, domain.ErrForbidden
	}

	return task, nil
}

// List returns a circle's tasks, newest first, optionally filtered by status.
func (s *Service) List(ctx context.Context, input ListInput) ([]*domain.Task, error) {
	actorID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	member, err := s.access.IsMember(ctx, input.CircleID, actorID)
	if err != nil {
		return nil, fmt.Errorf("check membership: %w", err)
	}
	if !member {
		return nil, domain.ErrForbidden
	}

	limit := input.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}

	tasks, err := s.tasks.ListByCircle(ctx, input.CircleID, input.Status, limit, input.Offset)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	if tasks == nil {
		tasks = []*domain.Task{}
	}

	return tasks, nil
}
