package task

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/careloop/careloop-backend/internal/domain"
	"github.com/careloop/careloop-backend/pkg/ctxutil"
)

// Complete marks an open task done. Completing a task that is already done
// is a no-op; the first completion time is never overwritten.
func (s *Service) Complete(ctx context.Context, taskID uuid.UUID) (*domain.Task, error) {
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

	allowed, err := s.access.HasRole(ctx, task.CircleID, actorID, domain.RoleContributor)
	if err != nil {
		return nil, fmt.Errorf("check role: %w", err)
	}
	if !allowed {
		return nil, domain.ErrForbidden
	}

	now := s.now()
	done, err := s.tasks.MarkDone(ctx, taskID, now)
	if err != nil {
		return nil, fmt.Errorf("mark done: %w", err)
	}
	if done {
		task.Status = domain.TaskStatusDone
		task.CompletedAt = &now
		task.UpdatedAt = now

		s.log.InfoContext(ctx, "task completed",
			slog.String("task_id", taskID.String()),
			slog.String("actor_id", actorID.String()),
		)
	}

	return task, nil
}
