// Package task provides care task management. Most tasks are born from inbox
// triage; this service covers direct creation, completion and reads.
package task

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/careloop/careloop-backend/internal/domain"
)

type taskRepo interface {
	Create(ctx context.Context, task *domain.Task) error
	GetByID(ctx context.Context, taskID uuid.UUID) (*domain.Task, error)
	ListByCircle(ctx context.Context, circleID uuid.UUID, status *domain.TaskStatus, limit, offset int) ([]*domain.Task, error)
	MarkDone(ctx context.Context, taskID uuid.UUID, completedAt time.Time) (bool, error)
}

type accessPredicate interface {
	IsMember(ctx context.Context, circleID, userID uuid.UUID) (bool, error)
	HasRole(ctx context.Context, circleID, userID uuid.UUID, minRole domain.Role) (bool, error)
}

const (
	DefaultListLimit = 50
	MaxListLimit     = 200
)

// Service provides task operations.
type Service struct {
	tasks  taskRepo
	access accessPredicate
	now    func() time.Time
	log    *slog.Logger
}

// NewService creates a new Task service.
func NewService(log *slog.Logger, tasks taskRepo, access accessPredicate) *Service {
	return &Service{
		tasks:  tasks,
		access: access,
		now:    func() time.Time { return time.Now().UTC() },
		log:    log.With("service", "task"),
	}
}
