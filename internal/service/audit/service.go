// Package audit provides the append-only audit ledger: a write-only Record
// operation used by the other services, and an admin-scoped List read.
package audit

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/careloop/careloop-backend/internal/domain"
)

type auditRepo interface {
	Append(ctx context.Context, event domain.AuditEvent) error
	List(ctx context.Context, filter domain.AuditFilter) ([]domain.AuditEvent, error)
}

type accessPredicate interface {
	HasRole(ctx context.Context, circleID, userID uuid.UUID, minRole domain.Role) (bool, error)
}

const (
	DefaultListLimit = 50
	MaxListLimit     = 200
)

// Service provides audit ledger operations.
type Service struct {
	events auditRepo
	access accessPredicate
	now    func() time.Time
	log    *slog.Logger
}

// NewService creates a new Audit service.
func NewService(
	log *slog.Logger,
	events auditRepo,
	access accessPredicate,
) *Service {
	return &Service{
		events: events,
		access: access,
		now:    func() time.Time { return time.Now().UTC() },
		log:    log.With("service", "audit"),
	}
}
