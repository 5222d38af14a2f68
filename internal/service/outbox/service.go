// Package outbox provides the notification outbox: producers enqueue durable
// PENDING entries (single recipient or circle-wide fan-out), the delivery
// worker claims and resolves them, and a retention sweep purges resolved
// entries past a configurable age.
package outbox

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/careloop/careloop-backend/internal/domain"
)

type outboxRepo interface {
	Enqueue(ctx context.Context, entry *domain.OutboxEntry) error
	FanOut(ctx context.Context, circleID, excludeUserID uuid.UUID, notifType, title, body string, data map[string]any, createdAt time.Time) (int, error)
	ClaimPending(ctx context.Context, limit int) ([]*domain.OutboxEntry, error)
	MarkSent(ctx context.Context, entryID uuid.UUID, attemptedAt time.Time) error
	MarkFailed(ctx context.Context, entryID uuid.UUID, attemptedAt time.Time, deliveryErr string) error
	PurgeResolved(ctx context.Context, cutoff time.Time) (int, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// DefaultRetention is how long resolved entries are kept before the sweep
// removes them.
const DefaultRetention = 30 * 24 * time.Hour

// Service provides notification outbox operations.
type Service struct {
	entries   outboxRepo
	tx        txManager
	retention time.Duration
	now       func() time.Time
	log       *slog.Logger
}

// NewService creates a new Outbox service. A non-positive retention falls
// back to DefaultRetention.
func NewService(
	log *slog.Logger,
	entries outboxRepo,
	tx txManager,
	retention time.Duration,
) *Service {
	if retention <= 0 {
		retention = DefaultRetention
	}
	return &Service{
		entries:   entries,
		tx:        tx,
		retention: retention,
		now:       func() time.Time { return time.Now().UTC() },
		log:       log.With("service", "outbox"),
	}
}
