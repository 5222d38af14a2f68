// Package ratelimit provides a fixed-window request limiter backed by
// shared storage, so the decision is consistent across server replicas.
package ratelimit

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/careloop/careloop-backend/internal/domain"
)

type counterRepo interface {
	Increment(ctx context.Context, subjectID uuid.UUID, endpoint string, windowStart time.Time) (int, error)
	DeleteIdle(ctx context.Context, cutoff time.Time) (int, error)
}

// Service answers allow/deny for one request against a fixed-window quota.
type Service struct {
	counters counterRepo
	now      func() time.Time
	log      *slog.Logger
}

// NewService creates a new RateLimit service.
func NewService(log *slog.Logger, counters counterRepo) *Service {
	return &Service{
		counters: counters,
		now:      func() time.Time { return time.Now().UTC() },
		log:      log.With("service", "ratelimit"),
	}
}

// Allow counts the current request against the subject's window. It returns
// nil when the request fits the quota and domain.ErrRateLimited when it does
// not; any other error means the counter store failed. Windows are aligned to
// multiples of the window length since the epoch, so all replicas agree on
// the boundary. The request is counted even when denied.
func (s *Service) Allow(ctx context.Context, subjectID uuid.UUID, endpoint string, maxRequests int, windowSeconds int) error {
	if subjectID == uuid.Nil {
		return domain.NewValidationError("subject_id", "required")
	}
	if endpoint == "" {
		return domain.NewValidationError("endpoint", "required")
	}
	if maxRequests < 1 {
		return domain.NewValidationError("max_requests", "must be positive")
	}
	if windowSeconds < 1 {
		return domain.NewValidationError("window_seconds", "must be positive")
	}

	windowStart := s.now().Truncate(time.Duration(windowSeconds) * time.Second)

	count, err := s.counters.Increment(ctx, subjectID, endpoint, windowStart)
	if err != nil {
		return fmt.Errorf("increment counter: %w", err)
	}

	if count > maxRequests {
		s.log.WarnContext(ctx, "rate limit exceeded",
			slog.String("subject_id", subjectID.String()),
			slog.String("endpoint", endpoint),
			slog.Int("count", count),
			slog.Int("max_requests", maxRequests),
		)
		return fmt.Errorf("%s: %d of %d in window: %w", endpoint, count, maxRequests, domain.ErrRateLimited)
	}

	return nil
}

// Sweep deletes counter rows idle since before the cutoff. Stale rows are
// harmless for correctness; this only bounds table growth.
func (s *Service) Sweep(ctx context.Context, idleFor time.Duration) (int, error) {
	if idleFor <= 0 {
		return 0, domain.NewValidationError("idle_for", "must be positive")
	}

	deleted, err := s.counters.DeleteIdle(ctx, s.now().Add(-idleFor))
	if err != nil {
		return 0, fmt.Errorf("delete idle counters: %w", err)
	}

	if deleted > 0 {
		s.log.InfoContext(ctx, "rate limit counters swept", slog.Int("deleted", deleted))
	}

	return deleted, nil
}
