package outbox

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/careloop/careloop-backend/internal/domain"
)

// ClaimPending returns up to limit PENDING entries for the delivery worker,
// oldest first. The claim runs in a transaction so that two worker instances
// never pick up the same entry; the caller resolves each claimed entry with
// MarkSent or MarkFailed within the same callback.
func (s *Service) ClaimPending(ctx context.Context, limit int, handle func(ctx context.Context, entry *domain.OutboxEntry) error) error {
	if limit <= 0 {
		return domain.NewValidationError("limit", "must be positive")
	}

	return s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		entries, err := s.entries.ClaimPending(txCtx, limit)
		if err != nil {
			return fmt.Errorf("claim pending: %w", err)
		}

		for _, entry := range entries {
			if err := handle(txCtx, entry); err != nil {
				return fmt.Errorf("handle entry %s: %w", entry.ID, err)
			}
		}

		return nil
	})
}

// MarkSent resolves a PENDING entry as delivered.
func (s *Service) MarkSent(ctx context.Context, entryID uuid.UUID) error {
	if entryID == uuid.Nil {
		return domain.NewValidationError("entry_id", "required")
	}

	if err := s.entries.MarkSent(ctx, entryID, s.now()); err != nil {
		return fmt.Errorf("mark sent: %w", err)
	}

	return nil
}

// MarkFailed resolves a PENDING entry as undeliverable.
func (s *Service) MarkFailed(ctx context.Context, entryID uuid.UUID, deliveryErr string) error {
	if entryID == uuid.Nil {
		return domain.NewValidationError("entry_id", "required")
	}

	if err := s.entries.MarkFailed(ctx, entryID, s.now(), deliveryErr); err != nil {
		return fmt.Errorf("mark failed: %w", err)
	}

	s.log.WarnContext(ctx, "notification delivery failed",
		slog.String("entry_id", entryID.String()),
		slog.String("error", deliveryErr),
	)

	return nil
}

// PurgeResolved deletes SENT and FAILED entries older than the retention
// period and returns the number removed. PENDING entries are never touched.
func (s *Service) PurgeResolved(ctx context.Context) (int, error) {
	cutoff := s.now().Add(-s.retention)

	purged, err := s.entries.PurgeResolved(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("purge resolved: %w", err)
	}

	if purged > 0 {
		s.log.InfoContext(ctx, "purged resolved notifications",
			slog.Int("count", purged),
			slog.Time("cutoff", cutoff),
		)
	}

	return purged, nil
}
