package outbox

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/careloop/careloop-backend/internal/domain"
)

// Enqueue inserts one PENDING entry for a single recipient and returns its id.
func (s *Service) Enqueue(ctx context.Context, input EnqueueInput) (uuid.UUID, error) {
	if err := input.Validate(); err != nil {
		return uuid.Nil, err
	}

	entry := &domain.OutboxEntry{
		ID:        uuid.New(),
		UserID:    input.UserID,
		CircleID:  input.CircleID,
		Type:      input.Type,
		Title:     input.Title,
		Body:      input.Body,
		Data:      input.Data,
		Status:    domain.OutboxStatusPending,
		CreatedAt: s.now(),
	}

	if err := s.entries.Enqueue(ctx, entry); err != nil {
		return uuid.Nil, fmt.Errorf("enqueue notification: %w", err)
	}

	return entry.ID, nil
}

// FanOut enqueues one entry per ACTIVE circle member except the excluded
// actor and returns the number of entries created.
func (s *Service) FanOut(ctx context.Context, input FanOutInput) (int, error) {
	if err := input.Validate(); err != nil {
		return 0, err
	}

	count, err := s.entries.FanOut(ctx,
		input.CircleID, input.ExcludeUserID,
		input.Type, input.Title, input.Body, input.Data,
		s.now(),
	)
	if err != nil {
		return 0, fmt.Errorf("fan out notification: %w", err)
	}

	return count, nil
}
