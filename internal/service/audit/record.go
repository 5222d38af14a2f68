package audit

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/careloop/careloop-backend/internal/domain"
)

// Record appends one audit event and returns its id. Callers invoke Record
// inside the transaction of the mutation being described, so the event and
// the mutation commit or roll back together.
func (s *Service) Record(ctx context.Context, input RecordInput) (uuid.UUID, error) {
	if err := input.Validate(); err != nil {
		return uuid.Nil, err
	}

	event := domain.AuditEvent{
		ID:         uuid.New(),
		CircleID:   input.CircleID,
		ActorID:    input.ActorID,
		EventType:  input.EventType,
		ObjectType: input.ObjectType,
		ObjectID:   input.ObjectID,
		Metadata:   input.Metadata,
		CreatedAt:  s.now(),
	}

	if err := s.events.Append(ctx, event); err != nil {
		return uuid.Nil, fmt.Errorf("append audit event: %w", err)
	}

	return event.ID, nil
}
