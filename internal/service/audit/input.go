package audit

import (
	"time"

	"github.com/google/uuid"

	"github.com/careloop/careloop-backend/internal/domain"
)

// RecordInput holds the parameters for appending an audit event.
type RecordInput struct {
	CircleID   uuid.UUID
	ActorID    uuid.UUID
	EventType  string
	ObjectType string
	ObjectID   *uuid.UUID
	Metadata   map[string]any
}

// Validate checks all fields and collects all errors.
func (i RecordInput) Validate() error {
	var errs []domain.FieldError

	if i.CircleID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "circle_id", Message: "required"})
	}
	if i.ActorID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "actor_id", Message: "required"})
	}
	if i.EventType == "" {
		errs = append(errs, domain.FieldError{Field: "event_type", Message: "required"})
	}
	if i.ObjectType == "" {
		errs = append(errs, domain.FieldError{Field: "object_type", Message: "required"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ListInput holds the parameters for listing audit events.
type ListInput struct {
	CircleID  uuid.UUID
	ActorID   *uuid.UUID
	EventType *string
	Since     *time.Time
	Until     *time.Time
	Limit     int
	Offset    int
}

// Validate checks all fields and collects all errors.
func (i ListInput) Validate() error {
	var errs []domain.FieldError

	if i.CircleID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "circle_id", Message: "required"})
	}
	if i.Since != nil && i.Until != nil && !i.Since.Before(*i.Until) {
		errs = append(errs, domain.FieldError{Field: "since", Message: "must be before until"})
	}
	if i.Limit < 0 {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "must not be negative"})
	}
	if i.Offset < 0 {
		errs = append(errs, domain.FieldError{Field: "offset", Message: "must not be negative"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
