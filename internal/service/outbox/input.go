package outbox

import (
	"strings"

	"github.com/google/uuid"

	"github.com/careloop/careloop-backend/internal/domain"
)

// EnqueueInput holds the parameters for enqueueing one notification.
type EnqueueInput struct {
	UserID   uuid.UUID
	CircleID uuid.UUID
	Type     string
	Title    string
	Body     string
	Data     map[string]any
}

// Validate checks all fields and collects all errors.
func (i EnqueueInput) Validate() error {
	var errs []domain.FieldError

	if i.UserID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "user_id", Message: "required"})
	}
	if i.CircleID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "circle_id", Message: "required"})
	}
	if strings.TrimSpace(i.Type) == "" {
		errs = append(errs, domain.FieldError{Field: "type", Message: "required"})
	}
	if strings.TrimSpace(i.Title) == "" {
		errs = append(errs, domain.FieldError{Field: "title", Message: "required"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// FanOutInput holds the parameters for circle-wide notification fan-out.
type FanOutInput struct {
	CircleID      uuid.UUID
	ExcludeUserID uuid.UUID
	Type          string
	Title         string
	Body          string
	Data          map[string]any
}

// Validate checks all fields and collects all errors.
func (i FanOutInput) Validate() error {
	var errs []domain.FieldError

	if i.CircleID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "circle_id", Message: "required"})
	}
	if i.ExcludeUserID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "exclude_user_id", Message: "required"})
	}
	if strings.TrimSpace(i.Type) == "" {
		errs = append(errs, domain.FieldError{Field: "type", Message: "required"})
	}
	if strings.TrimSpace(i.Title) == "" {
		errs = append(errs, domain.FieldError{Field: "title", Message: "required"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
