package sharelink

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/careloop/careloop-backend/internal/domain"
)

// IssueInput holds the parameters for issuing a share link. A zero TTL means
// DefaultTTL; MaxAccessCount nil means unlimited resolutions until expiry.
type IssueInput struct {
	CircleID       uuid.UUID
	ObjectType     string
	ObjectID       uuid.UUID
	TTL            time.Duration
	MaxAccessCount *int
}

// Validate checks all fields and collects all errors.
func (i IssueInput) Validate() error {
	var errs []domain.FieldError

	if i.CircleID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "circle_id", Message: "required"})
	}
	if strings.TrimSpace(i.ObjectType) == "" {
		errs = append(errs, domain.FieldError{Field: "object_type", Message: "required"})
	}
	if i.ObjectID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "object_id", Message: "required"})
	}
	if i.TTL < 0 {
		errs = append(errs, domain.FieldError{Field: "ttl", Message: "must not be negative"})
	}
	if i.TTL > MaxTTL {
		errs = append(errs, domain.FieldError{Field: "ttl", Message: "too far in the future"})
	}
	if i.MaxAccessCount != nil && *i.MaxAccessCount < 1 {
		errs = append(errs, domain.FieldError{Field: "max_access_count", Message: "must be positive"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ResolveInput holds the parameters for resolving a share token. The
// requester fields feed the access-log fingerprint and are never stored raw.
type ResolveInput struct {
	Token              string
	RequesterIP        string
	RequesterUserAgent string
}

// Validate checks all fields and collects all errors.
func (i ResolveInput) Validate() error {
	if strings.TrimSpace(i.Token) == "" {
		return domain.NewValidationError("token", "required")
	}
	return nil
}
