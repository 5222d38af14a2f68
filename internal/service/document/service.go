// Package document provides the revisioned document store: handoffs and
// binder items share one mechanism in which every committed content change
// appends an immutable revision snapshotting the content it replaced.
package document

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/careloop/careloop-backend/internal/domain"
	auditsvc "github.com/careloop/careloop-backend/internal/service/audit"
	outboxsvc "github.com/careloop/careloop-backend/internal/service/outbox"
)

type documentRepo interface {
	Create(ctx context.Context, doc *domain.Document) error
	GetByID(ctx context.Context, docID uuid.UUID) (*domain.Document, error)
	GetForUpdate(ctx context.Context, docID uuid.UUID) (*domain.Document, error)
	InsertRevision(ctx context.Context, rev domain.Revision) error
	UpdateContent(ctx context.Context, docID uuid.UUID, content map[string]any, revision int, updatedAt time.Time) error
	UpdateMeta(ctx context.Context, docID uuid.UUID, title *string, status *domain.DocumentStatus, updatedAt time.Time) error
	MarkPublished(ctx context.Context, docID uuid.UUID, publishedAt time.Time) (bool, error)
	GetRevision(ctx context.Context, docID uuid.UUID, revision int) (*domain.Revision, error)
	ListRevisions(ctx context.Context, docID uuid.UUID) ([]domain.Revision, error)
	ListByCircle(ctx context.Context, circleID uuid.UUID, kind domain.DocumentKind, limit, offset int) ([]*domain.Document, error)
}

type accessPredicate interface {
	IsMember(ctx context.Context, circleID, userID uuid.UUID) (bool, error)
	HasRole(ctx context.Context, circleID, userID uuid.UUID, minRole domain.Role) (bool, error)
}

type auditRecorder interface {
	Record(ctx context.Context, input auditsvc.RecordInput) (uuid.UUID, error)
}

type notifier interface {
	FanOut(ctx context.Context, input outboxsvc.FanOutInput) (int, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

const (
	DefaultListLimit = 50
	MaxListLimit     = 200

	objectTypeDocument = "DOCUMENT"
)

// Service provides revisioned document operations.
type Service struct {
	docs     documentRepo
	access   accessPredicate
	audit    auditRecorder
	notifier notifier
	tx       txManager
	now      func() time.Time
	log      *slog.Logger
}

// NewService creates a new Document service.
func NewService(
	log *slog.Logger,
	docs documentRepo,
	access accessPredicate,
	audit auditRecorder,
	notifier notifier,
	tx txManager,
) *Service {
	return &Service{
		docs:     docs,
		access:   access,
		audit:    audit,
		notifier: notifier,
		tx:       tx,
		now:      func() time.Time { return time.Now().UTC() },
		log:      log.With("service", "document"),
	}
}
