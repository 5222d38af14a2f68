// Package inbox provides quick capture and one-shot triage: every captured
// item is routed exactly once to a handoff draft, a task, a binder item, or
// the archive, and the decision is recorded in an immutable triage log.
package inbox

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/careloop/careloop-backend/internal/domain"
	auditsvc "github.com/careloop/careloop-backend/internal/service/audit"
	outboxsvc "github.com/careloop/careloop-backend/internal/service/outbox"
)

type inboxRepo interface {
	Create(ctx context.Context, item *domain.InboxItem) error
	GetByID(ctx context.Context, itemID uuid.UUID) (*domain.InboxItem, error)
	GetForUpdate(ctx context.Context, itemID uuid.UUID) (*domain.InboxItem, error)
	ListByCircle(ctx context.Context, circleID uuid.UUID, status *domain.InboxStatus, limit, offset int) ([]*domain.InboxItem, error)
	SetAssignee(ctx context.Context, itemID, assigneeID uuid.UUID, updatedAt time.Time) error
	MarkTriaged(ctx context.Context, itemID uuid.UUID, status domain.InboxStatus, updatedAt time.Time) error
	InsertTriageLog(ctx context.Context, entry domain.TriageLogEntry) error
	ListTriageLog(ctx context.Context, itemID uuid.UUID) ([]domain.TriageLogEntry, error)
}

type documentCreator interface {
	Create(ctx context.Context, doc *domain.Document) error
}

type taskCreator interface {
	Create(ctx context.Context, task *domain.Task) error
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

// attachmentReparenter moves a stored attachment under the entity a triage
// decision created. The attachment store lives outside this core.
type attachmentReparenter interface {
	ReparentAttachment(ctx context.Context, attachmentID uuid.UUID, newParentType string, newParentID uuid.UUID) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

const (
	DefaultListLimit = 50
	MaxListLimit     = 200

	objectTypeInboxItem = "INBOX_ITEM"

	parentTypeDocument = "DOCUMENT"
)

// Service provides inbox capture and triage operations.
type Service struct {
	items       inboxRepo
	docs        documentCreator
	tasks       taskCreator
	access      accessPredicate
	audit       auditRecorder
	notifier    notifier
	attachments attachmentReparenter
	tx          txManager
	now         func() time.Time
	log         *slog.Logger
}

// NewService creates a new Inbox service.
func NewService(
	log *slog.Logger,
	items inboxRepo,
	docs documentCreator,
	tasks taskCreator,
	access accessPredicate,
	audit auditRecorder,
	notifier notifier,
	attachments attachmentReparenter,
	tx txManager,
) *Service {
	return &Service{
		items:       items,
		docs:        docs,
		tasks:       tasks,
		access:      access,
		audit:       audit,
		notifier:    notifier,
		attachments: attachments,
		tx:          tx,
		now:         func() time.Time { return time.Now().UTC() },
		log:         log.With("service", "inbox"),
	}
}
