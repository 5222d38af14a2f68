package document

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/careloop/careloop-backend/internal/domain"
	auditsvc "github.com/careloop/careloop-backend/internal/service/audit"
	outboxsvc "github.com/careloop/careloop-backend/internal/service/outbox"
)

var _ documentRepo = &documentRepoMock{}

type documentRepoMock struct {
	CreateFunc         func(ctx context.Context, doc *domain.Document) error
	GetByIDFunc        func(ctx context.Context, docID uuid.UUID) (*domain.Document, error)
	GetForUpdateFunc   func(ctx context.Context, docID uuid.UUID) (*domain.Document, error)
	InsertRevisionFunc func(ctx context.Context, rev domain.Revision) error
	UpdateContentFunc  func(ctx context.Context, docID uuid.UUID, content map[string]any, revision int, updatedAt time.Time) error
	UpdateMetaFunc     func(ctx context.Context, docID uuid.UUID, title *string, status *domain.DocumentStatus, updatedAt time.Time) error
	MarkPublishedFunc  func(ctx context.Context, docID uuid.UUID, publishedAt time.Time) (bool, error)
	GetRevisionFunc    func(ctx context.Context, docID uuid.UUID, revision int) (*domain.Revision, error)
	ListRevisionsFunc  func(ctx context.Context, docID uuid.UUID) ([]domain.Revision, error)
	ListByCircleFunc   func(ctx context.Context, circleID uuid.UUID, kind domain.DocumentKind, limit, offset int) ([]*domain.Document, error)

	calls struct {
		Create         []struct{ Doc *domain.Document }
		GetByID        []struct{ DocID uuid.UUID }
		GetForUpdate   []struct{ DocID uuid.UUID }
		InsertRevision []struct{ Rev domain.Revision }
		UpdateContent  []struct {
			DocID    uuid.UUID
			Content  map[string]any
			Revision int
		}
		UpdateMeta []struct {
			DocID  uuid.UUID
			Title  *string
			Status *domain.DocumentStatus
		}
		MarkPublished []struct{ DocID uuid.UUID }
		GetRevision   []struct {
			DocID    uuid.UUID
			Revision int
		}
		ListRevisions []struct{ DocID uuid.UUID }
		ListByCircle  []struct {
			CircleID uuid.UUID
			Kind     domain.DocumentKind
		}
	}
	lock sync.RWMutex
}

func (mock *documentRepoMock) Create(ctx context.Context, doc *domain.Document) error {
	if mock.CreateFunc == nil {
		panic("documentRepoMock.CreateFunc: method is nil but documentRepo.Create was just called")
	}
	mock.lock.Lock()
	mock.calls.Create = append(mock.calls.Create, struct{ Doc *domain.Document }{Doc: doc})
	mock.lock.Unlock()
	return mock.CreateFunc(ctx, doc)
}

func (mock *documentRepoMock) CreateCalls() []struct{ Doc *domain.Document } {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.Create
}

func (mock *documentRepoMock) GetByID(ctx context.Context, docID uuid.UUID) (*domain.Document, error) {
	if mock.GetByIDFunc == nil {
		panic("documentRepoMock.GetByIDFunc: method is nil but documentRepo.GetByID was just called")
	}
	mock.lock.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, struct{ DocID uuid.UUID }{DocID: docID})
	mock.lock.Unlock()
	return mock.GetByIDFunc(ctx, docID)
}

func (mock *documentRepoMock) GetByIDCalls() []struct{ DocID uuid.UUID } {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.GetByID
}

func (mock *documentRepoMock) GetForUpdate(ctx context.Context, docID uuid.UUID) (*domain.Document, error) {
	if mock.GetForUpdateFunc == nil {
		panic("documentRepoMock.GetForUpdateFunc: method is nil but documentRepo.GetForUpdate was just called")
	}
	mock.lock.Lock()
	mock.calls.GetForUpdate = append(mock.calls.GetForUpdate, struct{ DocID uuid.UUID }{DocID: docID})
	mock.lock.Unlock()
	return mock.GetForUpdateFunc(ctx, docID)
}

func (mock *documentRepoMock) GetForUpdateCalls() []struct{ DocID uuid.UUID } {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.GetForUpdate
}

func (mock *documentRepoMock) InsertRevision(ctx context.Context, rev domain.Revision) error {
	if mock.InsertRevisionFunc == nil {
		panic("documentRepoMock.InsertRevisionFunc: method is nil but documentRepo.InsertRevision was just called")
	}
	mock.lock.Lock()
	mock.calls.InsertRevision = append(mock.calls.InsertRevision, struct{ Rev domain.Revision }{Rev: rev})
	mock.lock.Unlock()
	return mock.InsertRevisionFunc(ctx, rev)
}

func (mock *documentRepoMock) InsertRevisionCalls() []struct{ Rev domain.Revision } {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.InsertRevision
}

func (mock *documentRepoMock) UpdateContent(ctx context.Context, docID uuid.UUID, content map[string]any, revision int, updatedAt time.Time) error {
	if mock.UpdateContentFunc == nil {
		panic("documentRepoMock.UpdateContentFunc: method is nil but documentRepo.UpdateContent was just called")
	}
	mock.lock.Lock()
	mock.calls.UpdateContent = append(mock.calls.UpdateContent, struct {
		DocID    uuid.UUID
		Content  map[string]any
		Revision int
	}{DocID: docID, Content: content, Revision: revision})
	mock.lock.Unlock()
	return mock.UpdateContentFunc(ctx, docID, content, revision, updatedAt)
}

func (mock *documentRepoMock) UpdateContentCalls() []struct {
	DocID    uuid.UUID
	Content  map[string]any
	Revision int
} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.UpdateContent
}

func (mock *documentRepoMock) UpdateMeta(ctx context.Context, docID uuid.UUID, title *string, status *domain.DocumentStatus, updatedAt time.Time) error {
	if mock.UpdateMetaFunc == nil {
		panic("documentRepoMock.UpdateMetaFunc: method is nil but documentRepo.UpdateMeta was just called")
	}
	mock.lock.Lock()
	mock.calls.UpdateMeta = append(mock.calls.UpdateMeta, struct {
		DocID  uuid.UUID
		Title  *string
		Status *domain.DocumentStatus
	}{DocID: docID, Title: title, Status: status})
	mock.lock.Unlock()
	return mock.UpdateMetaFunc(ctx, docID, title, status, updatedAt)
}

func (mock *documentRepoMock) UpdateMetaCalls() []struct {
	DocID  uuid.UUID
	Title  *string
	Status *domain.DocumentStatus
} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.UpdateMeta
}

func (mock *documentRepoMock) MarkPublished(ctx context.Context, docID uuid.UUID, publishedAt time.Time) (bool, error) {
	if mock.MarkPublishedFunc == nil {
		panic("documentRepoMock.MarkPublishedFunc: method is nil but documentRepo.MarkPublished was just called")
	}
	mock.lock.Lock()
	mock.calls.MarkPublished = append(mock.calls.MarkPublished, struct{ DocID uuid.UUID }{DocID: docID})
	mock.lock.Unlock()
	return mock.MarkPublishedFunc(ctx, docID, publishedAt)
}

func (mock *documentRepoMock) MarkPublishedCalls() []struct{ DocID uuid.UUID } {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.MarkPublished
}

func (mock *documentRepoMock) GetRevision(ctx context.Context, docID uuid.UUID, revision int) (*domain.Revision, error) {
	if mock.GetRevisionFunc == nil {
		panic("documentRepoMock.GetRevisionFunc: method is nil but documentRepo.GetRevision was just called")
	}
	mock.lock.Lock()
	mock.calls.GetRevision = append(mock.calls.GetRevision, struct {
		DocID    uuid.UUID
		Revision int
	}{DocID: docID, Revision: revision})
	mock.lock.Unlock()
	return mock.GetRevisionFunc(ctx, docID, revision)
}

func (mock *documentRepoMock) GetRevisionCalls() []struct {
	DocID    uuid.UUID
	Revision int
} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.GetRevision
}

func (mock *documentRepoMock) ListRevisions(ctx context.Context, docID uuid.UUID) ([]domain.Revision, error) {
	if mock.ListRevisionsFunc == nil {
		panic("documentRepoMock.ListRevisionsFunc: method is nil but documentRepo.ListRevisions was just called")
	}
	mock.lock.Lock()
	mock.calls.ListRevisions = append(mock.calls.ListRevisions, struct{ DocID uuid.UUID }{DocID: docID})
	mock.lock.Unlock()
	return mock.ListRevisionsFunc(ctx, docID)
}

func (mock *documentRepoMock) ListRevisionsCalls() []struct{ DocID uuid.UUID } {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.ListRevisions
}

func (mock *documentRepoMock) ListByCircle(ctx context.Context, circleID uuid.UUID, kind domain.DocumentKind, limit, offset int) ([]*domain.Document, error) {
	if mock.ListByCircleFunc == nil {
		panic("documentRepoMock.ListByCircleFunc: method is nil but documentRepo.ListByCircle was just called")
	}
	mock.lock.Lock()
	mock.calls.ListByCircle = append(mock.calls.ListByCircle, struct {
		CircleID uuid.UUID
		Kind     domain.DocumentKind
	}{CircleID: circleID, Kind: kind})
	mock.lock.Unlock()
	return mock.ListByCircleFunc(ctx, circleID, kind, limit, offset)
}

func (mock *documentRepoMock) ListByCircleCalls() []struct {
	CircleID uuid.UUID
	Kind     domain.DocumentKind
} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.ListByCircle
}

var _ accessPredicate = &accessPredicateMock{}

type accessPredicateMock struct {
	IsMemberFunc func(ctx context.Context, circleID, userID uuid.UUID) (bool, error)
	HasRoleFunc  func(ctx context.Context, circleID, userID uuid.UUID, minRole domain.Role) (bool, error)
}

func (mock *accessPredicateMock) IsMember(ctx context.Context, circleID, userID uuid.UUID) (bool, error) {
	if mock.IsMemberFunc == nil {
		panic("accessPredicateMock.IsMemberFunc: method is nil but accessPredicate.IsMember was just called")
	}
	return mock.IsMemberFunc(ctx, circleID, userID)
}

func (mock *accessPredicateMock) HasRole(ctx context.Context, circleID, userID uuid.UUID, minRole domain.Role) (bool, error) {
	if mock.HasRoleFunc == nil {
		panic("accessPredicateMock.HasRoleFunc: method is nil but accessPredicate.HasRole was just called")
	}
	return mock.HasRoleFunc(ctx, circleID, userID, minRole)
}

var _ auditRecorder = &auditRecorderMock{}

type auditRecorderMock struct {
	RecordFunc func(ctx context.Context, input auditsvc.RecordInput) (uuid.UUID, error)

	calls struct {
		Record []struct{ Input auditsvc.RecordInput }
	}
	lock sync.RWMutex
}

func (mock *auditRecorderMock) Record(ctx context.Context, input auditsvc.RecordInput) (uuid.UUID, error) {
	if mock.RecordFunc == nil {
		panic("auditRecorderMock.RecordFunc: method is nil but auditRecorder.Record was just called")
	}
	mock.lock.Lock()
	mock.calls.Record = append(mock.calls.Record, struct{ Input auditsvc.RecordInput }{Input: input})
	mock.lock.Unlock()
	return mock.RecordFunc(ctx, input)
}

func (mock *auditRecorderMock) RecordCalls() []struct{ Input auditsvc.RecordInput } {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.Record
}

var _ notifier = &notifierMock{}

type notifierMock struct {
	FanOutFunc func(ctx context.Context, input outboxsvc.FanOutInput) (int, error)

	calls struct {
		FanOut []struct{ Input outboxsvc.FanOutInput }
	}
	lock sync.RWMutex
}

func (mock *notifierMock) FanOut(ctx context.Context, input outboxsvc.FanOutInput) (int, error) {
	if mock.FanOutFunc == nil {
		panic("notifierMock.FanOutFunc: method is nil but notifier.FanOut was just called")
	}
	mock.lock.Lock()
	mock.calls.FanOut = append(mock.calls.FanOut, struct{ Input outboxsvc.FanOutInput }{Input: input})
	mock.lock.Unlock()
	return mock.FanOutFunc(ctx, input)
}

func (mock *notifierMock) FanOutCalls() []struct{ Input outboxsvc.FanOutInput } {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.FanOut
}

var _ txManager = &txManagerMock{}

type txManagerMock struct {
	RunInTxFunc func(ctx context.Context, fn func(ctx context.Context) error) error
}

func (mock *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if mock.RunInTxFunc == nil {
		panic("txManagerMock.RunInTxFunc: method is nil but txManager.RunInTx was just called")
	}
	return mock.RunInTxFunc(ctx, fn)
}
