package inbox

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/careloop/careloop-backend/internal/domain"
	auditsvc "github.com/careloop/careloop-backend/internal/service/audit"
	outboxsvc "github.com/careloop/careloop-backend/internal/service/outbox"
)

var _ inboxRepo = &inboxRepoMock{}

type inboxRepoMock struct {
	CreateFunc          func(ctx context.Context, item *domain.InboxItem) error
	GetByIDFunc         func(ctx context.Context, itemID uuid.UUID) (*domain.InboxItem, error)
	GetForUpdateFunc    func(ctx context.Context, itemID uuid.UUID) (*domain.InboxItem, error)
	ListByCircleFunc    func(ctx context.Context, circleID uuid.UUID, status *domain.InboxStatus, limit, offset int) ([]*domain.InboxItem, error)
	SetAssigneeFunc     func(ctx context.Context, itemID, assigneeID uuid.UUID, updatedAt time.Time) error
	MarkTriagedFunc     func(ctx context.Context, itemID uuid.UUID, status domain.InboxStatus, updatedAt time.Time) error
	InsertTriageLogFunc func(ctx context.Context, entry domain.TriageLogEntry) error
	ListTriageLogFunc   func(ctx context.Context, itemID uuid.UUID) ([]domain.TriageLogEntry, error)

	calls struct {
		Create       []struct{ Item *domain.InboxItem }
		GetByID      []struct{ ItemID uuid.UUID }
		GetForUpdate []struct{ ItemID uuid.UUID }
		ListByCircle []struct {
			CircleID uuid.UUID
			Status   *domain.InboxStatus
		}
		SetAssignee []struct {
			ItemID     uuid.UUID
			AssigneeID uuid.UUID
		}
		MarkTriaged []struct {
			ItemID uuid.UUID
			Status domain.InboxStatus
		}
		InsertTriageLog []struct{ Entry domain.TriageLogEntry }
		ListTriageLog   []struct{ ItemID uuid.UUID }
	}
	lock sync.RWMutex
}

func (mock *inboxRepoMock) Create(ctx context.Context, item *domain.InboxItem) error {
	if mock.CreateFunc == nil {
		panic("inboxRepoMock.CreateFunc: method is nil but inboxRepo.Create was just called")
	}
	mock.lock.Lock()
	mock.calls.Create = append(mock.calls.Create, struct{ Item *domain.InboxItem }{Item: item})
	mock.lock.Unlock()
	return mock.CreateFunc(ctx, item)
}

func (mock *inboxRepoMock) CreateCalls() []struct{ Item *domain.InboxItem } {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.Create
}

func (mock *inboxRepoMock) GetByID(ctx context.Context, itemID uuid.UUID) (*domain.InboxItem, error) {
	if mock.GetByIDFunc == nil {
		panic("inboxRepoMock.GetByIDFunc: method is nil but inboxRepo.GetByID was just called")
	}
	mock.lock.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, struct{ ItemID uuid.UUID }{ItemID: itemID})
	mock.lock.Unlock()
	return mock.GetByIDFunc(ctx, itemID)
}

func (mock *inboxRepoMock) GetByIDCalls() []struct{ ItemID uuid.UUID } {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.GetByID
}

func (mock *inboxRepoMock) GetForUpdate(ctx context.Context, itemID uuid.UUID) (*domain.InboxItem, error) {
	if mock.GetForUpdateFunc == nil {
		panic("inboxRepoMock.GetForUpdateFunc: method is nil but inboxRepo.GetForUpdate was just called")
	}
	mock.lock.Lock()
	mock.calls.GetForUpdate = append(mock.calls.GetForUpdate, struct{ ItemID uuid.UUID }{ItemID: itemID})
	mock.lock.Unlock()
	return mock.GetForUpdateFunc(ctx, itemID)
}

func (mock *inboxRepoMock) GetForUpdateCalls() []struct{ ItemID uuid.UUID } {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.GetForUpdate
}

func (mock *inboxRepoMock) ListByCircle(ctx context.Context, circleID uuid.UUID, status *domain.InboxStatus, limit, offset int) ([]*domain.InboxItem, error) {
	if mock.ListByCircleFunc == nil {
		panic("inboxRepoMock.ListByCircleFunc: method is nil but inboxRepo.ListByCircle was just called")
	}
	mock.lock.Lock()
	mock.calls.ListByCircle = append(mock.calls.ListByCircle, struct {
		CircleID uuid.UUID
		Status   *domain.InboxStatus
	}{CircleID: circleID, Status: status})
	mock.lock.Unlock()
	return mock.ListByCircleFunc(ctx, circleID, status, limit, offset)
}

func (mock *inboxRepoMock) ListByCircleCalls() []struct {
	CircleID uuid.UUID
	Status   *domain.InboxStatus
} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.ListByCircle
}

func (mock *inboxRepoMock) SetAssignee(ctx context.Context, itemID, assigneeID uuid.UUID, updatedAt time.Time) error {
	if mock.SetAssigneeFunc == nil {
		panic("inboxRepoMock.SetAssigneeFunc: method is nil but inboxRepo.SetAssignee was just called")
	}
	mock.lock.Lock()
	mock.calls.SetAssignee = append(mock.calls.SetAssignee, struct {
		ItemID     uuid.UUID
		AssigneeID uuid.UUID
	}{ItemID: itemID, AssigneeID: assigneeID})
	mock.lock.Unlock()
	return mock.SetAssigneeFunc(ctx, itemID, assigneeID, updatedAt)
}

func (mock *inboxRepoMock) SetAssigneeCalls() []struct {
	ItemID     uuid.UUID
	AssigneeID uuid.UUID
} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.SetAssignee
}

func (mock *inboxRepoMock) MarkTriaged(ctx context.Context, itemID uuid.UUID, status domain.InboxStatus, updatedAt time.Time) error {
	if mock.MarkTriagedFunc == nil {
		panic("inboxRepoMock.MarkTriagedFunc: method is nil but inboxRepo.MarkTriaged was just called")
	}
	mock.lock.Lock()
	mock.calls.MarkTriaged = append(mock.calls.MarkTriaged, struct {
		ItemID uuid.UUID
		Status domain.InboxStatus
	}{ItemID: itemID, Status: status})
	mock.lock.Unlock()
	return mock.MarkTriagedFunc(ctx, itemID, status, updatedAt)
}

func (mock *inboxRepoMock) MarkTriagedCalls() []struct {
	ItemID uuid.UUID
	Status domain.InboxStatus
} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.MarkTriaged
}

func (mock *inboxRepoMock) InsertTriageLog(ctx context.Context, entry domain.TriageLogEntry) error {
	if mock.InsertTriageLogFunc == nil {
		panic("inboxRepoMock.InsertTriageLogFunc: method is nil but inboxRepo.InsertTriageLog was just called")
	}
	mock.lock.Lock()
	mock.calls.InsertTriageLog = append(mock.calls.InsertTriageLog, struct{ Entry domain.TriageLogEntry }{Entry: entry})
	mock.lock.Unlock()
	return mock.InsertTriageLogFunc(ctx, entry)
}

func (mock *inboxRepoMock) InsertTriageLogCalls() []struct{ Entry domain.TriageLogEntry } {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.InsertTriageLog
}

func (mock *inboxRepoMock) ListTriageLog(ctx context.Context, itemID uuid.UUID) ([]domain.TriageLogEntry, error) {
	if mock.ListTriageLogFunc == nil {
		panic("inboxRepoMock.ListTriageLogFunc: method is nil but inboxRepo.ListTriageLog was just called")
	}
	mock.lock.Lock()
	mock.calls.ListTriageLog = append(mock.calls.ListTriageLog, struct{ ItemID uuid.UUID }{ItemID: itemID})
	mock.lock.Unlock()
	return mock.ListTriageLogFunc(ctx, itemID)
}

func (mock *inboxRepoMock) ListTriageLogCalls() []struct{ ItemID uuid.UUID } {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.ListTriageLog
}

var _ documentCreator = &documentCreatorMock{}

type documentCreatorMock struct {
	CreateFunc func(ctx context.Context, doc *domain.Document) error

	calls struct {
		Create []struct{ Doc *domain.Document }
	}
	lock sync.RWMutex
}

func (mock *documentCreatorMock) Create(ctx context.Context, doc *domain.Document) error {
	if mock.CreateFunc == nil {
		panic("documentCreatorMock.CreateFunc: method is nil but documentCreator.Create was just called")
	}
	mock.lock.Lock()
	mock.calls.Create = append(mock.calls.Create, struct{ Doc *domain.Document }{Doc: doc})
	mock.lock.Unlock()
	return mock.CreateFunc(ctx, doc)
}

func (mock *documentCreatorMock) CreateCalls() []struct{ Doc *domain.Document } {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.Create
}

var _ taskCreator = &taskCreatorMock{}

type taskCreatorMock struct {
	CreateFunc func(ctx context.Context, task *domain.Task) error

	calls struct {
		Create []struct{ Task *domain.Task }
	}
	lock sync.RWMutex
}

func (mock *taskCreatorMock) Create(ctx context.Context, task *domain.Task) error {
	if mock.CreateFunc == nil {
		panic("taskCreatorMock.CreateFunc: method is nil but taskCreator.Create was just called")
	}
	mock.lock.Lock()
	mock.calls.Create = append(mock.calls.Create, struct{ Task *domain.Task }{Task: task})
	mock.lock.Unlock()
	return mock.CreateFunc(ctx, task)
}

func (mock *taskCreatorMock) CreateCalls() []struct{ Task *domain.Task } {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.Create
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

var _ attachmentReparenter = &attachmentReparenterMock{}

type attachmentReparenterMock struct {
	ReparentAttachmentFunc func(ctx context.Context, attachmentID uuid.UUID, newParentType string, newParentID uuid.UUID) error

	calls struct {
		ReparentAttachment []struct {
			AttachmentID  uuid.UUID
			NewParentType string
			NewParentID   uuid.UUID
		}
	}
	lock sync.RWMutex
}

func (mock *attachmentReparenterMock) ReparentAttachment(ctx context.Context, attachmentID uuid.UUID, newParentType string, newParentID uuid.UUID) error {
	if mock.ReparentAttachmentFunc == nil {
		panic("attachmentReparenterMock.ReparentAttachmentFunc: method is nil but attachmentReparenter.ReparentAttachment was just called")
	}
	mock.lock.Lock()
	mock.calls.ReparentAttachment = append(mock.calls.ReparentAttachment, struct {
		AttachmentID  uuid.UUID
		NewParentType string
		NewParentID   uuid.UUID
	}{AttachmentID: attachmentID, NewParentType: newParentType, NewParentID: newParentID})
	mock.lock.Unlock()
	return mock.ReparentAttachmentFunc(ctx, attachmentID, newParentType, newParentID)
}

func (mock *attachmentReparenterMock) ReparentAttachmentCalls() []struct {
	AttachmentID  uuid.UUID
	NewParentType string
	NewParentID   uuid.UUID
} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.ReparentAttachment
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
