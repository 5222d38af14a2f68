package sharelink

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/careloop/careloop-backend/internal/domain"
	auditsvc "github.com/careloop/careloop-backend/internal/service/audit"
)

var _ linkRepo = &linkRepoMock{}

type linkRepoMock struct {
	CreateFunc          func(ctx context.Context, link *domain.ShareLink) error
	GetByIDFunc         func(ctx context.Context, linkID uuid.UUID) (*domain.ShareLink, error)
	GetByTokenFunc      func(ctx context.Context, token string) (*domain.ShareLink, error)
	ConsumeAccessFunc   func(ctx context.Context, token string, now time.Time) (*domain.ShareLink, error)
	RevokeFunc          func(ctx context.Context, linkID uuid.UUID, revokedAt time.Time) (bool, error)
	InsertAccessLogFunc func(ctx context.Context, access domain.ShareLinkAccess) error
	ListAccessLogFunc   func(ctx context.Context, linkID uuid.UUID) ([]domain.ShareLinkAccess, error)

	calls struct {
		Create          []struct{ Link *domain.ShareLink }
		GetByID         []struct{ LinkID uuid.UUID }
		GetByToken      []struct{ Token string }
		ConsumeAccess   []struct{ Token string }
		Revoke          []struct{ LinkID uuid.UUID }
		InsertAccessLog []struct{ Access domain.ShareLinkAccess }
		ListAccessLog   []struct{ LinkID uuid.UUID }
	}
	lock sync.RWMutex
}

func (mock *linkRepoMock) Create(ctx context.Context, link *domain.ShareLink) error {
	if mock.CreateFunc == nil {
		panic("linkRepoMock.CreateFunc: method is nil but linkRepo.Create was just called")
	}
	mock.lock.Lock()
	mock.calls.Create = append(mock.calls.Create, struct{ Link *domain.ShareLink }{Link: link})
	mock.lock.Unlock()
	return mock.CreateFunc(ctx, link)
}

func (mock *linkRepoMock) CreateCalls() []struct{ Link *domain.ShareLink } {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.Create
}

func (mock *linkRepoMock) GetByID(ctx context.Context, linkID uuid.UUID) (*domain.ShareLink, error) {
	if mock.GetByIDFunc == nil {
		panic("linkRepoMock.GetByIDFunc: method is nil but linkRepo.GetByID was just called")
	}
	mock.lock.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, struct{ LinkID uuid.UUID }{LinkID: linkID})
	mock.lock.Unlock()
	return mock.GetByIDFunc(ctx, linkID)
}

func (mock *linkRepoMock) GetByIDCalls() []struct{ LinkID uuid.UUID } {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.GetByID
}

func (mock *linkRepoMock) GetByToken(ctx context.Context, token string) (*domain.ShareLink, error) {
	if mock.GetByTokenFunc == nil {
		panic("linkRepoMock.GetByTokenFunc: method is nil but linkRepo.GetByToken was just called")
	}
	mock.lock.Lock()
	mock.calls.GetByToken = append(mock.calls.GetByToken, struct{ Token string }{Token: token})
	mock.lock.Unlock()
	return mock.GetByTokenFunc(ctx, token)
}

func (mock *linkRepoMock) GetByTokenCalls() []struct{ Token string } {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.GetByToken
}

func (mock *linkRepoMock) ConsumeAccess(ctx context.Context, token string, now time.Time) (*domain.ShareLink, error) {
	if mock.ConsumeAccessFunc == nil {
		panic("linkRepoMock.ConsumeAccessFunc: method is nil but linkRepo.ConsumeAccess was just called")
	}
	mock.lock.Lock()
	mock.calls.ConsumeAccess = append(mock.calls.ConsumeAccess, struct{ Token string }{Token: token})
	mock.lock.Unlock()
	return mock.ConsumeAccessFunc(ctx, token, now)
}

func (mock *linkRepoMock) ConsumeAccessCalls() []struct{ Token string } {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.ConsumeAccess
}

func (mock *linkRepoMock) Revoke(ctx context.Context, linkID uuid.UUID, revokedAt time.Time) (bool, error) {
	if mock.RevokeFunc == nil {
		panic("linkRepoMock.RevokeFunc: method is nil but linkRepo.Revoke was just called")
	}
	mock.lock.Lock()
	mock.calls.Revoke = append(mock.calls.Revoke, struct{ LinkID uuid.UUID }{LinkID: linkID})
	mock.lock.Unlock()
	return mock.RevokeFunc(ctx, linkID, revokedAt)
}

func (mock *linkRepoMock) RevokeCalls() []struct{ LinkID uuid.UUID } {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.Revoke
}

func (mock *linkRepoMock) InsertAccessLog(ctx context.Context, access domain.ShareLinkAccess) error {
	if mock.InsertAccessLogFunc == nil {
		panic("linkRepoMock.InsertAccessLogFunc: method is nil but linkRepo.InsertAccessLog was just called")
	}
	mock.lock.Lock()
	mock.calls.InsertAccessLog = append(mock.calls.InsertAccessLog, struct{ Access domain.ShareLinkAccess }{Access: access})
	mock.lock.Unlock()
	return mock.InsertAccessLogFunc(ctx, access)
}

func (mock *linkRepoMock) InsertAccessLogCalls() []struct{ Access domain.ShareLinkAccess } {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.InsertAccessLog
}

func (mock *linkRepoMock) ListAccessLog(ctx context.Context, linkID uuid.UUID) ([]domain.ShareLinkAccess, error) {
	if mock.ListAccessLogFunc == nil {
		panic("linkRepoMock.ListAccessLogFunc: method is nil but linkRepo.ListAccessLog was just called")
	}
	mock.lock.Lock()
	mock.calls.ListAccessLog = append(mock.calls.ListAccessLog, struct{ LinkID uuid.UUID }{LinkID: linkID})
	mock.lock.Unlock()
	return mock.ListAccessLogFunc(ctx, linkID)
}

func (mock *linkRepoMock) ListAccessLogCalls() []struct{ LinkID uuid.UUID } {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.ListAccessLog
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
