package audit

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/careloop/careloop-backend/internal/domain"
)

var _ auditRepo = &auditRepoMock{}

type auditRepoMock struct {
	AppendFunc func(ctx context.Context, event domain.AuditEvent) error
	ListFunc   func(ctx context.Context, filter domain.AuditFilter) ([]domain.AuditEvent, error)

	calls struct {
		Append []struct {
			Event domain.AuditEvent
		}
		List []struct {
			Filter domain.AuditFilter
		}
	}
	lockAppend sync.RWMutex
	lockList   sync.RWMutex
}

func (mock *auditRepoMock) Append(ctx context.Context, event domain.AuditEvent) error {
	if mock.AppendFunc == nil {
		panic("auditRepoMock.AppendFunc: method is nil but auditRepo.Append was just called")
	}
	callInfo := struct {
		Event domain.AuditEvent
	}{Event: event}
	mock.lockAppend.Lock()
	mock.calls.Append = append(mock.calls.Append, callInfo)
	mock.lockAppend.Unlock()
	return mock.AppendFunc(ctx, event)
}

func (mock *auditRepoMock) AppendCalls() []struct {
	Event domain.AuditEvent
} {
	mock.lockAppend.RLock()
	calls := mock.calls.Append
	mock.lockAppend.RUnlock()
	return calls
}

func (mock *auditRepoMock) List(ctx context.Context, filter domain.AuditFilter) ([]domain.AuditEvent, error) {
	if mock.ListFunc == nil {
		panic("auditRepoMock.ListFunc: method is nil but auditRepo.List was just called")
	}
	callInfo := struct {
		Filter domain.AuditFilter
	}{Filter: filter}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.lockList.Unlock()
	return mock.ListFunc(ctx, filter)
}

func (mock *auditRepoMock) ListCalls() []struct {
	Filter domain.AuditFilter
} {
	mock.lockList.RLock()
	calls := mock.calls.List
	mock.lockList.RUnlock()
	return calls
}

var _ accessPredicate = &accessPredicateMock{}

type accessPredicateMock struct {
	HasRoleFunc func(ctx context.Context, circleID, userID uuid.UUID, minRole domain.Role) (bool, error)

	calls struct {
		HasRole []struct {
			CircleID uuid.UUID
			UserID   uuid.UUID
			MinRole  domain.Role
		}
	}
	lockHasRole sync.RWMutex
}

func (mock *accessPredicateMock) HasRole(ctx context.Context, circleID, userID uuid.UUID, minRole domain.Role) (bool, error) {
	if mock.HasRoleFunc == nil {
		panic("accessPredicateMock.HasRoleFunc: method is nil but accessPredicate.HasRole was just called")
	}
	callInfo := struct {
		CircleID uuid.UUID
		UserID   uuid.UUID
		MinRole  domain.Role
	}{CircleID: circleID, UserID: userID, MinRole: minRole}
	mock.lockHasRole.Lock()
	mock.calls.HasRole = append(mock.calls.HasRole, callInfo)
	mock.lockHasRole.Unlock()
	return mock.HasRoleFunc(ctx, circleID, userID, minRole)
}

func (mock *accessPredicateMock) HasRoleCalls() []struct {
	CircleID uuid.UUID
	UserID   uuid.UUID
	MinRole  domain.Role
} {
	mock.lockHasRole.RLock()
	calls := mock.calls.HasRole
	mock.lockHasRole.RUnlock()
	return calls
}
