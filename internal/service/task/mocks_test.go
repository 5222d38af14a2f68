package task

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/careloop/careloop-backend/internal/domain"
)

var _ taskRepo = &taskRepoMock{}

type taskRepoMock struct {
	CreateFunc       func(ctx context.Context, task *domain.Task) error
	GetByIDFunc      func(ctx context.Context, taskID uuid.UUID) (*domain.Task, error)
	ListByCircleFunc func(ctx context.Context, circleID uuid.UUID, status *domain.TaskStatus, limit, offset int) ([]*domain.Task, error)
	MarkDoneFunc     func(ctx context.Context, taskID uuid.UUID, completedAt time.Time) (bool, error)

	calls struct {
		Create       []struct{ Task *domain.Task }
		GetByID      []struct{ TaskID uuid.UUID }
		ListByCircle []struct {
			CircleID uuid.UUID
			Status   *domain.TaskStatus
		}
		MarkDone []struct{ TaskID uuid.UUID }
	}
	lock sync.RWMutex
}

func (mock *taskRepoMock) Create(ctx context.Context, task *domain.Task) error {
	if mock.CreateFunc == nil {
		panic("taskRepoMock.CreateFunc: method is nil but taskRepo.Create was just called")
	}
	mock.lock.Lock()
	mock.calls.Create = append(mock.calls.Create, struct{ Task *domain.Task }{Task: task})
	mock.lock.Unlock()
	return mock.CreateFunc(ctx, task)
}

func (mock *taskRepoMock) CreateCalls() []struct{ Task *domain.Task } {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.Create
}

func (mock *taskRepoMock) GetByID(ctx context.Context, taskID uuid.UUID) (*domain.Task, error) {
	if mock.GetByIDFunc == nil {
		panic("taskRepoMock.GetByIDFunc: method is nil but taskRepo.GetByID was just called")
	}
	mock.lock.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, struct{ TaskID uuid.UUID }{TaskID: taskID})
	mock.lock.Unlock()
	return mock.GetByIDFunc(ctx, taskID)
}

func (mock *taskRepoMock) GetByIDCalls() []struct{ TaskID uuid.UUID } {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.GetByID
}

func (mock *taskRepoMock) ListByCircle(ctx context.Context, circleID uuid.UUID, status *domain.TaskStatus, limit, offset int) ([]*domain.Task, error) {
	if mock.ListByCircleFunc == nil {
		panic("taskRepoMock.ListByCircleFunc: method is nil but taskRepo.ListByCircle was just called")
	}
	mock.lock.Lock()
	mock.calls.ListByCircle = append(mock.calls.ListByCircle, struct {
		CircleID uuid.UUID
		Status   *domain.TaskStatus
	}{CircleID: circleID, Status: status})
	mock.lock.Unlock()
	return mock.ListByCircleFunc(ctx, circleID, status, limit, offset)
}

func (mock *taskRepoMock) ListByCircleCalls() []struct {
	CircleID uuid.UUID
	Status   *domain.TaskStatus
} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.ListByCircle
}

func (mock *taskRepoMock) MarkDone(ctx context.Context, taskID uuid.UUID, completedAt time.Time) (bool, error) {
	if mock.MarkDoneFunc == nil {
		panic("taskRepoMock.MarkDoneFunc: method is nil but taskRepo.MarkDone was just called")
	}
	mock.lock.Lock()
	mock.calls.MarkDone = append(mock.calls.MarkDone, struct{ TaskID uuid.UUID }{TaskID: taskID})
	mock.lock.Unlock()
	return mock.MarkDoneFunc(ctx, taskID, completedAt)
}

func (mock *taskRepoMock) MarkDoneCalls() []struct{ TaskID uuid.UUID } {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.MarkDone
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
