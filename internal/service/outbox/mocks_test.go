package outbox

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/careloop/careloop-backend/internal/domain"
)

var _ outboxRepo = &outboxRepoMock{}

type outboxRepoMock struct {
	EnqueueFunc       func(ctx context.Context, entry *domain.OutboxEntry) error
	FanOutFunc        func(ctx context.Context, circleID, excludeUserID uuid.UUID, notifType, title, body string, data map[string]any, createdAt time.Time) (int, error)
	ClaimPendingFunc  func(ctx context.Context, limit int) ([]*domain.OutboxEntry, error)
	MarkSentFunc      func(ctx context.Context, entryID uuid.UUID, attemptedAt time.Time) error
	MarkFailedFunc    func(ctx context.Context, entryID uuid.UUID, attemptedAt time.Time, deliveryErr string) error
	PurgeResolvedFunc func(ctx context.Context, cutoff time.Time) (int, error)

	calls struct {
		Enqueue []struct {
			Entry *domain.OutboxEntry
		}
		FanOut []struct {
			CircleID      uuid.UUID
			ExcludeUserID uuid.UUID
			Type          string
		}
		ClaimPending []struct {
			Limit int
		}
		MarkSent []struct {
			EntryID uuid.UUID
		}
		MarkFailed []struct {
			EntryID     uuid.UUID
			DeliveryErr string
		}
		PurgeResolved []struct {
			Cutoff time.Time
		}
	}
	lock sync.RWMutex
}

func (mock *outboxRepoMock) Enqueue(ctx context.Context, entry *domain.OutboxEntry) error {
	if mock.EnqueueFunc == nil {
		panic("outboxRepoMock.EnqueueFunc: method is nil but outboxRepo.Enqueue was just called")
	}
	mock.lock.Lock()
	mock.calls.Enqueue = append(mock.calls.Enqueue, struct {
		Entry *domain.OutboxEntry
	}{Entry: entry})
	mock.lock.Unlock()
	return mock.EnqueueFunc(ctx, entry)
}

func (mock *outboxRepoMock) EnqueueCalls() []struct {
	Entry *domain.OutboxEntry
} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.Enqueue
}

func (mock *outboxRepoMock) FanOut(ctx context.Context, circleID, excludeUserID uuid.UUID, notifType, title, body string, data map[string]any, createdAt time.Time) (int, error) {
	if mock.FanOutFunc == nil {
		panic("outboxRepoMock.FanOutFunc: method is nil but outboxRepo.FanOut was just called")
	}
	mock.lock.Lock()
	mock.calls.FanOut = append(mock.calls.FanOut, struct {
		CircleID      uuid.UUID
		ExcludeUserID uuid.UUID
		Type          string
	}{CircleID: circleID, ExcludeUserID: excludeUserID, Type: notifType})
	mock.lock.Unlock()
	return mock.FanOutFunc(ctx, circleID, excludeUserID, notifType, title, body, data, createdAt)
}

func (mock *outboxRepoMock) FanOutCalls() []struct {
	CircleID      uuid.UUID
	ExcludeUserID uuid.UUID
	Type          string
} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.FanOut
}

func (mock *outboxRepoMock) ClaimPending(ctx context.Context, limit int) ([]*domain.OutboxEntry, error) {
	if mock.ClaimPendingFunc == nil {
		panic("outboxRepoMock.ClaimPendingFunc: method is nil but outboxRepo.ClaimPending was just called")
	}
	mock.lock.Lock()
	mock.calls.ClaimPending = append(mock.calls.ClaimPending, struct {
		Limit int
	}{Limit: limit})
	mock.lock.Unlock()
	return mock.ClaimPendingFunc(ctx, limit)
}

func (mock *outboxRepoMock) ClaimPendingCalls() []struct {
	Limit int
} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.ClaimPending
}

func (mock *outboxRepoMock) MarkSent(ctx context.Context, entryID uuid.UUID, attemptedAt time.Time) error {
	if mock.MarkSentFunc == nil {
		panic("outboxRepoMock.MarkSentFunc: method is nil but outboxRepo.MarkSent was just called")
	}
	mock.lock.Lock()
	mock.calls.MarkSent = append(mock.calls.MarkSent, struct {
		EntryID uuid.UUID
	}{EntryID: entryID})
	mock.lock.Unlock()
	return mock.MarkSentFunc(ctx, entryID, attemptedAt)
}

func (mock *outboxRepoMock) MarkSentCalls() []struct {
	EntryID uuid.UUID
} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.MarkSent
}

func (mock *outboxRepoMock) MarkFailed(ctx context.Context, entryID uuid.UUID, attemptedAt time.Time, deliveryErr string) error {
	if mock.MarkFailedFunc == nil {
		panic("outboxRepoMock.MarkFailedFunc: method is nil but outboxRepo.MarkFailed was just called")
	}
	mock.lock.Lock()
	mock.calls.MarkFailed = append(mock.calls.MarkFailed, struct {
		EntryID     uuid.UUID
		DeliveryErr string
	}{EntryID: entryID, DeliveryErr: deliveryErr})
	mock.lock.Unlock()
	return mock.MarkFailedFunc(ctx, entryID, attemptedAt, deliveryErr)
}

func (mock *outboxRepoMock) MarkFailedCalls() []struct {
	EntryID     uuid.UUID
	DeliveryErr string
} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.MarkFailed
}

func (mock *outboxRepoMock) PurgeResolved(ctx context.Context, cutoff time.Time) (int, error) {
	if mock.PurgeResolvedFunc == nil {
		panic("outboxRepoMock.PurgeResolvedFunc: method is nil but outboxRepo.PurgeResolved was just called")
	}
	mock.lock.Lock()
	mock.calls.PurgeResolved = append(mock.calls.PurgeResolved, struct {
		Cutoff time.Time
	}{Cutoff: cutoff})
	mock.lock.Unlock()
	return mock.PurgeResolvedFunc(ctx, cutoff)
}

func (mock *outboxRepoMock) PurgeResolvedCalls() []struct {
	Cutoff time.Time
} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.PurgeResolved
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
