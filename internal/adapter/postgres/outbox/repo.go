// Package outbox implements the notification outbox using PostgreSQL.
// Producers insert PENDING rows; the delivery worker claims and resolves
// them; a retention sweep purges resolved rows past a cutoff.
package outbox

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/careloop/careloop-backend/internal/adapter/postgres"
	"github.com/careloop/careloop-backend/internal/domain"
)

// Repo provides notification outbox persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new outbox repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const outboxColumns = `id, user_id, circle_id, type, title, body, data, status,
	attempts, last_attempt_at, last_error, created_at`

const enqueueSQL = `INSERT INTO notification_outbox
	(id, user_id, circle_id, type, title, body, data, status, attempts, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, 'PENDING', 0, $8)`

// Enqueue inserts one PENDING entry.
func (r *Repo) Enqueue(ctx context.Context, entry *domain.OutboxEntry) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	dataJSON, err := json.Marshal(entry.Data)
	if err != nil {
		return fmt.Errorf("outbox marshal data: %w", err)
	}

	_, err = querier.Exec(ctx, enqueueSQL,
		entry.ID, entry.UserID, entry.CircleID, entry.Type, entry.Title, entry.Body,
		dataJSON, entry.CreatedAt,
	)
	if err != nil {
		return mapError(err, entry.ID)
	}

	return nil
}

const fanOutSQL = `INSERT INTO notification_outbox
	(id, user_id, circle_id, type, title, body, data, status, attempts, created_at)
	SELECT gen_random_uuid(), cm.user_id, cm.circle_id, $3, $4, $5, $6, 'PENDING', 0, $7
	FROM circle_members cm
	WHERE cm.circle_id = $1 AND cm.status = 'ACTIVE' AND cm.user_id <> $2`

// FanOut enqueues one entry per ACTIVE circle member except the excluded
// actor, in a single statement. Returns the number of entries created.
func (r *Repo) FanOut(ctx context.Context, circleID, excludeUserID uuid.UUID, notifType, title, body string, data map[string]any, createdAt time.Time) (int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	dataJSON, err := json.Marshal(data)
	if err != nil {
		return 0, fmt.Errorf("outbox marshal data: %w", err)
	}

	tag, err := querier.Exec(ctx, fanOutSQL,
		circleID, excludeUserID, notifType, title, body, dataJSON, createdAt,
	)
	if err != nil {
		return 0, mapError(err, circleID)
	}

	return int(tag.RowsAffected()), nil
}

const getEntrySQL = `SELECT ` + outboxColumns + ` FROM notification_outbox WHERE id = $1`

// GetByID returns an outbox entry by primary key.
func (r *Repo) GetByID(ctx context.Context, entryID uuid.UUID) (*domain.OutboxEntry, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	entry, err := scanEntry(querier.QueryRow(ctx, getEntrySQL, entryID))
	if err != nil {
		return nil, mapError(err, entryID)
	}

	return entry, nil
}

const claimPendingSQL = `SELECT ` + outboxColumns + `
	FROM notification_outbox
	WHERE status = 'PENDING'
	ORDER BY created_at
	LIMIT $1
	FOR UPDATE SKIP LOCKED`

// ClaimPending returns up to limit PENDING entries, oldest first, locking the
// rows so concurrent worker instances never claim the same entry. Only
// meaningful inside a transaction.
func (r *Repo) ClaimPending(ctx context.Context, limit int) ([]*domain.OutboxEntry, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, claimPendingSQL, limit)
	if err != nil {
		return nil, fmt.Errorf("claim pending outbox entries: %w", err)
	}
	defer rows.Close()

	var entries []*domain.OutboxEntry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan outbox entry: %w", err)
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

const markSentSQL = `UPDATE notification_outbox
	SET status = 'SENT', attempts = attempts + 1, last_attempt_at = $2, last_error = NULL
	WHERE id = $1 AND status = 'PENDING'`

// MarkSent resolves a PENDING entry as delivered.
func (r *Repo) MarkSent(ctx context.Context, entryID uuid.UUID, attemptedAt time.Time) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, markSentSQL, entryID, attemptedAt)
	if err != nil {
		return mapError(err, entryID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("outbox entry %s: %w", entryID, domain.ErrNotFound)
	}

	return nil
}

const markFailedSQL = `UPDATE notification_outbox
	SET status = 'FAILED', attempts = attempts + 1, last_attempt_at = $2, last_error = $3
	WHERE id = $1 AND status = 'PENDING'`

// MarkFailed resolves a PENDING entry as undeliverable, recording the error.
func (r *Repo) MarkFailed(ctx context.Context, entryID uuid.UUID, attemptedAt time.Time, deliveryErr string) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, markFailedSQL, entryID, attemptedAt, deliveryErr)
	if err != nil {
		return mapError(err, entryID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("outbox entry %s: %w", entryID, domain.ErrNotFound)
	}

	return nil
}

const purgeResolvedSQL = `DELETE FROM notification_outbox
	WHERE status IN ('SENT', 'FAILED') AND created_at < $1`

// PurgeResolved deletes SENT and FAILED entries created before the cutoff.
// PENDING entries are never purged regardless of age: a stuck PENDING row
// means the delivery worker is unhealthy, not that the row is garbage.
func (r *Repo) PurgeResolved(ctx context.Context, cutoff time.Time) (int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, purgeResolvedSQL, cutoff)
	if err != nil {
		return 0, fmt.Errorf("purge resolved outbox entries: %w", err)
	}

	return int(tag.RowsAffected()), nil
}

// mapError converts pgx/pgconn errors into domain errors.
func mapError(err error, id uuid.UUID) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("outbox entry %s: %w", id, err)
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("outbox entry %s: %w", id, domain.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return fmt.Errorf("outbox entry %s: %w", id, domain.ErrAlreadyExists)
		case "23503":
			return fmt.Errorf("outbox entry %s: %w", id, domain.ErrNotFound)
		case "23514":
			return fmt.Errorf("outbox entry %s: %w", id, domain.ErrValidation)
		case "40001", "40P01":
			return fmt.Errorf("outbox entry %s: %w", id, domain.ErrConflict)
		}
	}

	return fmt.Errorf("outbox entry %s: %w", id, err)
}

// scanEntry reads one outbox row from a pgx.Row or pgx.Rows.
func scanEntry(row pgx.Row) (*domain.OutboxEntry, error) {
	var (
		entry         domain.OutboxEntry
		dataJSON      []byte
		lastAttemptAt pgtype.Timestamptz
		lastError     pgtype.Text
	)

	err := row.Scan(
		&entry.ID, &entry.UserID, &entry.CircleID, &entry.Type, &entry.Title, &entry.Body,
		&dataJSON, &entry.Status, &entry.Attempts, &lastAttemptAt, &lastError, &entry.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if lastAttemptAt.Valid {
		ts := lastAttemptAt.Time
		entry.LastAttemptAt = &ts
	}
	if lastError.Valid {
		s := lastError.String
		entry.LastError = &s
	}
	if len(dataJSON) > 0 {
		entry.Data = make(map[string]any)
		if err := json.Unmarshal(dataJSON, &entry.Data); err != nil {
			return nil, fmt.Errorf("outbox entry %s unmarshal data: %w", entry.ID, err)
		}
	}

	return &entry, nil
}
