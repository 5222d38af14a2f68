// Package ratelimit implements fixed-window request counters using PostgreSQL.
// One row exists per (subject, endpoint); entering a new window resets the
// counter in place, so the table never grows beyond the touched key set.
package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/careloop/careloop-backend/internal/adapter/postgres"
	"github.com/careloop/careloop-backend/internal/domain"
)

// Repo provides rate limit counter persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new rate limit repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// incrementSQL upserts the counter for (subject, endpoint). A row carrying a
// stale window_start is reset to count 1 for the new window in the same
// statement, so increment-vs-reset races are settled by the row lock the
// upsert already takes.
const incrementSQL = `INSERT INTO rate_limits (subject_id, endpoint, window_start, count)
	VALUES ($1, $2, $3, 1)
	ON CONFLICT (subject_id, endpoint) DO UPDATE
	SET count = CASE
		WHEN rate_limits.window_start = EXCLUDED.window_start THEN rate_limits.count + 1
		ELSE 1
	END,
	window_start = EXCLUDED.window_start
	RETURNING count`

// Increment atomically bumps the counter for the given window and returns
// the post-increment count.
func (r *Repo) Increment(ctx context.Context, subjectID uuid.UUID, endpoint string, windowStart time.Time) (int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var count int
	err := querier.QueryRow(ctx, incrementSQL, subjectID, endpoint, windowStart).Scan(&count)
	if err != nil {
		return 0, mapError(err, subjectID, endpoint)
	}

	return count, nil
}

const deleteIdleSQL = `DELETE FROM rate_limits WHERE window_start < $1`

// DeleteIdle removes counter rows whose window started before the cutoff.
// Purely a space reclaim: a deleted row is recreated at count 1 on next use.
func (r *Repo) DeleteIdle(ctx context.Context, cutoff time.Time) (int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, deleteIdleSQL, cutoff)
	if err != nil {
		return 0, fmt.Errorf("delete idle rate limit rows: %w", err)
	}

	return int(tag.RowsAffected()), nil
}

// mapError converts pgx/pgconn errors into domain errors.
func mapError(err error, subjectID uuid.UUID, endpoint string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("rate limit %s %s: %w", subjectID, endpoint, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "40001", "40P01":
			return fmt.Errorf("rate limit %s %s: %w", subjectID, endpoint, domain.ErrConflict)
		}
	}

	return fmt.Errorf("rate limit %s %s: %w", subjectID, endpoint, err)
}
