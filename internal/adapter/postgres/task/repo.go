// Package task implements persistence for care tasks using PostgreSQL.
package task

import (
	"context"
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

// Repo provides task persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new task repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const taskColumns = `id, circle_id, assignee_id, created_by, description, due_date,
	priority, status, completed_at, created_at, updated_at`

const createTaskSQL = `INSERT INTO tasks
	(id, circle_id, assignee_id, created_by, description, due_date, priority, status, completed_at, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

// Create inserts a new task.
func (r *Repo) Create(ctx context.Context, task *domain.Task) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := querier.Exec(ctx, createTaskSQL,
		task.ID, task.CircleID, task.AssigneeID, task.CreatedBy, task.Description,
		task.DueDate, string(task.Priority), string(task.Status), task.CompletedAt,
		task.CreatedAt, task.UpdatedAt,
	)
	if err != nil {
		return mapError(err, task.ID)
	}

	return nil
}

const getTaskSQL = `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`

// GetByID returns a task by primary key.
// Returns domain.ErrNotFound if the task does not exist.
func (r *Repo) GetByID(ctx context.Context, taskID uuid.UUID) (*domain.Task, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	task, err := scanTask(querier.QueryRow(ctx, getTaskSQL, taskID))
	if err != nil {
		return nil, mapError(err, taskID)
	}

	return task, nil
}

const listByCircleSQL = `SELECT ` + taskColumns + `
	FROM tasks
	WHERE circle_id = $1 AND ($2::text IS NULL OR status = $2)
	ORDER BY created_at DESC
	LIMIT $3 OFFSET $4`

// ListByCircle returns tasks in a circle, newest first, optionally filtered
// by status.
func (r *Repo) ListByCircle(ctx context.Context, circleID uuid.UUID, status *domain.TaskStatus, limit, offset int) ([]*domain.Task, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var statusArg pgtype.Text
	if status != nil {
		statusArg = pgtype.Text{String: string(*status), Valid: true}
	}

	rows, err := querier.Query(ctx, listByCircleSQL, circleID, statusArg, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*domain.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, task)
	}

	return tasks, rows.Err()
}

const markDoneSQL = `UPDATE tasks
	SET status = 'DONE', completed_at = $2, updated_at = $2
	WHERE id = $1 AND status = 'OPEN'`

// MarkDone completes an open task. Returns true if this call performed the
// transition; a repeated completion affects zero rows.
func (r *Repo) MarkDone(ctx context.Context, taskID uuid.UUID, completedAt time.Time) (bool, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, markDoneSQL, taskID, completedAt)
	if err != nil {
		return false, mapError(err, taskID)
	}

	return tag.RowsAffected() > 0, nil
}

// mapError converts pgx/pgconn errors into domain errors.
func mapError(err error, id uuid.UUID) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("task %s: %w", id, err)
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("task %s: %w", id, domain.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return fmt.Errorf("task %s: %w", id, domain.ErrAlreadyExists)
		case "23503":
			return fmt.Errorf("task %s: %w", id, domain.ErrNotFound)
		case "23514":
			return fmt.Errorf("task %s: %w", id, domain.ErrValidation)
		case "40001", "40P01":
			return fmt.Errorf("task %s: %w", id, domain.ErrConflict)
		}
	}

	return fmt.Errorf("task %s: %w", id, err)
}

// scanTask reads one task row from a pgx.Row or pgx.Rows.
func scanTask(row pgx.Row) (*domain.Task, error) {
	var (
		task        domain.Task
		dueDate     pgtype.Timestamptz
		completedAt pgtype.Timestamptz
	)

	err := row.Scan(
		&task.ID, &task.CircleID, &task.AssigneeID, &task.CreatedBy, &task.Description,
		&dueDate, &task.Priority, &task.Status, &completedAt, &task.CreatedAt, &task.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if dueDate.Valid {
		ts := dueDate.Time
		task.DueDate = &ts
	}
	if completedAt.Valid {
		ts := completedAt.Time
		task.CompletedAt = &ts
	}

	return &task, nil
}
