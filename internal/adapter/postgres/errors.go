package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/careloop/careloop-backend/internal/domain"
)

// Postgres error codes that map onto domain errors. Serialization failures
// and deadlocks surface as ErrConflict so services can retry the contended
// write (revision bump, token consume) once.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
	codeExclusionViolation  = "23P01"
	codeSerializationFail   = "40001"
	codeDeadlockDetected    = "40P01"
)

// mapError translates driver errors into domain errors, tagging them with
// the entity and id for the log line. Context cancellation passes through
// untranslated.
func mapError(err error, entity string, id uuid.UUID) error {
	if err == nil {
		return nil
	}

	wrap := func(sentinel error) error {
		return fmt.Errorf("%s %s: %w", entity, id, sentinel)
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return wrap(err)
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return wrap(domain.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation:
			return wrap(domain.ErrAlreadyExists)
		case codeForeignKeyViolation:
			return wrap(domain.ErrNotFound)
		case codeCheckViolation:
			return wrap(domain.ErrValidation)
		case codeExclusionViolation, codeSerializationFail, codeDeadlockDetected:
			return wrap(domain.ErrConflict)
		}
	}

	return wrap(err)
}
