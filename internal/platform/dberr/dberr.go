// Copyright (c) 2026 Palmares. All rights reserved.

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
//
// The reconciliation pipeline leans on storage-level unique constraints for
// conflict resolution, so classifying a unique violation separately from a
// generic failure matters: the engine treats it as a recoverable integrity
// conflict, not a run-aborting error.
package dberr

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/openscreen/palmares/internal/platform/apperr"
)

var (
	// ErrNotFound is a standard error returned when a queried row doesn't exist.
	ErrNotFound = apperr.NotFound("Resource")
)

// Wrap inspects a database error and wraps it into a meaningful [apperr.AppError].
// It hides internal database details from the client while classifying the error type.
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}

	// 1. Not Found mapping
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	// 2. Constraint violations map to 409 so callers can recover. The
	// driver error stays on the chain: the reconciliation engine re-checks
	// IsUniqueViolation on wrapped errors to drive its race recovery.
	if IsUniqueViolation(err) {
		conflict := apperr.Conflict("Duplicate record for " + action)
		conflict.Cause = err
		return conflict
	}

	// 3. Unknown query errors become Internal Server Errors
	return apperr.Internal(err)
}

// IsUniqueViolation reports whether err is a PostgreSQL unique-constraint
// violation (SQLSTATE 23505).
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgerrcode.UniqueViolation
	}
	return false
}
