// Package store provides database access methods for all inkpress
// entities. Each store struct wraps a *sql.DB and exposes typed query
// methods. Row absence is reported through the ErrNotFound sentinel so
// callers can tell "does not exist" apart from a failing store.
package store

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNotFound reports that the requested row does not exist. It is
	// the only store condition callers may treat as non-fatal.
	ErrNotFound = errors.New("store: not found")

	// ErrDuplicate reports a unique-constraint violation on insert or
	// update. Creation paths use it to retry slug resolution once.
	ErrDuplicate = errors.New("store: duplicate value")
)

// uniqueViolation is the PostgreSQL error code for unique_violation.
const uniqueViolation = "23505"

// mapError translates driver-level errors into store sentinels.
func mapError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return ErrDuplicate
	}
	return err
}

// likePattern wraps a search term for a case-insensitive substring match.
func likePattern(search string) string {
	return "%" + search + "%"
}
