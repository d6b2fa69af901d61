// Package store implements PostgreSQL persistence for the workout catalog
// using pgx. Storage errors that correspond to constraint violations are
// classified into a small closed set of kinds so callers never branch on
// engine-specific codes.
package store

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// ConstraintKind classifies a storage constraint violation.
type ConstraintKind int

const (
	ConstraintOther ConstraintKind = iota
	ConstraintUnique
	ConstraintForeignKey
	ConstraintCheck
)

// String returns a short label for logging.
func (k ConstraintKind) String() string {
	switch k {
	case ConstraintUnique:
		return "unique"
	case ConstraintForeignKey:
		return "foreign_key"
	case ConstraintCheck:
		return "check"
	default:
		return "other"
	}
}

// ConstraintError is a storage-level constraint failure with enough context
// to produce a precise per-record error message.
type ConstraintError struct {
	Kind       ConstraintKind
	Constraint string // constraint identifier reported by the engine
	Code       string // engine-specific error code (SQLSTATE for Postgres)
	Detail     string
	Err        error
}

func (e *ConstraintError) Error() string {
	switch e.Kind {
	case ConstraintUnique:
		return fmt.Sprintf("uniqueness violation on %s: %s", e.Constraint, e.Detail)
	case ConstraintForeignKey:
		return fmt.Sprintf("foreign key not satisfied: %s", e.Constraint)
	case ConstraintCheck:
		return fmt.Sprintf("check constraint violated: %s", e.Constraint)
	default:
		return fmt.Sprintf("storage error (%s): %s", e.Code, e.Detail)
	}
}

func (e *ConstraintError) Unwrap() error { return e.Err }

// AsConstraintError unwraps err looking for a ConstraintError.
func AsConstraintError(err error) (*ConstraintError, bool) {
	var ce *ConstraintError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

// Postgres SQLSTATE codes for the integrity constraint violation class.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

// wrapErr translates pgx errors into the store's error vocabulary.
// Non-constraint errors pass through unchanged.
func wrapErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	ce := &ConstraintError{
		Constraint: pgErr.ConstraintName,
		Code:       pgErr.Code,
		Detail:     pgErr.Message,
		Err:        err,
	}
	switch pgErr.Code {
	case pgUniqueViolation:
		ce.Kind = ConstraintUnique
	case pgForeignKeyViolation:
		ce.Kind = ConstraintForeignKey
	case pgCheckViolation:
		ce.Kind = ConstraintCheck
	default:
		ce.Kind = ConstraintOther
	}
	return ce
}
