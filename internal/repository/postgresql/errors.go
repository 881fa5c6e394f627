package postgresql

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// isUniqueViolation reports whether err is a PostgreSQL unique-index
// violation on the named constraint. Constraint-backed uniqueness is the
// race-safe half of the duplicate checks the services do up front.
func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" && strings.Contains(pgErr.ConstraintName, constraint)
	}
	return false
}

// isCheckViolation reports whether err is a CHECK constraint violation
// on the named constraint.
func isCheckViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23514" && strings.Contains(pgErr.ConstraintName, constraint)
	}
	return false
}
