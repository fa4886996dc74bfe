package dbx

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueViolation is the PostgreSQL error code for unique constraint violations.
const uniqueViolation = "23505"

// UniqueViolation reports whether err is a unique constraint violation and,
// if so, returns the violated constraint's name. Repositories use the name
// to distinguish natural-key conflicts (email) from surrogate-key conflicts
// (random id collisions).
func UniqueViolation(err error) (constraint string, ok bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return pgErr.ConstraintName, true
	}
	return "", false
}
