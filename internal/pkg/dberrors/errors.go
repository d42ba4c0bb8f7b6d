package dberrors

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL SQLSTATE codes
const (
	UniqueViolation     = "23505"
	ForeignKeyViolation = "23503"
)

func pgCode(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr, true
	}
	return nil, false
}

// IsUniqueViolation reports whether err is a unique_violation on any constraint
func IsUniqueViolation(err error) bool {
	pgErr, ok := pgCode(err)
	return ok && pgErr.Code == UniqueViolation
}

// IsForeignKeyViolation reports whether err is a foreign_key_violation
func IsForeignKeyViolation(err error) bool {
	pgErr, ok := pgCode(err)
	return ok && pgErr.Code == ForeignKeyViolation
}
