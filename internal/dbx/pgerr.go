package dbx

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Class 23 integrity violation, unique constraint.
const uniqueViolationCode = "23505"

// IsUniqueViolation reports whether err is a PostgreSQL unique-constraint
// violation. Repositories use it to turn constraint-backed inserts into
// domain conflicts instead of racy check-then-insert logic.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
