package postgres

import (
	"errors"

	"github.com/lib/pq"
)

// Postgres SQLSTATE codes the repositories translate into domain errors.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgInvalidTextRepr     = "22P02"
)

// pgError returns the *pq.Error wrapped in err, if any.
func pgError(err error) (*pq.Error, bool) {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr, true
	}
	return nil, false
}

func isPgCode(err error, code string) bool {
	pqErr, ok := pgError(err)
	return ok && string(pqErr.Code) == code
}

// isMalformedID reports whether err comes from a value that is not a valid uuid.
// Such ids cannot name a row, so callers treat them as not found.
func isMalformedID(err error) bool {
	return isPgCode(err, pgInvalidTextRepr)
}
