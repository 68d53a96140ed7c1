package database

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// ErrConstraint marks failures caused by a storage-level integrity rule
// (foreign key, CHECK, NOT NULL, UNIQUE).
var ErrConstraint = errors.New("constraint violation")

// Classify tags driver constraint errors with ErrConstraint and leaves other errors untouched.
func Classify(err error) error {
	if err == nil || errors.Is(err, ErrConstraint) {
		return err
	}
	if IsConstraintViolation(err) {
		return fmt.Errorf("%w: %v", ErrConstraint, err)
	}
	return err
}

// IsConstraintViolation inspects SQLite and PostgreSQL driver errors.
func IsConstraintViolation(err error) bool {
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		return liteErr.Code()&0xff == sqlite3.SQLITE_CONSTRAINT
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code.Class() == "23"
	}
	return false
}
