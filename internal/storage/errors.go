package storage

import (
	"errors"
	"fmt"

	"greentime/internal/core"

	sqlitedrv "modernc.org/sqlite"
)

// ErrNotFound is returned when an operation targets a row that does not
// exist (or has been soft-deleted out of view).
var ErrNotFound = errors.New("not found")

// SQLITE_CONSTRAINT primary result code; extended codes (unique, foreign
// key) carry it in their low byte.
const sqliteConstraint = 19

// wrapErr classifies a driver error into the store's failure taxonomy:
// unique/foreign-key violations become ConstraintViolationError, anything
// else becomes StorageError.
func wrapErr(op string, err error) error {
	if err == nil {
		return nil
	}
	var se *sqlitedrv.Error
	if errors.As(err, &se) && se.Code()&0xff == sqliteConstraint {
		return &core.ConstraintViolationError{Op: op, Err: err}
	}
	return &core.StorageError{Op: op, Err: err}
}

func notFound(op string, id int64) error {
	return fmt.Errorf("%s %d: %w", op, id, ErrNotFound)
}
