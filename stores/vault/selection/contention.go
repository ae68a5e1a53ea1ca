package selection

import (
	"github.com/bsv-blockchain/utxolock/errors"
	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// postgres codes raised when a concurrent transaction got to a row first
const (
	pqSerializationFailure = "40001"
	pqDeadlockDetected     = "40P01"
	pqLockNotAvailable     = "55P03"
)

// isContention reports whether err is the backend refusing to serialize this attempt against a
// concurrent one.
func isContention(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pqSerializationFailure, pqDeadlockDetected, pqLockNotAvailable:
			return true
		}

		return false
	}

	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		// the low byte is the primary result code
		switch sqliteErr.Code() & 0xff {
		case sqlite3.SQLITE_BUSY, sqlite3.SQLITE_LOCKED:
			return true
		}
	}

	return false
}

// classify turns a failed attempt into the error the coordinator acts on. Errors that already
// carry a code keep it.
func classify(err error, stage string) error {
	if isContention(err) {
		return errors.NewLockContentionError("[SelectAndLock] %s lost to a concurrent transaction", stage, err)
	}

	var tErr *errors.Error
	if errors.As(err, &tErr) {
		return err
	}

	return errors.NewStorageError("[SelectAndLock] %s failed", stage, err)
}
