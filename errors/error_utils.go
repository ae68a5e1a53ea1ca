// Package errors provides the typed error codes used across the vault store and the
// selection engine, and utilities for categorizing them.
package errors

import (
	"context"
	"errors"
)

// IsRetryableError determines if an error is transient and the operation should be retried.
// Only contention between requesters qualifies: insufficient funds, invalid criteria and
// backend mismatches never improve by retrying.
func IsRetryableError(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	return errors.Is(err, ErrLockContention) || errors.Is(err, ErrStorageUnavailable)
}

// IsTerminalSelectionError reports whether err is one of the selection outcomes that must be
// surfaced to the caller without another attempt.
func IsTerminalSelectionError(err error) bool {
	return errors.Is(err, ErrInsufficientFunds) ||
		errors.Is(err, ErrUnsupportedBackend) ||
		errors.Is(err, ErrInvalidCriteria)
}
