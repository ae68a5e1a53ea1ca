package selection

import (
	"context"
	"time"

	"github.com/bsv-blockchain/utxolock/errors"
	"github.com/bsv-blockchain/utxolock/stores/vault"
	"github.com/google/uuid"
)

// now is swapped in tests.
var now = time.Now

// Claim soft-locks refs for lockID in a single conditional update. Ownership is re-checked in
// the update itself, so a state claimed by someone else since the scan is simply not updated.
// It returns false when fewer rows than requested were updated; the caller must then roll back.
func Claim(ctx context.Context, q Querier, refs []vault.OutputRef, lockID uuid.UUID) (bool, error) {
	if len(refs) == 0 {
		return true, nil
	}

	predicate, refArgs := vault.RefPredicate(refs, 4)

	query := `
		UPDATE vault_states
		SET lock_id = $1
		,lock_updated_at = $2
		WHERE (lock_id IS NULL OR lock_id = $1)
		AND state_status = $3
		AND ` + predicate

	args := append([]interface{}{lockID.String(), now().UnixMilli(), int64(vault.StatusUnspent)}, refArgs...)

	result, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return false, err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return false, errors.NewStorageError("failed to read claimed row count", err)
	}

	return n == int64(len(refs)), nil
}

// Release clears the soft lock on every state owned by lockID and returns how many were released.
func Release(ctx context.Context, q Querier, lockID uuid.UUID) (int64, error) {
	query := `
		UPDATE vault_states
		SET lock_id = NULL
		,lock_updated_at = $1
		WHERE lock_id = $2
	`

	result, err := q.ExecContext(ctx, query, now().UnixMilli(), lockID.String())
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}

// ReleaseRefs clears the soft lock on those of refs owned by lockID. States owned by anyone
// else are left alone.
func ReleaseRefs(ctx context.Context, q Querier, lockID uuid.UUID, refs []vault.OutputRef) (int64, error) {
	if len(refs) == 0 {
		return 0, nil
	}

	predicate, refArgs := vault.RefPredicate(refs, 3)

	query := `
		UPDATE vault_states
		SET lock_id = NULL
		,lock_updated_at = $1
		WHERE lock_id = $2
		AND ` + predicate

	args := append([]interface{}{now().UnixMilli(), lockID.String()}, refArgs...)

	result, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}
