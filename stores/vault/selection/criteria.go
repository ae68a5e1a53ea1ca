package selection

import (
	"github.com/bsv-blockchain/utxolock/errors"
	"github.com/google/uuid"
)

// Criteria describes one selection request. LockID is the requester; rows it already owns stay
// selectable so that a retried flow can select them again.
type Criteria struct {
	Target       int64
	Denomination string
	LockID       uuid.UUID
	Notary       string
	IssuerKeys   []string
	IssuerRefs   [][]byte
}

// Validate rejects criteria before anything touches the store.
func (c *Criteria) Validate() error {
	if c == nil {
		return errors.NewInvalidCriteriaError("no criteria")
	}

	if c.Target <= 0 {
		return errors.NewInvalidCriteriaError("target quantity must be positive, got %d", c.Target)
	}

	if c.Denomination == "" {
		return errors.NewInvalidCriteriaError("denomination is required")
	}

	if c.LockID == uuid.Nil {
		return errors.NewInvalidCriteriaError("lock id is required")
	}

	seen := make(map[string]struct{}, len(c.IssuerKeys))

	for i, key := range c.IssuerKeys {
		if key == "" {
			return errors.NewInvalidCriteriaError("issuer key %d is empty", i)
		}

		if _, ok := seen[key]; ok {
			return errors.NewInvalidCriteriaError("issuer key %q is listed twice", key)
		}

		seen[key] = struct{}{}
	}

	seen = make(map[string]struct{}, len(c.IssuerRefs))

	for i, ref := range c.IssuerRefs {
		if len(ref) == 0 {
			return errors.NewInvalidCriteriaError("issuer ref %d is empty", i)
		}

		if _, ok := seen[string(ref)]; ok {
			return errors.NewInvalidCriteriaError("issuer ref %x is listed twice", ref)
		}

		seen[string(ref)] = struct{}{}
	}

	return nil
}
