// Package vault persists fungible state records and their soft-lock columns in a SQL table
// shared by every selecting process.
package vault

import (
	"database/sql"
	"fmt"
	"math"
	"time"

	safeconversion "github.com/bsv-blockchain/go-safe-conversion"
	"github.com/bsv-blockchain/utxolock/errors"
	"github.com/google/uuid"
)

type Status int

const (
	StatusUnspent Status = 0
	StatusSpent   Status = 1
)

func (s Status) String() string {
	switch s {
	case StatusUnspent:
		return "unspent"
	case StatusSpent:
		return "spent"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// OutputRef identifies a state by the transaction that produced it and its output index.
type OutputRef struct {
	TxID  string `json:"txId"`
	Index uint32 `json:"index"`
}

func (r OutputRef) String() string {
	return fmt.Sprintf("%s:%d", r.TxID, r.Index)
}

type StateRecord struct {
	Ref           OutputRef  `json:"ref"`
	Contract      []byte     `json:"contract,omitempty"`
	Quantity      int64      `json:"quantity"`
	Denomination  string     `json:"denomination"`
	IssuerKey     string     `json:"issuerKey,omitempty"`
	IssuerRef     []byte     `json:"issuerRef,omitempty"`
	Notary        string     `json:"notary,omitempty"`
	Status        Status     `json:"status"`
	LockID        *uuid.UUID `json:"lockId,omitempty"`
	LockUpdatedAt *time.Time `json:"lockUpdatedAt,omitempty"`
}

// RecordColumns is the column list every record query selects, in the order ScanRecord expects.
const RecordColumns = `tx_id
		,output_index
		,contract_state
		,quantity
		,denomination
		,issuer_key
		,issuer_ref
		,notary_name
		,state_status
		,lock_id
		,lock_updated_at`

// ScanRecord reads the RecordColumns of the current row.
func ScanRecord(scan func(dest ...interface{}) error) (*StateRecord, error) {
	var (
		r             StateRecord
		index         int64
		issuerKey     sql.NullString
		notary        sql.NullString
		status        int64
		lockID        sql.NullString
		lockUpdatedAt sql.NullInt64
	)

	if err := scan(
		&r.Ref.TxID,
		&index,
		&r.Contract,
		&r.Quantity,
		&r.Denomination,
		&issuerKey,
		&r.IssuerRef,
		&notary,
		&status,
		&lockID,
		&lockUpdatedAt,
	); err != nil {
		return nil, err
	}

	idx, err := safeconversion.Int64ToUint32(index)
	if err != nil {
		return nil, errors.NewProcessingError("state %s has output index %d out of range", r.Ref.TxID, index, err)
	}

	r.Ref.Index = idx
	r.IssuerKey = issuerKey.String
	r.Notary = notary.String
	r.Status = Status(status)

	if lockID.Valid {
		id, err := uuid.Parse(lockID.String)
		if err != nil {
			return nil, errors.NewProcessingError("state %s has malformed lock id %q", r.Ref, lockID.String, err)
		}

		r.LockID = &id
	}

	if lockUpdatedAt.Valid {
		t := time.UnixMilli(lockUpdatedAt.Int64)
		r.LockUpdatedAt = &t
	}

	return &r, nil
}

// ScanRecords drains rows into records and closes them.
func ScanRecords(rows *sql.Rows) ([]*StateRecord, error) {
	defer rows.Close()

	records := make([]*StateRecord, 0)

	for rows.Next() {
		r, err := ScanRecord(rows.Scan)
		if err != nil {
			return nil, err
		}

		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

// Sum returns the total quantity of records, saturating at math.MaxInt64.
func Sum(records []*StateRecord) int64 {
	var total int64
	for _, r := range records {
		total = AddQuantity(total, r.Quantity)
	}

	return total
}

// AddQuantity adds two non-negative quantities, saturating at math.MaxInt64 instead of wrapping.
func AddQuantity(total, quantity int64) int64 {
	if quantity > math.MaxInt64-total {
		return math.MaxInt64
	}

	return total + quantity
}

func nullString(s string) interface{} {
	if s == "" {
		return nil
	}

	return s
}

func nullBytes(b []byte) interface{} {
	if len(b) == 0 {
		return nil
	}

	return b
}
