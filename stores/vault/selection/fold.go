package selection

import (
	"context"
	"database/sql"

	"github.com/bsv-blockchain/utxolock/errors"
	"github.com/bsv-blockchain/utxolock/stores/vault"
)

// Fold streams candidates in scan order and accumulates the running total itself. It works on
// any backend that can order a filtered scan.
type Fold struct {
	dialect Dialect
}

func NewFoldStrategy(dialect Dialect) *Fold {
	return &Fold{dialect: dialect}
}

func (f *Fold) Name() string {
	return "fold/" + f.dialect.Name
}

func (f *Fold) TxOptions() *sql.TxOptions {
	return f.dialect.TxOptions
}

func (f *Fold) Isolation() sql.IsolationLevel {
	return f.dialect.Isolation
}

func (f *Fold) Select(ctx context.Context, q Querier, c *Criteria) ([]*vault.StateRecord, error) {
	p := &params{}
	filter := buildFilter(p, c)

	query := `
		SELECT ` + vault.RecordColumns + `
		FROM vault_states
		WHERE ` + filter + `
		ORDER BY ` + scanOrder

	rows, err := q.QueryContext(ctx, query, p.args...)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var (
		records []*vault.StateRecord
		total   int64
	)

	// the row that crosses the target is included, nothing after it is read
	for total < c.Target && rows.Next() {
		r, err := vault.ScanRecord(rows.Scan)
		if err != nil {
			return nil, errors.NewStorageError("[%s] failed to read candidate", f.Name(), err)
		}

		records = append(records, r)
		total = vault.AddQuantity(total, r.Quantity)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	if total < c.Target {
		return nil, insufficient(c, total)
	}

	return records, nil
}
