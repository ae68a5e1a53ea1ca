package selection

import (
	"context"
	"database/sql"

	"github.com/bsv-blockchain/utxolock/errors"
	"github.com/bsv-blockchain/utxolock/stores/vault"
)

// Windowed computes the running total in the query with a window function and lets the backend
// cut the scan off.
type Windowed struct {
	dialect Dialect
}

func NewWindowedStrategy(dialect Dialect) *Windowed {
	return &Windowed{dialect: dialect}
}

func (w *Windowed) Name() string {
	return "windowed/" + w.dialect.Name
}

func (w *Windowed) TxOptions() *sql.TxOptions {
	return w.dialect.TxOptions
}

func (w *Windowed) Isolation() sql.IsolationLevel {
	return w.dialect.Isolation
}

// Select keeps a row while the total of the rows before it is still below target, which
// includes the row that crosses the target.
func (w *Windowed) Select(ctx context.Context, q Querier, c *Criteria) ([]*vault.StateRecord, error) {
	p := &params{}
	filter := buildFilter(p, c)

	query := `
		SELECT ` + vault.RecordColumns + `
		FROM (
			SELECT ` + vault.RecordColumns + `
			,SUM(quantity) OVER (ORDER BY ` + scanOrder + ` ROWS UNBOUNDED PRECEDING) AS running_total
			FROM vault_states
			WHERE ` + filter + `
		) candidates
		WHERE running_total - quantity < ` + p.bind(c.Target) + `
		ORDER BY ` + scanOrder

	rows, err := q.QueryContext(ctx, query, p.args...)
	if err != nil {
		return nil, err
	}

	records, err := vault.ScanRecords(rows)
	if err != nil {
		return nil, errors.NewStorageError("[%s] failed to read candidates", w.Name(), err)
	}

	if total := vault.Sum(records); total < c.Target {
		return nil, insufficient(c, total)
	}

	return records, nil
}
