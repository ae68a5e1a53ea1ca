package usql

import (
	"context"
	"database/sql"

	"github.com/ordishs/gocore"
)

// Tx is the transaction counterpart of DB.
type Tx struct {
	*sql.Tx
}

func (tx *Tx) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	start := gocore.CurrentTime()
	defer func() {
		stat.NewStat(query).AddTime(start)
	}()

	return tx.Tx.QueryContext(ctx, query, args...)
}

func (tx *Tx) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	start := gocore.CurrentTime()
	defer func() {
		stat.NewStat(query).AddTime(start)
	}()

	return tx.Tx.QueryRowContext(ctx, query, args...)
}

func (tx *Tx) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	start := gocore.CurrentTime()
	defer func() {
		stat.NewStat(query).AddTime(start)
	}()

	return tx.Tx.ExecContext(ctx, query, args...)
}

func (tx *Tx) Commit() error {
	start := gocore.CurrentTime()
	defer func() {
		stat.NewStat("COMMIT").AddTime(start)
	}()

	return tx.Tx.Commit()
}
