// Package selection picks enough unspent states to cover a requested quantity and soft-locks them
// for the requester, so that concurrent flows never claim the same state.
package selection

import (
	"context"
	"database/sql"

	"github.com/bsv-blockchain/utxolock/errors"
	"github.com/bsv-blockchain/utxolock/stores/vault"
)

// Querier is satisfied by *usql.Tx, *usql.DB and the plain database/sql types.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// Strategy scans candidate states for one backend family. Select runs inside a transaction the
// caller owns and never writes.
type Strategy interface {
	Name() string
	// TxOptions are passed to BeginTx for every selection attempt.
	TxOptions() *sql.TxOptions
	// Isolation is the isolation the backend actually provides under TxOptions.
	Isolation() sql.IsolationLevel
	Select(ctx context.Context, q Querier, c *Criteria) ([]*vault.StateRecord, error)
}

// Dialect carries what differs between backends that share a scan algorithm.
type Dialect struct {
	Name      string
	TxOptions *sql.TxOptions
	Isolation sql.IsolationLevel
}

var (
	// PostgresDialect runs at repeatable read, where an update of a row changed by a concurrent
	// committed transaction fails with a serialization error instead of overwriting it.
	PostgresDialect = Dialect{
		Name:      "postgres",
		TxOptions: &sql.TxOptions{Isolation: sql.LevelRepeatableRead},
		Isolation: sql.LevelRepeatableRead,
	}

	// SqliteDialect relies on the connection opening BEGIN IMMEDIATE transactions, which hold the
	// database write lock for the whole attempt and so serialize selections.
	SqliteDialect = Dialect{
		Name:      "sqlite",
		TxOptions: &sql.TxOptions{},
		Isolation: sql.LevelSerializable,
	}
)

func insufficient(c *Criteria, available int64) error {
	return errors.NewInsufficientFundsError(c.Target, available,
		"%d %s requested, %d available to %s", c.Target, c.Denomination, available, c.LockID)
}
