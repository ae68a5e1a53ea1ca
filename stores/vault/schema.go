package vault

import (
	"context"

	"github.com/bsv-blockchain/utxolock/errors"
	"github.com/bsv-blockchain/utxolock/util/usql"
)

// lock_id holds the canonical string form of a uuid. lock_updated_at is unix millis so that both
// engines round-trip it without driver specific time parsing.
func createPostgresSchema(ctx context.Context, db *usql.DB) error {
	if _, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS vault_states (
		 tx_id           TEXT NOT NULL
		,output_index    BIGINT NOT NULL
		,contract_state  BYTEA NOT NULL
		,quantity        BIGINT NOT NULL CHECK (quantity > 0)
		,denomination    TEXT NOT NULL
		,issuer_key      TEXT
		,issuer_ref      BYTEA
		,notary_name     TEXT
		,state_status    SMALLINT NOT NULL DEFAULT 0
		,lock_id         TEXT
		,lock_updated_at BIGINT
		,recorded_at     TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		,PRIMARY KEY (tx_id, output_index)
		);
	`); err != nil {
		_ = db.Close()
		return errors.NewStorageError("could not create vault_states table", err)
	}

	if _, err := db.ExecContext(ctx, `CREATE INDEX IF NOT EXISTS ix_vault_states_denomination ON vault_states (denomination, state_status);`); err != nil {
		_ = db.Close()
		return errors.NewStorageError("could not create ix_vault_states_denomination index", err)
	}

	if _, err := db.ExecContext(ctx, `CREATE INDEX IF NOT EXISTS ix_vault_states_lock_id ON vault_states (lock_id) WHERE lock_id IS NOT NULL;`); err != nil {
		_ = db.Close()
		return errors.NewStorageError("could not create ix_vault_states_lock_id index", err)
	}

	return nil
}

func createSqliteSchema(ctx context.Context, db *usql.DB) error {
	if _, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS vault_states (
		 tx_id           TEXT NOT NULL
		,output_index    INTEGER NOT NULL
		,contract_state  BLOB NOT NULL
		,quantity        INTEGER NOT NULL CHECK (quantity > 0)
		,denomination    TEXT NOT NULL
		,issuer_key      TEXT
		,issuer_ref      BLOB
		,notary_name     TEXT
		,state_status    INTEGER NOT NULL DEFAULT 0
		,lock_id         TEXT
		,lock_updated_at INTEGER
		,recorded_at     TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
		,PRIMARY KEY (tx_id, output_index)
		);
	`); err != nil {
		_ = db.Close()
		return errors.NewStorageError("could not create vault_states table", err)
	}

	if _, err := db.ExecContext(ctx, `CREATE INDEX IF NOT EXISTS ix_vault_states_denomination ON vault_states (denomination, state_status);`); err != nil {
		_ = db.Close()
		return errors.NewStorageError("could not create ix_vault_states_denomination index", err)
	}

	if _, err := db.ExecContext(ctx, `CREATE INDEX IF NOT EXISTS ix_vault_states_lock_id ON vault_states (lock_id);`); err != nil {
		_ = db.Close()
		return errors.NewStorageError("could not create ix_vault_states_lock_id index", err)
	}

	return nil
}
