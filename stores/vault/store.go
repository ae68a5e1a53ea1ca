package vault

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/bsv-blockchain/utxolock/errors"
	"github.com/bsv-blockchain/utxolock/settings"
	"github.com/bsv-blockchain/utxolock/ulogger"
	"github.com/bsv-blockchain/utxolock/util"
	"github.com/bsv-blockchain/utxolock/util/usql"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// StoreIdentity describes the connected backend. Version is whatever the engine reports about
// itself, e.g. the full version() banner on postgres.
type StoreIdentity struct {
	Engine  string
	Version string
}

func (id StoreIdentity) String() string {
	return fmt.Sprintf("%s %s", id.Engine, id.Version)
}

type Store struct {
	logger    ulogger.Logger
	db        *usql.DB
	engine    util.SQLEngine
	dbTimeout time.Duration
}

// New opens the store at storeURL, or at the configured vault_store when storeURL is nil, and
// creates the schema if it does not exist.
func New(ctx context.Context, logger ulogger.Logger, tSettings *settings.Settings, storeURL *url.URL) (*Store, error) {
	initPrometheusMetrics()

	if storeURL == nil {
		storeURL = tSettings.Vault.StoreURL
	}

	if storeURL == nil {
		return nil, errors.NewConfigurationError("no vault store configured")
	}

	db, err := util.InitSQLDB(logger, storeURL, tSettings)
	if err != nil {
		return nil, errors.NewStorageUnavailableError("failed to init sql db", err)
	}

	engine := util.SQLEngine(storeURL.Scheme)

	switch engine {
	case util.Postgres:
		if err = createPostgresSchema(ctx, db); err != nil {
			return nil, errors.NewStorageError("failed to create postgres schema", err)
		}

	case util.Sqlite, util.SqliteMemory:
		if err = createSqliteSchema(ctx, db); err != nil {
			return nil, errors.NewStorageError("failed to create sqlite schema", err)
		}

	default:
		_ = db.Close()
		return nil, errors.NewConfigurationError("unknown database engine: %s", storeURL.Scheme)
	}

	dbTimeout := tSettings.Vault.DBTimeout
	if dbTimeout <= 0 {
		dbTimeout = 5 * time.Second
	}

	return &Store{
		logger:    logger,
		db:        db,
		engine:    engine,
		dbTimeout: dbTimeout,
	}, nil
}

// DB exposes the underlying connection pool to the selection engine.
func (s *Store) DB() *usql.DB {
	return s.db
}

func (s *Store) Engine() util.SQLEngine {
	return s.engine
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Health reports whether the backend answers queries. Liveness probes do not touch the backend.
func (s *Store) Health(ctx context.Context, checkLiveness bool) (int, string, error) {
	details := fmt.Sprintf("SQL Engine is %s", s.engine)

	if checkLiveness {
		return http.StatusOK, details, nil
	}

	var num int

	if err := s.db.QueryRowContext(ctx, "SELECT 1").Scan(&num); err != nil {
		return http.StatusServiceUnavailable, details, errors.NewStorageUnavailableError("vault health check failed", err)
	}

	return http.StatusOK, details, nil
}

// Identity asks the backend to describe itself.
func (s *Store) Identity(ctx context.Context) (StoreIdentity, error) {
	ctx, cancelTimeout := context.WithTimeout(ctx, s.dbTimeout)
	defer cancelTimeout()

	id := StoreIdentity{}
	q := "SELECT sqlite_version()"

	switch s.engine {
	case util.Postgres:
		id.Engine = string(util.Postgres)
		q = "SELECT version()"
	default:
		id.Engine = string(util.Sqlite)
	}

	if err := s.db.QueryRowContext(ctx, q).Scan(&id.Version); err != nil {
		return id, errors.NewStorageError("failed to read %s version", id.Engine, err)
	}

	return id, nil
}

// Add records new unspent states. The insert is all or nothing.
func (s *Store) Add(ctx context.Context, records ...*StateRecord) error {
	for _, r := range records {
		if r.Ref.TxID == "" {
			return errors.NewInvalidArgumentError("state has no transaction id")
		}

		if r.Quantity <= 0 {
			return errors.NewInvalidArgumentError("state %s has non-positive quantity %d", r.Ref, r.Quantity)
		}

		if r.Denomination == "" {
			return errors.NewInvalidArgumentError("state %s has no denomination", r.Ref)
		}
	}

	start, stat, ctx := util.StartStatFromContext(ctx, "Add")
	defer func() {
		stat.AddTime(start)
	}()

	ctx, cancelTimeout := context.WithTimeout(ctx, s.dbTimeout)
	defer cancelTimeout()

	txn, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.NewStorageError("failed to begin transaction", err)
	}

	defer func() {
		_ = txn.Rollback()
	}()

	q := `
		INSERT INTO vault_states (
		 tx_id
		,output_index
		,contract_state
		,quantity
		,denomination
		,issuer_key
		,issuer_ref
		,notary_name
		,state_status
		) VALUES (
		 $1
		,$2
		,$3
		,$4
		,$5
		,$6
		,$7
		,$8
		,$9
		)
	`

	for _, r := range records {
		contract := r.Contract
		if contract == nil {
			contract = []byte{}
		}

		if _, err = txn.ExecContext(ctx, q, r.Ref.TxID, int64(r.Ref.Index), contract, r.Quantity, r.Denomination,
			nullString(r.IssuerKey), nullBytes(r.IssuerRef), nullString(r.Notary), int64(StatusUnspent)); err != nil {
			if isUniqueViolation(err) {
				prometheusVaultErrors.WithLabelValues("Add", "duplicate").Inc()
				return errors.NewInvalidArgumentError("state %s already exists", r.Ref, err)
			}

			prometheusVaultErrors.WithLabelValues("Add", "insert").Inc()

			return errors.NewStorageError("failed to insert state %s", r.Ref, err)
		}
	}

	if err = txn.Commit(); err != nil {
		return errors.NewStorageError("failed to commit states", err)
	}

	prometheusVaultAdd.Add(float64(len(records)))

	return nil
}

func (s *Store) Get(ctx context.Context, ref OutputRef) (*StateRecord, error) {
	prometheusVaultGet.Inc()

	ctx, cancelTimeout := context.WithTimeout(ctx, s.dbTimeout)
	defer cancelTimeout()

	q := `SELECT ` + RecordColumns + ` FROM vault_states WHERE tx_id = $1 AND output_index = $2`

	r, err := ScanRecord(s.db.QueryRowContext(ctx, q, ref.TxID, int64(ref.Index)).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.NewNotFoundError("state %s not found", ref)
		}

		return nil, errors.NewStorageError("failed to get state %s", ref, err)
	}

	return r, nil
}

// LockedBy returns every state currently soft-locked by lockID, in scan order.
func (s *Store) LockedBy(ctx context.Context, lockID uuid.UUID) ([]*StateRecord, error) {
	ctx, cancelTimeout := context.WithTimeout(ctx, s.dbTimeout)
	defer cancelTimeout()

	q := `SELECT ` + RecordColumns + ` FROM vault_states WHERE lock_id = $1 ORDER BY tx_id, output_index`

	rows, err := s.db.QueryContext(ctx, q, lockID.String())
	if err != nil {
		return nil, errors.NewStorageError("failed to query states locked by %s", lockID, err)
	}

	records, err := ScanRecords(rows)
	if err != nil {
		return nil, errors.NewStorageError("failed to read states locked by %s", lockID, err)
	}

	return records, nil
}

// Balance sums the unspent and unlocked quantity of a denomination.
func (s *Store) Balance(ctx context.Context, denomination string) (int64, error) {
	ctx, cancelTimeout := context.WithTimeout(ctx, s.dbTimeout)
	defer cancelTimeout()

	q := `
		SELECT COALESCE(SUM(quantity), 0)
		FROM vault_states
		WHERE denomination = $1
		AND state_status = $2
		AND lock_id IS NULL
	`

	var total int64

	if err := s.db.QueryRowContext(ctx, q, denomination, int64(StatusUnspent)).Scan(&total); err != nil {
		return 0, errors.NewStorageError("failed to compute %s balance", denomination, err)
	}

	return total, nil
}

// MarkSpent settles states. The soft lock is cleared with the status change; lock_updated_at
// keeps the time of the last claim or release. States that are
// already spent are left alone and not counted.
func (s *Store) MarkSpent(ctx context.Context, refs ...OutputRef) (int64, error) {
	if len(refs) == 0 {
		return 0, nil
	}

	start, stat, ctx := util.StartStatFromContext(ctx, "MarkSpent")
	defer func() {
		stat.AddTime(start)
	}()

	ctx, cancelTimeout := context.WithTimeout(ctx, s.dbTimeout)
	defer cancelTimeout()

	predicate, refArgs := RefPredicate(refs, 3)

	q := `
		UPDATE vault_states
		SET state_status = $1
		,lock_id = NULL
		WHERE state_status = $2
		AND ` + predicate

	args := append([]interface{}{int64(StatusSpent), int64(StatusUnspent)}, refArgs...)

	result, err := s.db.ExecContext(ctx, q, args...)
	if err != nil {
		prometheusVaultErrors.WithLabelValues("MarkSpent", "update").Inc()
		return 0, errors.NewStorageError("failed to mark %d states spent", len(refs), err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, errors.NewStorageError("failed to read affected rows", err)
	}

	prometheusVaultSpend.Add(float64(n))

	return n, nil
}

// SpendLocked settles every unspent state soft-locked by lockID.
func (s *Store) SpendLocked(ctx context.Context, lockID uuid.UUID) (int64, error) {
	start, stat, ctx := util.StartStatFromContext(ctx, "SpendLocked")
	defer func() {
		stat.AddTime(start)
	}()

	ctx, cancelTimeout := context.WithTimeout(ctx, s.dbTimeout)
	defer cancelTimeout()

	q := `
		UPDATE vault_states
		SET state_status = $1
		,lock_id = NULL
		WHERE lock_id = $2
		AND state_status = $3
	`

	result, err := s.db.ExecContext(ctx, q, int64(StatusSpent), lockID.String(), int64(StatusUnspent))
	if err != nil {
		prometheusVaultErrors.WithLabelValues("SpendLocked", "update").Inc()
		return 0, errors.NewStorageError("failed to spend states locked by %s", lockID, err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, errors.NewStorageError("failed to read affected rows", err)
	}

	prometheusVaultSpend.Add(float64(n))

	return n, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return true
	}

	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		code := sqliteErr.Code()
		return code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
	}

	return false
}
