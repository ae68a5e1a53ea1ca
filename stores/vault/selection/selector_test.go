package selection

import (
	"context"
	"fmt"
	"math"
	"net/url"
	"testing"
	"time"

	"github.com/bsv-blockchain/utxolock/errors"
	"github.com/bsv-blockchain/utxolock/settings"
	"github.com/bsv-blockchain/utxolock/stores/vault"
	"github.com/bsv-blockchain/utxolock/ulogger"
	"github.com/bsv-blockchain/utxolock/util/test"
	"github.com/bsv-blockchain/utxolock/util/test/mocklogger"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"
	"golang.org/x/sync/errgroup"
)

func sqliteStrategies() []Strategy {
	return []Strategy{
		NewWindowedStrategy(SqliteDialect),
		NewFoldStrategy(SqliteDialect),
	}
}

func setup(ctx context.Context, t *testing.T, strategy Strategy) (*vault.Store, *Selector) {
	t.Helper()

	tSettings := test.CreateBaseTestSettings()

	return setupWithSettings(ctx, t, tSettings, strategy)
}

func setupWithSettings(ctx context.Context, t *testing.T, tSettings *settings.Settings, strategy Strategy) (*vault.Store, *Selector) {
	t.Helper()

	store, err := vault.New(ctx, ulogger.TestLogger{}, tSettings, nil)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = store.Close()
	})

	registry := NewRegistry()
	require.NoError(t, registry.Register(EngineIs("sqlite"), strategy))

	return store, New(ulogger.TestLogger{}, tSettings, store, registry)
}

func state(txID string, quantity int64) *vault.StateRecord {
	return &vault.StateRecord{
		Ref:          vault.OutputRef{TxID: txID},
		Quantity:     quantity,
		Denomination: "GBP",
	}
}

// addABC records A(30), B(50) and C(20), scanned in that order.
func addABC(ctx context.Context, t *testing.T, store *vault.Store) {
	t.Helper()

	require.NoError(t, store.Add(ctx, state("a", 30), state("b", 50), state("c", 20)))
}

func txIDs(records []*vault.StateRecord) []string {
	ids := make([]string, len(records))
	for i, r := range records {
		ids[i] = r.Ref.TxID
	}

	return ids
}

func gbp(target int64, lockID uuid.UUID) *Criteria {
	return &Criteria{Target: target, Denomination: "GBP", LockID: lockID}
}

func TestSelectAndLockCoversTarget(t *testing.T) {
	for _, strategy := range sqliteStrategies() {
		t.Run(strategy.Name(), func(t *testing.T) {
			ctx := context.Background()
			store, selector := setup(ctx, t, strategy)
			addABC(ctx, t, store)

			lockID := uuid.New()

			result, err := selector.SelectAndLock(ctx, gbp(40, lockID))
			require.NoError(t, err)

			assert.Equal(t, []string{"a", "b"}, txIDs(result.Records))
			assert.Equal(t, int64(80), result.Total)
			assert.Equal(t, lockID, result.LockID)
			assert.Equal(t, 1, result.Attempts)

			for _, r := range result.Records {
				require.NotNil(t, r.LockID)
				assert.Equal(t, lockID, *r.LockID)
			}

			locked, err := store.LockedBy(ctx, lockID)
			require.NoError(t, err)
			assert.Equal(t, []string{"a", "b"}, txIDs(locked))

			c, err := store.Get(ctx, vault.OutputRef{TxID: "c"})
			require.NoError(t, err)
			assert.Nil(t, c.LockID)
		})
	}
}

func TestSelectAndLockCutoff(t *testing.T) {
	tests := []struct {
		target   int64
		expected []string
	}{
		{1, []string{"a"}},
		{30, []string{"a"}},
		{31, []string{"a", "b"}},
		{80, []string{"a", "b"}},
		{81, []string{"a", "b", "c"}},
		{100, []string{"a", "b", "c"}},
	}

	for _, strategy := range sqliteStrategies() {
		for _, tt := range tests {
			t.Run(fmt.Sprintf("%s/%d", strategy.Name(), tt.target), func(t *testing.T) {
				ctx := context.Background()
				store, selector := setup(ctx, t, strategy)
				addABC(ctx, t, store)

				result, err := selector.SelectAndLock(ctx, gbp(tt.target, uuid.New()))
				require.NoError(t, err)
				assert.Equal(t, tt.expected, txIDs(result.Records))
				assert.GreaterOrEqual(t, result.Total, tt.target)
			})
		}
	}
}

func TestFoldRunningTotalDoesNotWrap(t *testing.T) {
	ctx := context.Background()
	store, selector := setup(ctx, t, NewFoldStrategy(SqliteDialect))

	require.NoError(t, store.Add(ctx, state("a", math.MaxInt64-10), state("b", 20), state("c", 5)))

	result, err := selector.SelectAndLock(ctx, gbp(math.MaxInt64, uuid.New()))
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b"}, txIDs(result.Records))
	assert.Equal(t, int64(math.MaxInt64), result.Total)

	c, err := store.Get(ctx, vault.OutputRef{TxID: "c"})
	require.NoError(t, err)
	assert.Nil(t, c.LockID)
}

func TestTerminalOutcomesAreLogged(t *testing.T) {
	ctx := context.Background()
	tSettings := test.CreateBaseTestSettings()

	store, err := vault.New(ctx, ulogger.TestLogger{}, tSettings, nil)
	require.NoError(t, err)

	defer store.Close()

	addABC(ctx, t, store)

	logger := mocklogger.NewTestLogger()
	selector := New(logger, tSettings, store, nil)

	_, err = selector.SelectAndLock(ctx, gbp(40, uuid.New()))
	require.NoError(t, err)
	assert.Equal(t, 0, logger.Calls("Warnf"))

	_, err = selector.SelectAndLock(ctx, gbp(1000, uuid.New()))
	require.True(t, errors.Is(err, errors.ErrInsufficientFunds))
	assert.Equal(t, 1, logger.Calls("Warnf"))

	_, err = selector.SelectAndLock(ctx, nil)
	require.True(t, errors.Is(err, errors.ErrInvalidCriteria))
	assert.Equal(t, 2, logger.Calls("Warnf"))
}

func TestSelectAndLockInsufficientFunds(t *testing.T) {
	for _, strategy := range sqliteStrategies() {
		t.Run(strategy.Name(), func(t *testing.T) {
			ctx := context.Background()
			store, selector := setup(ctx, t, strategy)
			addABC(ctx, t, store)

			result, err := selector.SelectAndLock(ctx, gbp(1000, uuid.New()))
			require.Error(t, err)
			assert.Nil(t, result)
			assert.True(t, errors.Is(err, errors.ErrInsufficientFunds))
			assert.False(t, errors.Is(err, errors.ErrLockContention))

			var tErr *errors.Error
			require.True(t, errors.As(err, &tErr))
			assert.Equal(t, int64(1000), tErr.GetData("target"))
			assert.Equal(t, int64(100), tErr.GetData("available"))

			balance, err := store.Balance(ctx, "GBP")
			require.NoError(t, err)
			assert.Equal(t, int64(100), balance)
		})
	}
}

func TestConcurrentRequesterScenario(t *testing.T) {
	for _, strategy := range sqliteStrategies() {
		t.Run(strategy.Name(), func(t *testing.T) {
			ctx := context.Background()
			store, selector := setup(ctx, t, strategy)
			addABC(ctx, t, store)

			x, y := uuid.New(), uuid.New()

			resultX, err := selector.SelectAndLock(ctx, gbp(60, x))
			require.NoError(t, err)
			assert.Equal(t, []string{"a", "b"}, txIDs(resultX.Records))

			resultY, err := selector.SelectAndLock(ctx, gbp(20, y))
			require.NoError(t, err)
			assert.Equal(t, []string{"c"}, txIDs(resultY.Records))

			_, err = selector.SelectAndLock(ctx, gbp(50, y))
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrInsufficientFunds))

			locked, err := store.LockedBy(ctx, x)
			require.NoError(t, err)
			assert.Equal(t, []string{"a", "b"}, txIDs(locked))

			locked, err = store.LockedBy(ctx, y)
			require.NoError(t, err)
			assert.Equal(t, []string{"c"}, txIDs(locked))
		})
	}
}

func TestSelectAndLockReentry(t *testing.T) {
	for _, strategy := range sqliteStrategies() {
		t.Run(strategy.Name(), func(t *testing.T) {
			ctx := context.Background()
			store, selector := setup(ctx, t, strategy)
			addABC(ctx, t, store)

			x := uuid.New()

			first, err := selector.SelectAndLock(ctx, gbp(40, x))
			require.NoError(t, err)

			again, err := selector.SelectAndLock(ctx, gbp(40, x))
			require.NoError(t, err)
			assert.Equal(t, txIDs(first.Records), txIDs(again.Records))
			assert.Equal(t, 1, again.Attempts)

			more, err := selector.SelectAndLock(ctx, gbp(100, x))
			require.NoError(t, err)
			assert.Equal(t, []string{"a", "b", "c"}, txIDs(more.Records))

			locked, err := store.LockedBy(ctx, x)
			require.NoError(t, err)
			assert.Len(t, locked, 3)
		})
	}
}

func TestRelease(t *testing.T) {
	for _, strategy := range sqliteStrategies() {
		t.Run(strategy.Name(), func(t *testing.T) {
			ctx := context.Background()
			store, selector := setup(ctx, t, strategy)
			addABC(ctx, t, store)

			x, y := uuid.New(), uuid.New()

			_, err := selector.SelectAndLock(ctx, gbp(40, x))
			require.NoError(t, err)

			_, err = selector.SelectAndLock(ctx, gbp(80, y))
			require.True(t, errors.Is(err, errors.ErrInsufficientFunds))

			n, err := selector.Release(ctx, x)
			require.NoError(t, err)
			assert.Equal(t, int64(2), n)

			locked, err := store.LockedBy(ctx, x)
			require.NoError(t, err)
			assert.Empty(t, locked)

			a, err := store.Get(ctx, vault.OutputRef{TxID: "a"})
			require.NoError(t, err)
			assert.Nil(t, a.LockID)
			assert.NotNil(t, a.LockUpdatedAt)

			result, err := selector.SelectAndLock(ctx, gbp(80, y))
			require.NoError(t, err)
			assert.Equal(t, []string{"a", "b"}, txIDs(result.Records))

			n, err = selector.Release(ctx, x)
			require.NoError(t, err)
			assert.Equal(t, int64(0), n)
		})
	}
}

func TestReleaseRefs(t *testing.T) {
	ctx := context.Background()
	store, selector := setup(ctx, t, NewFoldStrategy(SqliteDialect))
	addABC(ctx, t, store)

	x, y := uuid.New(), uuid.New()

	_, err := selector.SelectAndLock(ctx, gbp(100, x))
	require.NoError(t, err)

	// y owns nothing, so nothing is released on its behalf
	n, err := selector.ReleaseRefs(ctx, y, []vault.OutputRef{{TxID: "a"}})
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	n, err = selector.ReleaseRefs(ctx, x, []vault.OutputRef{{TxID: "a"}, {TxID: "c"}})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	locked, err := store.LockedBy(ctx, x)
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, txIDs(locked))
}

func TestSelectAndLockFilters(t *testing.T) {
	for _, strategy := range sqliteStrategies() {
		t.Run(strategy.Name(), func(t *testing.T) {
			ctx := context.Background()
			store, selector := setup(ctx, t, strategy)

			require.NoError(t, store.Add(ctx,
				&vault.StateRecord{Ref: vault.OutputRef{TxID: "a"}, Quantity: 10, Denomination: "GBP", Notary: "n1", IssuerKey: "k1", IssuerRef: []byte{0x01}},
				&vault.StateRecord{Ref: vault.OutputRef{TxID: "b"}, Quantity: 20, Denomination: "GBP", Notary: "n2", IssuerKey: "k1", IssuerRef: []byte{0x02}},
				&vault.StateRecord{Ref: vault.OutputRef{TxID: "c"}, Quantity: 40, Denomination: "GBP", Notary: "n1", IssuerKey: "k2", IssuerRef: []byte{0x01}},
				&vault.StateRecord{Ref: vault.OutputRef{TxID: "d"}, Quantity: 80, Denomination: "USD", Notary: "n1", IssuerKey: "k1", IssuerRef: []byte{0x01}},
				&vault.StateRecord{Ref: vault.OutputRef{TxID: "e"}, Quantity: 160, Denomination: "GBP", Notary: "n1", IssuerKey: "k1", IssuerRef: []byte{0x01}},
			))

			_, err := store.MarkSpent(ctx, vault.OutputRef{TxID: "e"})
			require.NoError(t, err)

			tests := []struct {
				name     string
				criteria *Criteria
				expected []string
			}{
				{"denomination only", &Criteria{Target: 70}, []string{"a", "b", "c"}},
				{"notary", &Criteria{Target: 50, Notary: "n1"}, []string{"a", "c"}},
				{"issuer keys", &Criteria{Target: 30, IssuerKeys: []string{"k1"}}, []string{"a", "b"}},
				{"issuer refs", &Criteria{Target: 50, IssuerRefs: [][]byte{{0x01}}}, []string{"a", "c"}},
				{"several issuer keys", &Criteria{Target: 70, IssuerKeys: []string{"k2", "k1"}}, []string{"a", "b", "c"}},
				{"combined", &Criteria{Target: 20, Notary: "n1", IssuerKeys: []string{"k2"}, IssuerRefs: [][]byte{{0x01}, {0x02}}}, []string{"c"}},
			}

			for _, tt := range tests {
				t.Run(tt.name, func(t *testing.T) {
					c := tt.criteria
					c.Denomination = "GBP"
					c.LockID = uuid.New()

					result, err := selector.SelectAndLock(ctx, c)
					require.NoError(t, err)
					assert.Equal(t, tt.expected, txIDs(result.Records))

					_, err = selector.Release(ctx, c.LockID)
					require.NoError(t, err)
				})
			}

			// the spent state would cover this on its own
			_, err = selector.SelectAndLock(ctx, gbp(100, uuid.New()))
			assert.True(t, errors.Is(err, errors.ErrInsufficientFunds))
		})
	}
}

func TestInvalidCriteriaNeverTouchesStore(t *testing.T) {
	selector := New(ulogger.TestLogger{}, test.CreateBaseTestSettings(), nil, NewRegistry())

	_, err := selector.SelectAndLock(context.Background(), &Criteria{Target: 0, Denomination: "GBP", LockID: uuid.New()})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidCriteria))
}

type countingStore struct {
	*vault.Store
	identityCalls atomic.Int64
}

func (c *countingStore) Identity(ctx context.Context) (vault.StoreIdentity, error) {
	c.identityCalls.Inc()
	return c.Store.Identity(ctx)
}

func TestUnsupportedBackendIsDetectedOnce(t *testing.T) {
	ctx := context.Background()
	tSettings := test.CreateBaseTestSettings()

	store, err := vault.New(ctx, ulogger.TestLogger{}, tSettings, nil)
	require.NoError(t, err)

	defer store.Close()

	counting := &countingStore{Store: store}

	registry := NewRegistry()
	require.NoError(t, registry.Register(EngineIs("postgres"), NewWindowedStrategy(PostgresDialect)))

	selector := New(ulogger.TestLogger{}, tSettings, counting, registry)

	for i := 0; i < 3; i++ {
		_, err = selector.SelectAndLock(ctx, gbp(10, uuid.New()))
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrUnsupportedBackend))
	}

	assert.Equal(t, int64(1), counting.identityCalls.Load())
}

func TestStrategyIsDetectedOnce(t *testing.T) {
	ctx := context.Background()
	tSettings := test.CreateBaseTestSettings()

	store, err := vault.New(ctx, ulogger.TestLogger{}, tSettings, nil)
	require.NoError(t, err)

	defer store.Close()

	counting := &countingStore{Store: store}
	addABC(ctx, t, store)

	selector := New(ulogger.TestLogger{}, tSettings, counting, nil)

	strategy, err := selector.Strategy(ctx)
	require.NoError(t, err)
	assert.Equal(t, "windowed/sqlite", strategy.Name())

	for i := 0; i < 3; i++ {
		_, err = selector.SelectAndLock(ctx, gbp(10, uuid.New()))
		require.NoError(t, err)
	}

	assert.Equal(t, int64(1), counting.identityCalls.Load())
}

// gatedStore holds every Identity call until release is closed and fails while failures is positive.
type gatedStore struct {
	countingStore
	release  chan struct{}
	failures atomic.Int64
}

func (g *gatedStore) Identity(ctx context.Context) (vault.StoreIdentity, error) {
	<-g.release

	if g.failures.Dec() >= 0 {
		g.identityCalls.Inc()
		return vault.StoreIdentity{}, errors.NewStorageUnavailableError("backend restarting")
	}

	return g.countingStore.Identity(ctx)
}

func TestConcurrentFirstCallersShareDetection(t *testing.T) {
	ctx := context.Background()
	tSettings := test.CreateBaseTestSettings()

	store, err := vault.New(ctx, ulogger.TestLogger{}, tSettings, nil)
	require.NoError(t, err)

	defer store.Close()

	gated := &gatedStore{countingStore: countingStore{Store: store}, release: make(chan struct{})}
	selector := New(ulogger.TestLogger{}, tSettings, gated, nil)

	g, gCtx := errgroup.WithContext(ctx)
	names := make([]string, 10)

	for i := range names {
		g.Go(func() error {
			strategy, err := selector.Strategy(gCtx)
			if err != nil {
				return err
			}

			names[i] = strategy.Name()

			return nil
		})
	}

	time.Sleep(20 * time.Millisecond)
	close(gated.release)

	require.NoError(t, g.Wait())

	for _, name := range names {
		assert.Equal(t, "windowed/sqlite", name)
	}

	assert.Equal(t, int64(1), gated.identityCalls.Load())
}

func TestIdentityFailureIsNotCached(t *testing.T) {
	ctx := context.Background()
	tSettings := test.CreateBaseTestSettings()

	store, err := vault.New(ctx, ulogger.TestLogger{}, tSettings, nil)
	require.NoError(t, err)

	defer store.Close()

	gated := &gatedStore{countingStore: countingStore{Store: store}, release: make(chan struct{})}
	gated.failures.Store(1)
	close(gated.release)

	selector := New(ulogger.TestLogger{}, tSettings, gated, nil)

	_, err = selector.Strategy(ctx)
	require.True(t, errors.Is(err, errors.ErrStorageUnavailable))

	strategy, err := selector.Strategy(ctx)
	require.NoError(t, err)
	assert.Equal(t, "windowed/sqlite", strategy.Name())
	assert.Equal(t, int64(2), gated.identityCalls.Load())
}

// interferingStrategy hands another requester the first candidate inside the attempt's own
// transaction whenever interfere says so, which makes the claim come up short.
type interferingStrategy struct {
	Strategy
	interfere func(call int64) bool
	calls     atomic.Int64
}

func (s *interferingStrategy) Select(ctx context.Context, q Querier, c *Criteria) ([]*vault.StateRecord, error) {
	records, err := s.Strategy.Select(ctx, q, c)
	if err != nil {
		return nil, err
	}

	if s.interfere(s.calls.Inc()) {
		first := records[0].Ref
		if _, err = q.ExecContext(ctx, `UPDATE vault_states SET lock_id = $1 WHERE tx_id = $2 AND output_index = $3`,
			uuid.NewString(), first.TxID, int64(first.Index)); err != nil {
			return nil, err
		}
	}

	return records, nil
}

func TestContentionIsRetried(t *testing.T) {
	ctx := context.Background()

	strategy := &interferingStrategy{
		Strategy:  NewFoldStrategy(SqliteDialect),
		interfere: func(call int64) bool { return call == 1 },
	}

	store, selector := setup(ctx, t, strategy)
	addABC(ctx, t, store)

	x := uuid.New()

	result, err := selector.SelectAndLock(ctx, gbp(40, x))
	require.NoError(t, err)
	assert.Equal(t, 2, result.Attempts)
	assert.Equal(t, []string{"a", "b"}, txIDs(result.Records))

	// the interfering claim was rolled back with the failed attempt
	locked, err := store.LockedBy(ctx, x)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, txIDs(locked))
}

func TestContentionExhaustsAttempts(t *testing.T) {
	ctx := context.Background()

	strategy := &interferingStrategy{
		Strategy:  NewWindowedStrategy(SqliteDialect),
		interfere: func(int64) bool { return true },
	}

	store, selector := setup(ctx, t, strategy)
	addABC(ctx, t, store)

	_, err := selector.SelectAndLock(ctx, gbp(40, uuid.New()), WithMaxAttempts(3), WithBackoff(time.Millisecond, 0))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrLockContention))
	assert.False(t, errors.Is(err, errors.ErrInsufficientFunds))
	assert.Contains(t, err.Error(), "gave up after 3 attempts")
	assert.Equal(t, int64(3), strategy.calls.Load())

	balance, err := store.Balance(ctx, "GBP")
	require.NoError(t, err)
	assert.Equal(t, int64(100), balance)
}

func TestSelectAndLockHonoursContext(t *testing.T) {
	ctx := context.Background()
	store, selector := setup(ctx, t, NewFoldStrategy(SqliteDialect))
	addABC(ctx, t, store)

	_, err := selector.Strategy(ctx)
	require.NoError(t, err)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()

	_, err = selector.SelectAndLock(cancelled, gbp(40, uuid.New()))
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)

	balance, err := store.Balance(ctx, "GBP")
	require.NoError(t, err)
	assert.Equal(t, int64(100), balance)
}

func TestWithLock(t *testing.T) {
	ctx := context.Background()
	store, selector := setup(ctx, t, NewWindowedStrategy(SqliteDialect))
	addABC(ctx, t, store)

	t.Run("success keeps the claim", func(t *testing.T) {
		x := uuid.New()

		err := selector.WithLock(ctx, gbp(20, x), func(_ context.Context, result *Result) error {
			assert.Equal(t, []string{"a"}, txIDs(result.Records))
			return nil
		})
		require.NoError(t, err)

		locked, err := store.LockedBy(ctx, x)
		require.NoError(t, err)
		assert.Len(t, locked, 1)

		_, err = selector.Release(ctx, x)
		require.NoError(t, err)
	})

	t.Run("failure releases the claim", func(t *testing.T) {
		x := uuid.New()
		flowErr := errors.NewProcessingError("counterparty rejected")

		err := selector.WithLock(ctx, gbp(40, x), func(context.Context, *Result) error {
			return flowErr
		})
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrProcessing))

		locked, err := store.LockedBy(ctx, x)
		require.NoError(t, err)
		assert.Empty(t, locked)
	})

	t.Run("cancellation releases the claim", func(t *testing.T) {
		x := uuid.New()
		flowCtx, cancel := context.WithCancel(ctx)

		err := selector.WithLock(flowCtx, gbp(40, x), func(context.Context, *Result) error {
			cancel()
			return nil
		})
		require.ErrorIs(t, err, context.Canceled)

		locked, err := store.LockedBy(ctx, x)
		require.NoError(t, err)
		assert.Empty(t, locked)
	})

	t.Run("selection failure skips fn", func(t *testing.T) {
		called := false

		err := selector.WithLock(ctx, gbp(1000, uuid.New()), func(context.Context, *Result) error {
			called = true
			return nil
		})
		assert.True(t, errors.Is(err, errors.ErrInsufficientFunds))
		assert.False(t, called)
	})
}

func TestSelectorFileBackedSqlite(t *testing.T) {
	ctx := context.Background()

	tSettings := test.CreateBaseTestSettings()
	tSettings.DataFolder = t.TempDir()
	tSettings.Vault.StoreURL = &url.URL{Scheme: "sqlite", Path: "/vault"}

	store, selector := setupWithSettings(ctx, t, tSettings, NewWindowedStrategy(SqliteDialect))
	addABC(ctx, t, store)

	result, err := selector.SelectAndLock(ctx, gbp(40, uuid.New()))
	require.NoError(t, err)
	assert.Equal(t, int64(80), result.Total)
}
