package selection

import (
	"context"
	"sync"
	"time"

	"github.com/bsv-blockchain/utxolock/errors"
	"github.com/bsv-blockchain/utxolock/settings"
	"github.com/bsv-blockchain/utxolock/stores/vault"
	"github.com/bsv-blockchain/utxolock/ulogger"
	"github.com/bsv-blockchain/utxolock/util"
	"github.com/bsv-blockchain/utxolock/util/retry"
	"github.com/bsv-blockchain/utxolock/util/tracing"
	"github.com/bsv-blockchain/utxolock/util/usql"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/singleflight"
)

// Store is the part of the vault store the selector needs.
type Store interface {
	DB() *usql.DB
	Identity(ctx context.Context) (vault.StoreIdentity, error)
}

// Result is a successful selection. Records are claimed by LockID and in scan order.
type Result struct {
	Records  []*vault.StateRecord `json:"records"`
	Total    int64                `json:"total"`
	LockID   uuid.UUID            `json:"lockId"`
	Attempts int                  `json:"attempts"`
}

type callOptions struct {
	maxAttempts        int
	backoffMultiplier  int
	backoffDuration    time.Duration
	exponentialBackoff bool
	backoffFactor      float64
	maxBackoff         time.Duration
}

// Option overrides the configured retry policy for one call.
type Option func(*callOptions)

func WithMaxAttempts(n int) Option {
	return func(o *callOptions) {
		o.maxAttempts = n
	}
}

// WithBackoff sleeps (multiplier*retry + 1) * duration between attempts.
func WithBackoff(duration time.Duration, multiplier int) Option {
	return func(o *callOptions) {
		o.backoffDuration = duration
		o.backoffMultiplier = multiplier
		o.exponentialBackoff = false
	}
}

// WithExponentialBackoff doubles the sleep after every attempt, starting at initial, up to max.
func WithExponentialBackoff(initial, maxBackoff time.Duration) Option {
	return func(o *callOptions) {
		o.backoffDuration = initial
		o.maxBackoff = maxBackoff
		o.exponentialBackoff = true
	}
}

// Selector coordinates select, claim and retry against one store. It keeps no state between
// calls apart from the strategy detected for the store.
type Selector struct {
	logger    ulogger.Logger
	settings  *settings.Settings
	store     Store
	registry  *Registry
	detection singleflight.Group
	mu        sync.RWMutex
	strategy  Strategy
	detectErr error
}

// New returns a selector for store. A nil registry means the process wide DefaultRegistry.
func New(logger ulogger.Logger, tSettings *settings.Settings, store Store, registry *Registry) *Selector {
	initPrometheusMetrics()

	if registry == nil {
		registry = DefaultRegistry()
	}

	return &Selector{
		logger:   logger,
		settings: tSettings,
		store:    store,
		registry: registry,
	}
}

// Strategy detects the strategy for the store on first use. Concurrent first callers share one
// detection. A backend no strategy serves is remembered; failing to ask the backend what it is
// is not.
func (s *Selector) Strategy(ctx context.Context) (Strategy, error) {
	if strategy, done, err := s.detected(); done {
		return strategy, err
	}

	v, err, _ := s.detection.Do("detect", func() (interface{}, error) {
		if strategy, done, err := s.detected(); done {
			return strategy, err
		}

		id, err := s.store.Identity(ctx)
		if err != nil {
			return nil, err
		}

		strategy, err := s.registry.Detect(id)

		s.mu.Lock()
		defer s.mu.Unlock()

		if err != nil {
			s.detectErr = err
			return nil, err
		}

		s.logger.Infof("[Selector] using %s selection for %s", strategy.Name(), id)

		s.strategy = strategy

		return strategy, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(Strategy), nil
}

func (s *Selector) detected() (Strategy, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.strategy != nil {
		return s.strategy, true, nil
	}

	if s.detectErr != nil {
		return nil, true, s.detectErr
	}

	return nil, false, nil
}

func (s *Selector) callOptions(opts []Option) *callOptions {
	o := &callOptions{
		maxAttempts:        s.settings.Selection.MaxAttempts,
		backoffMultiplier:  s.settings.Selection.BackoffMultiplier,
		backoffDuration:    s.settings.Selection.BackoffDuration,
		exponentialBackoff: s.settings.Selection.ExponentialBackoff,
		backoffFactor:      s.settings.Selection.BackoffFactor,
		maxBackoff:         s.settings.Selection.MaxBackoff,
	}

	for _, opt := range opts {
		opt(o)
	}

	if o.backoffFactor <= 1 {
		o.backoffFactor = 2
	}

	return o
}

// SelectAndLock picks states covering c.Target and claims them for c.LockID. It fails with
// InsufficientFunds when the matching supply is short and with LockContention when every attempt
// lost its claim to other requesters. On failure nothing is claimed.
func (s *Selector) SelectAndLock(ctx context.Context, c *Criteria, opts ...Option) (result *Result, err error) {
	defer func() {
		if errors.IsTerminalSelectionError(err) {
			s.logger.Warnf("[SelectAndLock] selection ended without a claim: %v", err)
		}
	}()

	if err = c.Validate(); err != nil {
		prometheusSelectionInvalid.Inc()
		return nil, err
	}

	ctx, _, endSpan := tracing.Start(ctx, "Selector:SelectAndLock",
		attribute.String("denomination", c.Denomination),
		attribute.Int64("target", c.Target),
		attribute.String("lock_id", c.LockID.String()),
	)

	start, stat, ctx := util.StartStatFromContext(ctx, "SelectAndLock")

	defer func() {
		endSpan(err)
		stat.AddTime(start)
		prometheusSelectionDuration.Observe(time.Since(start).Seconds())
	}()

	strategy, err := s.Strategy(ctx)
	if err != nil {
		return nil, err
	}

	o := s.callOptions(opts)

	retryOpts := []retry.Options{
		retry.WithRetryCount(o.maxAttempts),
		retry.WithBackoffMultiplier(o.backoffMultiplier),
		retry.WithBackoffDurationType(o.backoffDuration),
		retry.WithBackoffFactor(o.backoffFactor),
		retry.WithMaxBackoff(o.maxBackoff),
		retry.WithMessage("[SelectAndLock] " + c.LockID.String() + " lost a claim, retrying"),
		retry.WithRetryIf(errors.IsRetryableError),
	}

	if o.exponentialBackoff {
		retryOpts = append(retryOpts, retry.WithExponentialBackoff())
	}

	attempts := 0

	result, err = retry.Retry(ctx, s.logger, func() (*Result, error) {
		attempts++
		prometheusSelectionAttempts.Inc()

		s.logger.Debugf("[SelectAndLock] %s attempt %d for %d %s", c.LockID, attempts, c.Target, c.Denomination)

		r, attemptErr := s.attempt(ctx, strategy, c)
		if errors.Is(attemptErr, errors.ErrLockContention) {
			prometheusSelectionContention.Inc()
		}

		return r, attemptErr
	}, retryOpts...)

	if err != nil {
		switch {
		case errors.Is(err, errors.ErrInsufficientFunds):
			prometheusSelectionInsufficient.Inc()
			return nil, err
		case errors.Is(err, errors.ErrLockContention):
			return nil, errors.NewLockContentionError("[SelectAndLock] %s gave up after %d attempts", c.LockID, attempts, err)
		default:
			return nil, err
		}
	}

	result.Attempts = attempts

	prometheusSelectionSuccess.Inc()
	prometheusSelectionStates.Observe(float64(len(result.Records)))

	s.logger.Infof("[SelectAndLock] %s claimed %d states worth %d %s in %d attempts", c.LockID, len(result.Records), result.Total, c.Denomination, attempts)

	return result, nil
}

// attempt runs one select and claim in its own transaction. Every exit path other than a
// successful commit rolls back, so a failed attempt leaves no partial claim.
func (s *Selector) attempt(ctx context.Context, strategy Strategy, c *Criteria) (*Result, error) {
	start, stat, ctx := util.StartStatFromContext(ctx, "attempt")
	defer func() {
		stat.AddTime(start)
	}()

	txn, err := s.store.DB().BeginTx(ctx, strategy.TxOptions())
	if err != nil {
		return nil, classify(err, "begin")
	}

	defer func() {
		_ = txn.Rollback()
	}()

	records, err := strategy.Select(ctx, txn, c)
	if err != nil {
		return nil, classify(err, "select")
	}

	refs := vault.Refs(records)

	claimed, err := Claim(ctx, txn, refs, c.LockID)
	if err != nil {
		return nil, classify(err, "claim")
	}

	if !claimed {
		return nil, errors.NewLockContentionError("[SelectAndLock] another requester claimed part of %d candidate states", len(refs))
	}

	if err = txn.Commit(); err != nil {
		return nil, classify(err, "commit")
	}

	lockedAt := now()

	for _, r := range records {
		lockID := c.LockID
		r.LockID = &lockID
		r.LockUpdatedAt = &lockedAt
	}

	return &Result{
		Records: records,
		Total:   vault.Sum(records),
		LockID:  c.LockID,
	}, nil
}

// Release clears every soft lock held by lockID.
func (s *Selector) Release(ctx context.Context, lockID uuid.UUID) (n int64, err error) {
	ctx, _, endSpan := tracing.Start(ctx, "Selector:Release", attribute.String("lock_id", lockID.String()))
	defer func() {
		endSpan(err)
	}()

	n, err = Release(ctx, s.store.DB(), lockID)
	if err != nil {
		return 0, errors.NewStorageError("[Release] failed to release states locked by %s", lockID, err)
	}

	prometheusReleasedStates.Add(float64(n))
	s.logger.Infof("[Release] %s released %d states", lockID, n)

	return n, nil
}

// ReleaseRefs clears the soft lock lockID holds on refs.
func (s *Selector) ReleaseRefs(ctx context.Context, lockID uuid.UUID, refs []vault.OutputRef) (n int64, err error) {
	ctx, _, endSpan := tracing.Start(ctx, "Selector:ReleaseRefs",
		attribute.String("lock_id", lockID.String()),
		attribute.Int("refs", len(refs)),
	)
	defer func() {
		endSpan(err)
	}()

	n, err = ReleaseRefs(ctx, s.store.DB(), lockID, refs)
	if err != nil {
		return 0, errors.NewStorageError("[ReleaseRefs] failed to release %d states locked by %s", len(refs), lockID, err)
	}

	prometheusReleasedStates.Add(float64(n))
	s.logger.Infof("[ReleaseRefs] %s released %d of %d states", lockID, n, len(refs))

	return n, nil
}

// WithLock selects and claims states for c, then runs fn with them. If fn fails or ctx is done
// by the time it returns, the states claimed by this call are released before returning.
func (s *Selector) WithLock(ctx context.Context, c *Criteria, fn func(ctx context.Context, result *Result) error, opts ...Option) error {
	result, err := s.SelectAndLock(ctx, c, opts...)
	if err != nil {
		return err
	}

	fnErr := fn(ctx, result)
	if fnErr == nil {
		fnErr = ctx.Err()
	}

	if fnErr == nil {
		return nil
	}

	// ctx may already be done, the release must still reach the store
	releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.releaseTimeout())
	defer cancel()

	if _, releaseErr := s.ReleaseRefs(releaseCtx, c.LockID, vault.Refs(result.Records)); releaseErr != nil {
		s.logger.Errorf("[WithLock] %s failed to release after abort: %v", c.LockID, releaseErr)
		return errors.Join(fnErr, releaseErr)
	}

	return fnErr
}

func (s *Selector) releaseTimeout() time.Duration {
	if s.settings.Vault.DBTimeout > 0 {
		return s.settings.Vault.DBTimeout
	}

	return 5 * time.Second
}
