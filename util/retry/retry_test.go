package retry

import (
	"context"
	"testing"
	"time"

	"github.com/bsv-blockchain/utxolock/errors"
	"github.com/bsv-blockchain/utxolock/util/test/mocklogger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetry(t *testing.T) {
	logger := mocklogger.NewTestLogger()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	successFn := func() (string, error) {
		return "success", nil
	}

	staticCallCount := 0
	retryOnceFn := func() (string, error) {
		if staticCallCount == 0 {
			staticCallCount++
			return "", errors.NewLockContentionError("claimed 1 of 2 rows")
		}

		return "success", nil
	}

	alwaysFailFn := func() (string, error) {
		return "", errors.NewLockContentionError("persistent contention")
	}

	// Function succeeds on the first try
	result, err := Retry(ctx, logger, successFn, WithRetryCount(3), WithBackoffDurationType(time.Millisecond))
	require.NoError(t, err)
	assert.Equal(t, "success", result)
	logger.AssertNumberOfCalls(t, "Warnf", 0)
	logger.Reset()

	// exponential backoff with cap
	result, err = Retry(ctx, logger, retryOnceFn,
		WithExponentialBackoff(),
		WithBackoffDurationType(5*time.Millisecond),
		WithBackoffFactor(2.0),
		WithMaxBackoff(20*time.Millisecond),
		WithRetryCount(3))
	require.NoError(t, err)
	assert.Equal(t, "success", result)
	logger.AssertNumberOfCalls(t, "Warnf", 1)
	logger.Reset()

	// infinite retry until the context expires
	timeoutCtx, timeoutCancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer timeoutCancel()

	_, err = Retry(timeoutCtx, logger, alwaysFailFn,
		WithInfiniteRetry(),
		WithExponentialBackoff(),
		WithBackoffDurationType(5*time.Millisecond))
	require.Error(t, err)
	assert.Equal(t, context.DeadlineExceeded, err)
}

func TestRetryIf(t *testing.T) {
	logger := mocklogger.NewTestLogger()

	calls := 0
	insufficient := func() (int, error) {
		calls++
		return 0, errors.NewInsufficientFundsError(100, 10, "short")
	}

	_, err := Retry(context.Background(), logger, insufficient,
		WithRetryCount(5),
		WithBackoffDurationType(time.Millisecond),
		WithRetryIf(errors.IsRetryableError))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInsufficientFunds))
	assert.Equal(t, 1, calls)
	logger.AssertNumberOfCalls(t, "Warnf", 0)
}

func TestRetryExhausted(t *testing.T) {
	originalSleepFunc := sleepFunc
	defer func() { sleepFunc = originalSleepFunc }()

	var recordedSleeps []time.Duration
	sleepFunc = func(_ context.Context, d time.Duration) error {
		recordedSleeps = append(recordedSleeps, d)
		return nil
	}

	calls := 0
	_, err := Retry(context.Background(), mocklogger.NewTestLogger(), func() (struct{}, error) {
		calls++
		return struct{}{}, errors.NewLockContentionError("attempt %d", calls)
	}, WithRetryCount(3), WithBackoffMultiplier(1), WithBackoffDurationType(time.Millisecond))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "attempt 3")
	assert.Equal(t, 3, calls)
	assert.Equal(t, []time.Duration{time.Millisecond, 2 * time.Millisecond}, recordedSleeps)
}

func TestRetryZeroCountStillCallsOnce(t *testing.T) {
	calls := 0
	_, err := Retry(context.Background(), mocklogger.NewTestLogger(), func() (int, error) {
		calls++
		return 1, nil
	}, WithRetryCount(0))

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestCappedExponentialBackoff(t *testing.T) {
	backoff := CappedExponentialBackoff(100*time.Millisecond, 2.0, 1*time.Second)
	assert.Equal(t, 200*time.Millisecond, backoff)

	backoff = CappedExponentialBackoff(600*time.Millisecond, 2.0, 1*time.Second)
	assert.Equal(t, 1*time.Second, backoff)

	backoff = CappedExponentialBackoff(100*time.Millisecond, 1.5, 1*time.Second)
	assert.Equal(t, 150*time.Millisecond, backoff)
}

func TestBackoffAndSleep(t *testing.T) {
	t.Run("cancels on context cancellation", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())

		done := make(chan error, 1)
		go func() {
			done <- BackoffAndSleep(ctx, 2, 1, 100*time.Millisecond)
		}()

		time.Sleep(10 * time.Millisecond)
		cancel()

		select {
		case err := <-done:
			assert.Equal(t, context.Canceled, err)
		case <-time.After(time.Second):
			t.Fatal("BackoffAndSleep did not cancel in time")
		}
	})

	t.Run("respects backoff calculation", func(t *testing.T) {
		originalSleepFunc := sleepFunc
		defer func() { sleepFunc = originalSleepFunc }()

		var recordedDuration time.Duration
		sleepFunc = func(_ context.Context, d time.Duration) error {
			recordedDuration = d
			return nil
		}

		tests := []struct {
			retries    int
			multiplier int
			duration   time.Duration
			expected   time.Duration
		}{
			{0, 1, time.Second, 1 * time.Second},            // (0*1)+1 = 1
			{1, 2, time.Second, 3 * time.Second},            // (1*2)+1 = 3
			{3, 3, time.Second, 10 * time.Second},           // (3*3)+1 = 10
			{2, 5, time.Millisecond, 11 * time.Millisecond}, // (2*5)+1 = 11
		}

		for _, tc := range tests {
			err := BackoffAndSleep(context.Background(), tc.retries, tc.multiplier, tc.duration)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, recordedDuration)
		}
	})
}
