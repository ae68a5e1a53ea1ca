package retry

import (
	"context"
	"time"

	"github.com/bsv-blockchain/utxolock/ulogger"
)

type SetOptions struct {
	RetryCount          int
	BackoffMultiplier   int
	BackoffDurationType time.Duration
	Message             string
	InfiniteRetry       bool
	ExponentialBackoff  bool
	BackoffFactor       float64
	MaxBackoff          time.Duration
	RetryIf             func(error) bool
}

type Options func(*SetOptions)

func WithRetryCount(retryCount int) Options {
	return func(o *SetOptions) {
		o.RetryCount = retryCount
	}
}

func WithBackoffMultiplier(backoffMultiplier int) Options {
	return func(o *SetOptions) {
		o.BackoffMultiplier = backoffMultiplier
	}
}

func WithBackoffDurationType(backoffDurationType time.Duration) Options {
	return func(o *SetOptions) {
		o.BackoffDurationType = backoffDurationType
	}
}

func WithMessage(message string) Options {
	return func(o *SetOptions) {
		o.Message = message
	}
}

func WithInfiniteRetry() Options {
	return func(o *SetOptions) {
		o.InfiniteRetry = true
	}
}

func WithExponentialBackoff() Options {
	return func(o *SetOptions) {
		o.ExponentialBackoff = true
	}
}

func WithBackoffFactor(factor float64) Options {
	return func(o *SetOptions) {
		o.BackoffFactor = factor
	}
}

func WithMaxBackoff(maxBackoff time.Duration) Options {
	return func(o *SetOptions) {
		o.MaxBackoff = maxBackoff
	}
}

// WithRetryIf limits retries to errors for which fn returns true. Any other error is
// returned to the caller straight away.
func WithRetryIf(fn func(error) bool) Options {
	return func(o *SetOptions) {
		o.RetryIf = fn
	}
}

func defaultOptions() *SetOptions {
	return &SetOptions{
		RetryCount:          3,
		BackoffMultiplier:   2,
		BackoffDurationType: time.Second,
		Message:             "retrying",
		BackoffFactor:       2.0,
		MaxBackoff:          30 * time.Second,
	}
}

// Retry calls f until it succeeds, the attempts run out or the context is done.
// RetryCount is the total number of calls to f; there is no sleep after the last one.
// Returns the result of the successful call, or the last error.
func Retry[T any](ctx context.Context, logger ulogger.Logger, f func() (T, error), opts ...Options) (T, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	if o.RetryCount < 1 {
		o.RetryCount = 1
	}

	var (
		result T
		err    error
	)

	backoff := o.BackoffDurationType

	for i := 0; o.InfiniteRetry || i < o.RetryCount; i++ {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return result, ctxErr
		}

		result, err = f()
		if err == nil {
			return result, nil
		}

		if o.RetryIf != nil && !o.RetryIf(err) {
			return result, err
		}

		if !o.InfiniteRetry && i == o.RetryCount-1 {
			break
		}

		logger.Warnf("%s (attempt %d): %v", o.Message, i+1, err)

		if o.ExponentialBackoff {
			if sleepErr := sleepFunc(ctx, backoff); sleepErr != nil {
				return result, sleepErr
			}

			backoff = CappedExponentialBackoff(backoff, o.BackoffFactor, o.MaxBackoff)
		} else if sleepErr := BackoffAndSleep(ctx, i, o.BackoffMultiplier, o.BackoffDurationType); sleepErr != nil {
			return result, sleepErr
		}
	}

	return result, err
}
