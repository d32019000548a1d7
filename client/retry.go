package client

import (
	"context"
	"math/rand"
	"time"
)

type RetryOptions struct {
	// MaxAttempts counts the first try. Defaults to 3.
	MaxAttempts int
	// BaseDelay is doubled on each further attempt. Defaults to 1s.
	BaseDelay time.Duration
	// MaxJitter is added uniformly at random to every delay to avoid
	// synchronized retry storms. Defaults to 1s.
	MaxJitter time.Duration
}

func (o RetryOptions) withDefaults() RetryOptions {
	if o.MaxAttempts <= 0 {
		o.MaxAttempts = 3
	}
	if o.BaseDelay <= 0 {
		o.BaseDelay = 1 * time.Second
	}
	if o.MaxJitter <= 0 {
		o.MaxJitter = 1 * time.Second
	}
	return o
}

// WithRetry runs op up to opts.MaxAttempts times with exponential backoff,
// retrying only failures IsTransientServerError classifies as transient.
// Any other failure propagates immediately; the last error is returned
// once attempts are exhausted.
func WithRetry[T any](ctx context.Context, op func(ctx context.Context) (T, error), opts RetryOptions) (T, error) {
	opts = opts.withDefaults()

	var zero T
	var lastErr error

	for attempt := 1; attempt <= opts.MaxAttempts; attempt++ {
		v, err := op(ctx)
		if err == nil {
			return v, nil
		}
		lastErr = err

		if attempt == opts.MaxAttempts || !IsTransientServerError(err) {
			return zero, err
		}

		delay := opts.BaseDelay<<(attempt-1) + time.Duration(rand.Int63n(int64(opts.MaxJitter)))
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return zero, ctx.Err()
		}
	}

	return zero, lastErr
}
