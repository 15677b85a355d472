package resilience

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/avast/retry-go"

	"github.com/LavishGent/wordbook/internal/config"
	"github.com/LavishGent/wordbook/internal/types"
)

// Retryer reruns provider calls that failed transiently, waiting a
// linearly increasing delay between attempts: attempt n waits n times
// the base delay. Authentication, rate-limit and permanent failures
// abort immediately.
type Retryer struct {
	maxRetries int
	delay      time.Duration
	logger     *slog.Logger

	totalRetries atomic.Int64
	totalSuccess atomic.Int64
	totalFailure atomic.Int64
}

// NewRetryer creates a retryer from the lookup configuration. A nil
// logger defaults to slog.Default().
func NewRetryer(cfg config.LookupConfig, logger *slog.Logger) *Retryer {
	if logger == nil {
		logger = slog.Default()
	}

	r := &Retryer{
		maxRetries: cfg.MaxRetries,
		delay:      cfg.RetryDelay,
		logger:     logger.With("component", "retryer"),
	}

	if r.maxRetries < 0 {
		r.maxRetries = 0
	}
	if r.delay <= 0 {
		r.delay = 1 * time.Second
	}

	return r
}

// Do runs fn, retrying transient failures up to MaxRetries additional
// times. The error returned is the last error fn produced, except when
// the context ended first, in which case the context's error wins.
func (r *Retryer) Do(ctx context.Context, fn func(context.Context) error) error {
	var lastErr error

	err := retry.Do(
		func() error {
			callErr := fn(ctx)
			if callErr != nil {
				lastErr = callErr
				if !types.IsRetryable(callErr) {
					return retry.Unrecoverable(callErr)
				}
			}
			return callErr
		},
		retry.Context(ctx),
		retry.Attempts(uint(r.maxRetries)+1),
		retry.LastErrorOnly(true),
		retry.DelayType(func(n uint, _ error, _ *retry.Config) time.Duration {
			return time.Duration(n+1) * r.delay
		}),
		retry.OnRetry(func(n uint, err error) {
			r.totalRetries.Add(1)
			r.logger.Debug("Retrying transient failure", "attempt", n+1, "error", err)
		}),
	)

	if err == nil {
		r.totalSuccess.Add(1)
		return nil
	}

	r.totalFailure.Add(1)

	// retry-go wraps unrecoverable errors without an Unwrap, so the
	// caller's errors.Is classification needs the captured original.
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if lastErr != nil {
		return lastErr
	}
	return err
}

// Stats returns cumulative retry, success and failure counts.
func (r *Retryer) Stats() (retries, success, failure int64) {
	return r.totalRetries.Load(), r.totalSuccess.Load(), r.totalFailure.Load()
}

// Reset zeroes the statistics.
func (r *Retryer) Reset() {
	r.totalRetries.Store(0)
	r.totalSuccess.Store(0)
	r.totalFailure.Store(0)
}
