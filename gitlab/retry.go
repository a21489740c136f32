package gitlab

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v5"
)

const (
	// DefaultMaxAttempts performs a single attempt (no retry).
	DefaultMaxAttempts = 1

	// DefaultRetryInterval is the default wait between attempts.
	DefaultRetryInterval = 1 * time.Second
)

// RetryPolicy wraps a single fallible operation with a bounded-attempt,
// constant-interval retry. The policy guards transport failures only;
// server error responses never reach it as errors.
type RetryPolicy struct {
	// MaxAttempts is the total number of attempts, including the first.
	// Values below 1 are treated as 1.
	MaxAttempts int
	// Interval is the wait between attempts. The wait blocks the
	// calling goroutine.
	Interval time.Duration
	// Retryable decides whether a particular failure is worth another
	// attempt. A nil predicate retries every failure the policy sees.
	Retryable func(error) bool
}

func (p RetryPolicy) attempts() uint {
	if p.MaxAttempts < 1 {
		return 1
	}
	return uint(p.MaxAttempts)
}

func (p RetryPolicy) interval() time.Duration {
	if p.Interval <= 0 {
		return DefaultRetryInterval
	}
	return p.Interval
}

// retryDo executes op under the policy. Non-retryable failures propagate
// on first occurrence; on exhaustion the last failure propagates
// unchanged.
func retryDo[T any](ctx context.Context, p RetryPolicy, op func() (T, error)) (T, error) {
	wrapped := func() (T, error) {
		v, err := op()
		if err != nil && p.Retryable != nil && !p.Retryable(err) {
			return v, backoff.Permanent(err)
		}
		return v, err
	}
	return backoff.Retry(ctx, wrapped,
		backoff.WithBackOff(backoff.NewConstantBackOff(p.interval())),
		backoff.WithMaxTries(p.attempts()),
	)
}
