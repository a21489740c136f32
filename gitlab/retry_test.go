package gitlab

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetryDoExhaustsAttempts(t *testing.T) {
	failure := errors.New("transport broke")
	attempts := 0
	policy := RetryPolicy{MaxAttempts: 3, Interval: time.Millisecond}

	_, err := retryDo(context.Background(), policy, func() (int, error) {
		attempts++
		return 0, failure
	})

	assert.Equal(t, 3, attempts)
	assert.ErrorIs(t, err, failure)
}

func TestRetryDoNonRetryableFailsImmediately(t *testing.T) {
	failure := errors.New("bad request construction")
	attempts := 0
	policy := RetryPolicy{
		MaxAttempts: 5,
		Interval:    time.Millisecond,
		Retryable:   func(error) bool { return false },
	}

	_, err := retryDo(context.Background(), policy, func() (int, error) {
		attempts++
		return 0, failure
	})

	assert.Equal(t, 1, attempts)
	assert.ErrorIs(t, err, failure)
}

func TestRetryDoStopsOnSuccess(t *testing.T) {
	attempts := 0
	policy := RetryPolicy{MaxAttempts: 4, Interval: time.Millisecond}

	got, err := retryDo(context.Background(), policy, func() (string, error) {
		attempts++
		if attempts < 3 {
			return "", errors.New("flaky")
		}
		return "ok", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "ok", got)
	assert.Equal(t, 3, attempts)
}

func TestRetryDoPredicateSelectsFailures(t *testing.T) {
	retryable := errors.New("transient")
	fatal := errors.New("fatal")
	attempts := 0
	policy := RetryPolicy{
		MaxAttempts: 5,
		Interval:    time.Millisecond,
		Retryable:   func(err error) bool { return errors.Is(err, retryable) },
	}

	_, err := retryDo(context.Background(), policy, func() (int, error) {
		attempts++
		if attempts < 2 {
			return 0, retryable
		}
		return 0, fatal
	})

	assert.Equal(t, 2, attempts)
	assert.ErrorIs(t, err, fatal)
}

func TestRetryDoZeroAttemptsTreatedAsOne(t *testing.T) {
	attempts := 0
	policy := RetryPolicy{MaxAttempts: 0, Interval: time.Millisecond}

	_, err := retryDo(context.Background(), policy, func() (int, error) {
		attempts++
		return 0, errors.New("nope")
	})

	require.Error(t, err)
	assert.Equal(t, 1, attempts)
}

func TestRetryDoWaitsBetweenAttempts(t *testing.T) {
	const interval = 20 * time.Millisecond
	policy := RetryPolicy{MaxAttempts: 3, Interval: interval}

	start := time.Now()
	_, err := retryDo(context.Background(), policy, func() (int, error) {
		return 0, errors.New("always")
	})
	elapsed := time.Since(start)

	require.Error(t, err)
	// Two waits separate three attempts.
	assert.GreaterOrEqual(t, elapsed, 2*interval)
}
