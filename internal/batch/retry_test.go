package batch

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/lawbench/casetriage/internal/analysis"
)

func TestRetryPolicy_ShouldRetry(t *testing.T) {
	t.Parallel()

	transient := analysis.Transient("connection reset", errors.New("reset"))
	rateLimited := analysis.RateLimited("429", nil)
	fatal := analysis.Fatal("bad api key", nil)

	t.Run("transient failures retried until budget spent", func(t *testing.T) {
		t.Parallel()

		policy := RetryPolicy{MaxRetries: 2, BaseDelay: time.Millisecond}

		assert.True(t, policy.ShouldRetry(1, transient))
		assert.True(t, policy.ShouldRetry(2, transient))
		assert.False(t, policy.ShouldRetry(3, transient), "budget of 2 retries allows 3 attempts total")
	})

	t.Run("rate limited failures are retryable", func(t *testing.T) {
		t.Parallel()

		policy := RetryPolicy{MaxRetries: 1, BaseDelay: time.Millisecond}
		assert.True(t, policy.ShouldRetry(1, rateLimited))
	})

	t.Run("fatal failures never retried", func(t *testing.T) {
		t.Parallel()

		policy := RetryPolicy{MaxRetries: 5, BaseDelay: time.Millisecond}
		assert.False(t, policy.ShouldRetry(1, fatal))
	})

	t.Run("zero budget makes every failure terminal", func(t *testing.T) {
		t.Parallel()

		policy := RetryPolicy{MaxRetries: 0, BaseDelay: time.Millisecond}
		assert.False(t, policy.ShouldRetry(1, transient))
	})

	t.Run("unclassified errors are treated as transient", func(t *testing.T) {
		t.Parallel()

		policy := RetryPolicy{MaxRetries: 1, BaseDelay: time.Millisecond}
		assert.True(t, policy.ShouldRetry(1, errors.New("socket closed")))
	})
}

func TestRetryPolicy_Backoff(t *testing.T) {
	t.Parallel()

	policy := RetryPolicy{MaxRetries: 3, BaseDelay: 100 * time.Millisecond}

	assert.Equal(t, 100*time.Millisecond, policy.Backoff(1))
	assert.Equal(t, 200*time.Millisecond, policy.Backoff(2))
	assert.Equal(t, 400*time.Millisecond, policy.Backoff(3))

	// Out-of-range attempt numbers are clamped rather than producing a
	// zero or negative wait.
	assert.Equal(t, 100*time.Millisecond, policy.Backoff(0))
}

func TestRetryPolicy_BackoffSaturatesInsteadOfOverflowing(t *testing.T) {
	t.Parallel()

	policy := RetryPolicy{MaxRetries: 1 << 30, BaseDelay: time.Second}

	// With a one second base, doubling overflows int64 around attempt 63.
	// The delay must stay positive and monotone however large n gets.
	previous := policy.Backoff(1)
	for _, n := range []int{2, 32, 62, 63, 64, 100, 1 << 20} {
		delay := policy.Backoff(n)
		assert.Positive(t, delay, "attempt %d", n)
		assert.GreaterOrEqual(t, delay, previous, "attempt %d", n)
		previous = delay
	}

	assert.Equal(t, time.Duration(math.MaxInt64), policy.Backoff(1<<20))
}

func TestDefaultRetryPolicy(t *testing.T) {
	t.Parallel()

	policy := DefaultRetryPolicy()
	assert.Equal(t, 1, policy.MaxRetries)
	assert.Equal(t, 2*time.Second, policy.BaseDelay)
}
