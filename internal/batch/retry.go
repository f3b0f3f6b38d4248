package batch

import (
	"math"
	"time"

	"github.com/lawbench/casetriage/internal/analysis"
)

// RetryPolicy decides whether a failed attempt is retried and how long to
// wait before the next one. It is a pure value type with no shared state,
// so it can be evaluated concurrently from every item chain.
type RetryPolicy struct {
	// MaxRetries is the number of retries after the first attempt.
	// Zero means every failure is terminal after attempt one.
	MaxRetries int

	// BaseDelay is the wait before the first retry; subsequent waits
	// double each time.
	BaseDelay time.Duration
}

// DefaultRetryPolicy returns the policy used when none is configured:
// a single retry with a two second base delay.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries: 1,
		BaseDelay:  2 * time.Second,
	}
}

// ShouldRetry reports whether attempt n (1-based) that failed with err
// should be followed by another attempt. Fatal failures are never retried;
// transient and rate-limited failures are retried until the budget is spent.
func (p RetryPolicy) ShouldRetry(n int, err error) bool {
	if n > p.MaxRetries {
		return false
	}

	return analysis.KindOf(err).Retryable()
}

// Backoff returns the wait before the attempt following attempt n:
// BaseDelay * 2^(n-1). No jitter is applied, keeping the lower bound
// deterministic. The delay saturates once doubling would overflow
// time.Duration, so a large configured retry budget can never produce a
// negative or zero wait.
func (p RetryPolicy) Backoff(n int) time.Duration {
	if n < 1 {
		n = 1
	}

	shift := uint(n - 1)
	if shift > 62 || p.BaseDelay > math.MaxInt64>>shift {
		return time.Duration(math.MaxInt64)
	}

	return p.BaseDelay << shift
}
