package batch

import (
	"context"

	"golang.org/x/sync/semaphore"
)

// Limiter bounds the number of simultaneously in-flight service calls.
// A slot models one live call: holders must release as soon as the call
// returns, so waiting out a retry backoff never occupies a slot.
//
// The limiter never fails on its own; Acquire only blocks, and returns an
// error solely when the context is cancelled first. Waiters are served in
// FIFO order, so no item starves while slots are free.
type Limiter struct {
	sem      *semaphore.Weighted
	capacity int
}

// NewLimiter creates a limiter with the given slot capacity.
// Capacities below 1 are raised to 1.
func NewLimiter(capacity int) *Limiter {
	if capacity < 1 {
		capacity = 1
	}

	return &Limiter{
		sem:      semaphore.NewWeighted(int64(capacity)),
		capacity: capacity,
	}
}

// Acquire blocks until a slot is available or ctx is done. On success the
// caller holds exactly one slot and must call Release when the service
// call returns.
func (l *Limiter) Acquire(ctx context.Context) error {
	return l.sem.Acquire(ctx, 1)
}

// Release returns a slot to the pool, waking exactly one waiter if any.
func (l *Limiter) Release() {
	l.sem.Release(1)
}

// Capacity returns the configured slot count.
func (l *Limiter) Capacity() int {
	return l.capacity
}
