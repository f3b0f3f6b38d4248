package batch

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLimiter_CapacityEnforced(t *testing.T) {
	t.Parallel()

	limiter := NewLimiter(2)
	ctx := context.Background()

	require.NoError(t, limiter.Acquire(ctx))
	require.NoError(t, limiter.Acquire(ctx))

	// Both slots held: a third acquire must block until cancelled.
	blocked, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
	defer cancel()
	err := limiter.Acquire(blocked)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	// One release frees exactly one waiter.
	limiter.Release()
	require.NoError(t, limiter.Acquire(ctx))

	limiter.Release()
	limiter.Release()
}

func TestLimiter_ReleaseWakesWaiter(t *testing.T) {
	t.Parallel()

	limiter := NewLimiter(1)
	ctx := context.Background()

	require.NoError(t, limiter.Acquire(ctx))

	acquired := make(chan error, 1)
	go func() {
		acquired <- limiter.Acquire(ctx)
	}()

	// The waiter must not proceed while the slot is held.
	select {
	case <-acquired:
		t.Fatal("acquire succeeded while the slot was held")
	case <-time.After(20 * time.Millisecond):
	}

	limiter.Release()

	select {
	case err := <-acquired:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("waiter was not woken by release")
	}

	limiter.Release()
}

func TestNewLimiter_ClampsCapacity(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 1, NewLimiter(0).Capacity())
	assert.Equal(t, 1, NewLimiter(-3).Capacity())
	assert.Equal(t, 4, NewLimiter(4).Capacity())
}
