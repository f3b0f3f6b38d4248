package analysis

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFailureKind_Retryable(t *testing.T) {
	t.Parallel()

	assert.True(t, KindTransient.Retryable())
	assert.True(t, KindRateLimited.Retryable())
	assert.False(t, KindFatal.Retryable())
}

func TestKindOf(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		err  error
		want FailureKind
	}{
		{
			name: "explicit transient failure",
			err:  Transient("connection reset", errors.New("reset")),
			want: KindTransient,
		},
		{
			name: "explicit rate limited failure",
			err:  RateLimited("quota exceeded", nil),
			want: KindRateLimited,
		},
		{
			name: "explicit fatal failure",
			err:  Fatal("invalid credentials", nil),
			want: KindFatal,
		},
		{
			name: "wrapped failure keeps its kind",
			err:  fmt.Errorf("analyze: %w", Fatal("safety block", nil)),
			want: KindFatal,
		},
		{
			name: "deadline exceeded is transient",
			err:  context.DeadlineExceeded,
			want: KindTransient,
		},
		{
			name: "unclassified error defaults to transient",
			err:  errors.New("something odd"),
			want: KindTransient,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, KindOf(tc.err))
		})
	}
}

func TestFailure_ErrorAndUnwrap(t *testing.T) {
	t.Parallel()

	cause := errors.New("dial tcp: connection refused")
	failure := Transient("service unreachable", cause)

	assert.Contains(t, failure.Error(), "transient failure")
	assert.Contains(t, failure.Error(), "service unreachable")
	assert.ErrorIs(t, failure, cause)

	bare := RateLimited("too many requests", nil)
	assert.Contains(t, bare.Error(), "rate_limited failure")
	assert.NoError(t, bare.Unwrap())
}
