package redact_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lawbench/casetriage/internal/redact"
)

func TestString(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "query parameter key",
			in:   "googleapi: got HTTP 400 calling https://generativelanguage.googleapis.com/v1beta/models?key=AIzaSyD4x8Qq0example",
			want: "googleapi: got HTTP 400 calling https://generativelanguage.googleapis.com/v1beta/models?key=[REDACTED_KEY]",
		},
		{
			name: "bearer token",
			in:   "request rejected: Bearer ya29.a0AfH6SMBexample",
			want: "request rejected: Bearer [REDACTED_KEY]",
		},
		{
			name: "labeled api key",
			in:   `config dump: api_key="sk-abcdef1234567890"`,
			want: `config dump: api_key="[REDACTED_KEY]"`,
		},
		{
			name: "bare google key",
			in:   "invalid key AIzaSyD4x8Qq0example supplied",
			want: "invalid key [REDACTED_KEY] supplied",
		},
		{
			name: "clean text untouched",
			in:   "connection reset by peer",
			want: "connection reset by peer",
		},
		{
			name: "empty string",
			in:   "",
			want: "",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, redact.String(tc.in))
		})
	}
}

func TestError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, redact.Error(nil))
	assert.Equal(t,
		"call failed: url?key=[REDACTED_KEY]",
		redact.Error(errors.New("call failed: url?key=AIzaSyD4x8Qq0example")))
}
