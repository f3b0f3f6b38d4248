package analysis

import (
	"errors"
	"fmt"
)

// FailureKind classifies a failed service call. The set is closed so retry
// decisions stay exhaustive: transient and rate-limited failures may be
// retried, fatal failures never are.
type FailureKind int

const (
	// KindTransient covers network errors, timeouts and 5xx responses.
	KindTransient FailureKind = iota

	// KindRateLimited covers 429 responses from the service.
	KindRateLimited

	// KindFatal covers authentication errors, malformed requests, safety
	// blocks and unparseable responses. Retrying these cannot succeed.
	KindFatal
)

// String returns a human-readable name for the failure kind.
func (k FailureKind) String() string {
	switch k {
	case KindTransient:
		return "transient"
	case KindRateLimited:
		return "rate_limited"
	case KindFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// Retryable reports whether a failure of this kind may be retried.
func (k FailureKind) Retryable() bool {
	return k != KindFatal
}

// Failure is the error type returned by Analyzer implementations. It carries
// the classification alongside the underlying cause so callers can make
// retry decisions with errors.As instead of string matching.
type Failure struct {
	Kind    FailureKind
	Message string
	Cause   error
}

// Error implements the error interface.
func (f *Failure) Error() string {
	if f.Cause != nil {
		return fmt.Sprintf("%s failure: %s: %v", f.Kind, f.Message, f.Cause)
	}
	return fmt.Sprintf("%s failure: %s", f.Kind, f.Message)
}

// Unwrap exposes the underlying cause for errors.Is/errors.As.
func (f *Failure) Unwrap() error {
	return f.Cause
}

// Transient builds a retryable failure for timeouts and network errors.
func Transient(message string, cause error) *Failure {
	return &Failure{Kind: KindTransient, Message: message, Cause: cause}
}

// RateLimited builds a retryable failure for provider rate limiting.
func RateLimited(message string, cause error) *Failure {
	return &Failure{Kind: KindRateLimited, Message: message, Cause: cause}
}

// Fatal builds a non-retryable failure.
func Fatal(message string, cause error) *Failure {
	return &Failure{Kind: KindFatal, Message: message, Cause: cause}
}

// KindOf classifies an arbitrary error from a service call. Errors that do
// not carry an explicit classification, timeouts included, are treated as
// transient: one wasted retry is cheaper than abandoning a document over an
// unrecognized blip.
func KindOf(err error) FailureKind {
	var failure *Failure
	if errors.As(err, &failure) {
		return failure.Kind
	}

	return KindTransient
}
