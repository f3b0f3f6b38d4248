package gemini

import "errors"

// Error definitions for the gemini package.
var (
	// ErrEmptyCaseText is returned when the case text to analyze is empty.
	ErrEmptyCaseText = errors.New("case text cannot be empty")

	// ErrInvalidConfig is returned when the analyzer configuration is invalid.
	ErrInvalidConfig = errors.New("invalid analyzer configuration")
)
