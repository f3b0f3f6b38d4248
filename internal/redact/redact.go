// Package redact scrubs credentials from strings before they are logged.
// Errors returned by the Gemini client can echo the request URL, and the
// Gemini REST API carries the API key as a query parameter, so raw error
// text must never reach the log stream unredacted.
package redact

import "regexp"

// Placeholder substituted for redacted key material.
const KeyPlaceholder = "[REDACTED_KEY]"

var (
	// key=... query parameters, as used by the Gemini REST endpoints.
	queryKeyPattern = regexp.MustCompile(`(?i)([?&]key=)[A-Za-z0-9_\-.~]+`)

	// Authorization headers and bearer tokens echoed into error text.
	bearerPattern = regexp.MustCompile(`(?i)(bearer\s+)[A-Za-z0-9_\-.~+/]{8,}`)

	// Labeled key material in key/value form, e.g. "api_key: AIza...".
	labeledKeyPattern = regexp.MustCompile(
		`(?i)(api[_-]?key|token|secret)(['"\s:=]+)[A-Za-z0-9_\-.~+/]{8,}`)

	// Google API keys have a fixed AIza prefix.
	googleKeyPattern = regexp.MustCompile(`\bAIza[A-Za-z0-9_\-]{10,}`)
)

// String returns input with any recognizable key material replaced by
// KeyPlaceholder.
func String(input string) string {
	if input == "" {
		return input
	}

	result := queryKeyPattern.ReplaceAllString(input, "${1}"+KeyPlaceholder)
	result = bearerPattern.ReplaceAllString(result, "${1}"+KeyPlaceholder)
	result = labeledKeyPattern.ReplaceAllString(result, "${1}${2}"+KeyPlaceholder)
	result = googleKeyPattern.ReplaceAllString(result, KeyPlaceholder)
	return result
}

// Error redacts an error's message. A nil error yields the empty string.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
