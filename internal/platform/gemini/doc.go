// Package gemini implements the analysis.Analyzer interface using Google's
// Gemini API. The adapter owns prompt construction and response parsing and
// maps provider errors onto the analysis failure taxonomy; retry timing is
// the dispatcher's concern, not this package's.
package gemini
