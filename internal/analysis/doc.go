// Package analysis defines the boundary between the batch core and the
// external LLM service that produces case relevancy analyses. It contains
// the Analyzer interface consumed by the dispatcher, the CaseAnalysis
// structure returned by the service, and the failure taxonomy used to
// decide whether a failed call is worth retrying.
package analysis
