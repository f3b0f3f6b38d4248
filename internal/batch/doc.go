// Package batch implements the bounded-concurrency request dispatcher at
// the core of casetriage. It drives every work item from submission to a
// terminal outcome: acquiring a limiter slot per service call, retrying
// transient failures with exponential backoff, and aggregating one outcome
// per item into a run report. Item failures are contained; they never
// affect sibling items or abort the run.
package batch
