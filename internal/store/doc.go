// Package store persists batch results to stable storage. FileStore
// implements the dispatcher's Sink interface, writing each successful
// analysis to a markdown file grouped by relevance level, and the final
// run report as JSON.
package store
