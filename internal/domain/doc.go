// Package domain contains the core entities of a batch run: work items
// submitted for analysis, the attempts made against the service for each
// item, the terminal outcome per item, and the aggregated run report.
// These types are created once and treated as read-only afterwards; the
// only mutable aggregate is RunReport, which is owned by the dispatcher.
package domain
