package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/lawbench/casetriage/internal/analysis"
)

// Attempt records one execution of a service call for a work item.
// Attempts are append-only: the dispatcher creates one per call and never
// mutates it afterwards. Err is nil when the call succeeded.
type Attempt struct {
	ItemID     uuid.UUID `json:"item_id"`
	SourceFile string    `json:"source_file"`
	Number     int       `json:"number"`
	StartedAt  time.Time `json:"started_at"`
	Err        error     `json:"-"`
}

// Outcome is the terminal result for a work item. Exactly one Outcome
// exists per item at the end of a run: either Analysis is set (success) or
// Err carries the last failure. Attempts counts the service calls made.
type Outcome struct {
	ItemID     uuid.UUID              `json:"item_id"`
	SourceFile string                 `json:"source_file"`
	Analysis   *analysis.CaseAnalysis `json:"analysis,omitempty"`
	Err        error                  `json:"-"`
	Attempts   int                    `json:"attempts"`
}

// Succeeded reports whether the item completed with a usable analysis.
func (o Outcome) Succeeded() bool {
	return o.Err == nil && o.Analysis != nil
}

// Reason returns the failure reason for a failed outcome, or the empty
// string for a successful one.
func (o Outcome) Reason() string {
	if o.Err == nil {
		return ""
	}
	return o.Err.Error()
}
