package domain

import (
	"github.com/google/uuid"

	"github.com/lawbench/casetriage/internal/redact"
)

// FailedItem is one entry in the run report's failure list. It carries the
// item's last failure reason and the number of attempts made.
type FailedItem struct {
	ItemID     uuid.UUID `json:"item_id"`
	SourceFile string    `json:"source_file"`
	Reason     string    `json:"reason"`
	Attempts   int       `json:"attempts"`
}

// RunReport aggregates the outcomes of one batch run. It can be built
// incrementally as outcomes arrive or in a final pass; both yield the same
// counts. The failure list preserves arrival order, so it is stable within
// a single run and each item appears exactly once.
type RunReport struct {
	Succeeded int          `json:"succeeded"`
	Failed    int          `json:"failed"`
	Outcomes  []Outcome    `json:"outcomes"`
	Failures  []FailedItem `json:"failures,omitempty"`
}

// NewRunReport creates an empty report.
func NewRunReport() *RunReport {
	return &RunReport{}
}

// Add folds one terminal outcome into the report.
func (r *RunReport) Add(outcome Outcome) {
	r.Outcomes = append(r.Outcomes, outcome)

	if outcome.Succeeded() {
		r.Succeeded++
		return
	}

	r.Failed++
	// The report is written to disk and logged, so failure reasons are
	// scrubbed of key material here rather than at every consumer.
	r.Failures = append(r.Failures, FailedItem{
		ItemID:     outcome.ItemID,
		SourceFile: outcome.SourceFile,
		Reason:     redact.String(outcome.Reason()),
		Attempts:   outcome.Attempts,
	})
}

// Total returns the number of items that reached a terminal outcome.
func (r *RunReport) Total() int {
	return r.Succeeded + r.Failed
}
