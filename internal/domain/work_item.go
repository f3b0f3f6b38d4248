package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for WorkItem.
var (
	ErrEmptyItemID     = errors.New("work item ID cannot be empty")
	ErrEmptySourceFile = errors.New("work item source file cannot be empty")
	ErrEmptyPayload    = errors.New("work item payload cannot be empty")
)

// WorkItem is one document's worth of input to be sent to the analysis
// service. It is immutable once created; the dispatcher owns it for the
// duration of a run.
type WorkItem struct {
	ID         uuid.UUID         `json:"id"`
	SourceFile string            `json:"source_file"`
	Payload    string            `json:"payload"`
	Metadata   map[string]string `json:"metadata,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
}

// NewWorkItem creates a WorkItem for the given source file and extracted
// text, generating a fresh ID. Returns an error if validation fails.
func NewWorkItem(sourceFile, payload string) (WorkItem, error) {
	item := WorkItem{
		ID:         uuid.New(),
		SourceFile: sourceFile,
		Payload:    payload,
		CreatedAt:  time.Now().UTC(),
	}

	if err := item.Validate(); err != nil {
		return WorkItem{}, err
	}

	return item, nil
}

// Validate checks if the WorkItem has valid data.
func (w WorkItem) Validate() error {
	if w.ID == uuid.Nil {
		return ErrEmptyItemID
	}

	if w.SourceFile == "" {
		return ErrEmptySourceFile
	}

	if w.Payload == "" {
		return ErrEmptyPayload
	}

	return nil
}
