package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/lawbench/casetriage/internal/domain"
	"github.com/lawbench/casetriage/internal/events"
	"github.com/lawbench/casetriage/internal/extract"
)

// collectWorkItems scans the input directory and builds one work item per
// readable document. Unreadable or unsupported files are logged and
// skipped; they never reach the dispatcher.
func collectWorkItems(log *slog.Logger, inputDir string) ([]domain.WorkItem, error) {
	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read input directory %s: %w", inputDir, err)
	}

	items := make([]domain.WorkItem, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		path := filepath.Join(inputDir, entry.Name())
		if !extract.Supported(path) {
			log.Debug("skipping unsupported file", "file", entry.Name())
			continue
		}

		text, err := extract.FromFile(path)
		if err != nil {
			log.Error("failed to extract document text, skipping",
				"file", entry.Name(),
				"error", err)
			continue
		}

		item, err := domain.NewWorkItem(entry.Name(), text)
		if err != nil {
			log.Error("skipping document", "file", entry.Name(), "error", err)
			continue
		}

		log.Info("document queued", "file", entry.Name(), "item_id", item.ID)
		items = append(items, item)
	}

	return items, nil
}

// progressHandler logs batch progress events as they are emitted.
type progressHandler struct {
	logger *slog.Logger
}

// HandleEvent implements events.Handler.
func (h *progressHandler) HandleEvent(ctx context.Context, event *events.Event) error {
	switch event.Type {
	case events.EventAttemptFinished:
		attempt := event.Attempt
		if attempt.Err != nil {
			h.logger.InfoContext(ctx, "attempt failed",
				"source_file", attempt.SourceFile,
				"attempt", attempt.Number,
				"error", attempt.Err)
		} else {
			h.logger.InfoContext(ctx, "attempt succeeded",
				"source_file", attempt.SourceFile,
				"attempt", attempt.Number)
		}
	case events.EventOutcomeRecorded:
		outcome := event.Outcome
		h.logger.InfoContext(ctx, "outcome recorded",
			"source_file", outcome.SourceFile,
			"succeeded", outcome.Succeeded(),
			"attempts", outcome.Attempts)
	}

	return nil
}

// logSummary prints the end-of-run totals and the failed documents.
func logSummary(log *slog.Logger, report *domain.RunReport, elapsed time.Duration, aborted bool) {
	log.Info("run summary",
		"total", report.Total(),
		"succeeded", report.Succeeded,
		"failed", report.Failed,
		"elapsed", elapsed.Round(100*time.Millisecond),
		"aborted", aborted)

	for _, failure := range report.Failures {
		log.Error("document failed",
			"source_file", failure.SourceFile,
			"attempts", failure.Attempts,
			"reason", failure.Reason)
	}
}
