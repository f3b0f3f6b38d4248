package batch

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/lawbench/casetriage/internal/analysis"
	"github.com/lawbench/casetriage/internal/domain"
	"github.com/lawbench/casetriage/internal/events"
)

// Sink durably stores terminal outcomes. Store failures are logged as I/O
// warnings and never alter the outcome already computed.
type Sink interface {
	// Store persists one terminal outcome.
	Store(ctx context.Context, outcome domain.Outcome) error
}

// DispatcherConfig holds configuration for the dispatcher.
type DispatcherConfig struct {
	// MaxConcurrentRequests caps the number of in-flight service calls
	// across all items. If zero or negative, defaults to 10.
	MaxConcurrentRequests int

	// Policy governs retry decisions and backoff timing.
	Policy RetryPolicy

	// CallTimeout bounds each individual service call. Zero disables the
	// per-call timeout.
	CallTimeout time.Duration
}

// DefaultDispatcherConfig returns a DispatcherConfig with reasonable defaults.
func DefaultDispatcherConfig() DispatcherConfig {
	return DispatcherConfig{
		MaxConcurrentRequests: 10,
		Policy:                DefaultRetryPolicy(),
		CallTimeout:           2 * time.Minute,
	}
}

// Dispatcher drives work items through the limiter and retry policy,
// producing exactly one outcome per item. Items are processed concurrently,
// bounded only by the limiter; completion order is unconstrained.
type Dispatcher struct {
	analyzer analysis.Analyzer
	limiter  *Limiter
	policy   RetryPolicy
	timeout  time.Duration
	logger   *slog.Logger

	// sink and emitter are optional collaborators; nil disables them.
	sink    Sink
	emitter events.Emitter
}

// NewDispatcher creates a dispatcher calling the given analyzer.
func NewDispatcher(analyzer analysis.Analyzer, config DispatcherConfig, logger *slog.Logger) *Dispatcher {
	maxConcurrent := config.MaxConcurrentRequests
	if maxConcurrent < 1 {
		maxConcurrent = 10
		logger.Warn("invalid concurrency cap specified, using default",
			"specified_cap", config.MaxConcurrentRequests,
			"default_cap", maxConcurrent)
	}

	return &Dispatcher{
		analyzer: analyzer,
		limiter:  NewLimiter(maxConcurrent),
		policy:   config.Policy,
		timeout:  config.CallTimeout,
		logger:   logger,
	}
}

// SetSink sets the outcome sink. Must be called before Run.
func (d *Dispatcher) SetSink(sink Sink) {
	d.sink = sink
}

// SetEmitter sets the progress event emitter. Must be called before Run.
func (d *Dispatcher) SetEmitter(emitter events.Emitter) {
	d.emitter = emitter
}

// Run processes every submitted item to a terminal outcome and returns the
// aggregated report. It returns only once all items have finished. If ctx
// is cancelled, in-flight calls are abandoned, items not yet started are
// not dispatched, and the report still carries a terminal outcome for every
// submitted item (failed with the cancellation reason).
func (d *Dispatcher) Run(ctx context.Context, items []domain.WorkItem) *domain.RunReport {
	report := domain.NewRunReport()
	if len(items) == 0 {
		return report
	}

	d.logger.Info("starting batch run",
		"item_count", len(items),
		"concurrency_cap", d.limiter.Capacity(),
		"max_retries", d.policy.MaxRetries)

	outcomes := make(chan domain.Outcome)
	var wg sync.WaitGroup

	for _, item := range items {
		wg.Add(1)
		go func(item domain.WorkItem) {
			defer wg.Done()
			outcomes <- d.process(ctx, item)
		}(item)
	}

	go func() {
		wg.Wait()
		close(outcomes)
	}()

	for outcome := range outcomes {
		report.Add(outcome)
		d.store(ctx, outcome)
	}

	d.logger.Info("batch run finished",
		"succeeded", report.Succeeded,
		"failed", report.Failed)

	return report
}

// process runs one item's attempt chain to its terminal outcome.
func (d *Dispatcher) process(ctx context.Context, item domain.WorkItem) domain.Outcome {
	logger := d.logger.With(
		"item_id", item.ID,
		"source_file", item.SourceFile)

	for attempt := 1; ; attempt++ {
		if err := d.limiter.Acquire(ctx); err != nil {
			// Cancelled while waiting for a slot; no call was made.
			logger.Warn("item not dispatched, run cancelled", "error", err)
			return d.finish(ctx, logger, domain.Outcome{
				ItemID:     item.ID,
				SourceFile: item.SourceFile,
				Err:        fmt.Errorf("dispatch aborted: %w", err),
				Attempts:   attempt - 1,
			})
		}

		started := time.Now().UTC()
		result, err := d.invoke(ctx, item.Payload)
		d.limiter.Release()

		d.emit(ctx, events.NewAttemptEvent(domain.Attempt{
			ItemID:     item.ID,
			SourceFile: item.SourceFile,
			Number:     attempt,
			StartedAt:  started,
			Err:        err,
		}))

		if err == nil {
			logger.Info("item analyzed", "attempts", attempt)
			return d.finish(ctx, logger, domain.Outcome{
				ItemID:     item.ID,
				SourceFile: item.SourceFile,
				Analysis:   result,
				Attempts:   attempt,
			})
		}

		logger.Warn("service call failed",
			"attempt", attempt,
			"failure_kind", analysis.KindOf(err).String(),
			"error", err)

		if !d.policy.ShouldRetry(attempt, err) {
			return d.finish(ctx, logger, domain.Outcome{
				ItemID:     item.ID,
				SourceFile: item.SourceFile,
				Err:        err,
				Attempts:   attempt,
			})
		}

		// The backoff wait never holds a limiter slot.
		delay := d.policy.Backoff(attempt)
		logger.Info("retrying after backoff",
			"attempt", attempt,
			"delay", delay)

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			logger.Warn("retry abandoned, run cancelled", "error", ctx.Err())
			return d.finish(ctx, logger, domain.Outcome{
				ItemID:     item.ID,
				SourceFile: item.SourceFile,
				Err:        fmt.Errorf("retry abandoned: %w", ctx.Err()),
				Attempts:   attempt,
			})
		}
	}
}

// invoke makes one service call, bounded by the configured per-call timeout.
func (d *Dispatcher) invoke(ctx context.Context, payload string) (*analysis.CaseAnalysis, error) {
	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	return d.analyzer.Analyze(ctx, payload)
}

// finish emits the outcome notification and returns the outcome unchanged.
func (d *Dispatcher) finish(ctx context.Context, logger *slog.Logger, outcome domain.Outcome) domain.Outcome {
	if !outcome.Succeeded() {
		logger.Error("item failed",
			"attempts", outcome.Attempts,
			"error", outcome.Err)
	}

	d.emit(ctx, events.NewOutcomeEvent(outcome))
	return outcome
}

// store hands a terminal outcome to the sink, if one is configured.
func (d *Dispatcher) store(ctx context.Context, outcome domain.Outcome) {
	if d.sink == nil {
		return
	}

	if err := d.sink.Store(ctx, outcome); err != nil {
		d.logger.Warn("failed to store outcome",
			"item_id", outcome.ItemID,
			"source_file", outcome.SourceFile,
			"error", err)
	}
}

// emit publishes a progress event, if an emitter is configured.
func (d *Dispatcher) emit(ctx context.Context, event *events.Event) {
	if d.emitter == nil {
		return
	}

	if err := d.emitter.EmitEvent(ctx, event); err != nil {
		d.logger.Warn("failed to emit progress event",
			"event_type", event.Type,
			"error", err)
	}
}
