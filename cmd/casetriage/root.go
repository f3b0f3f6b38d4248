package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/lawbench/casetriage/internal/batch"
	"github.com/lawbench/casetriage/internal/config"
	"github.com/lawbench/casetriage/internal/events"
	"github.com/lawbench/casetriage/internal/platform/gemini"
	"github.com/lawbench/casetriage/internal/platform/logger"
	"github.com/lawbench/casetriage/internal/store"
)

// newRootCmd builds the root command. casetriage is a single-purpose batch
// tool, so the root command is the run itself.
func newRootCmd() *cobra.Command {
	var inputDir string
	var outputDir string

	cmd := &cobra.Command{
		Use:           "casetriage",
		Short:         "Analyze a batch of court opinions for spoliation relevancy",
		Long: "casetriage reads .docx and .txt court opinions from the input directory, " +
			"sends each to the Gemini API under a bounded concurrency cap with retries, " +
			"and writes structured relevancy analyses grouped by relevance level.",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			// Flags override the loaded configuration.
			if inputDir != "" {
				cfg.IO.InputDir = inputDir
			}
			if outputDir != "" {
				cfg.IO.OutputDir = outputDir
			}

			return run(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&inputDir, "input", "", "directory of documents to analyze (overrides config)")
	cmd.Flags().StringVar(&outputDir, "output", "", "directory for analysis results (overrides config)")

	return cmd
}

// run wires the application together and executes one batch.
func run(parent context.Context, cfg *config.Config) error {
	log := logger.Setup(cfg.Logging)

	if parent == nil {
		parent = context.Background()
	}

	// A SIGINT/SIGTERM cancels the run: in-flight calls are abandoned,
	// undispatched items fail with the cancellation reason, and the
	// partial report is still written.
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	analyzer, err := gemini.NewAnalyzer(ctx, log, cfg.LLM)
	if err != nil {
		return fmt.Errorf("failed to create analyzer: %w", err)
	}

	fileStore, err := store.NewFileStore(cfg.IO.OutputDir, log)
	if err != nil {
		return fmt.Errorf("failed to create result store: %w", err)
	}

	items, err := collectWorkItems(log, cfg.IO.InputDir)
	if err != nil {
		return err
	}

	if len(items) == 0 {
		log.Warn("no documents found to process", "input_dir", cfg.IO.InputDir)
		return nil
	}

	emitter := events.NewInMemoryEmitter(log)
	emitter.RegisterHandler(&progressHandler{logger: log})

	dispatcher := batch.NewDispatcher(analyzer, batch.DispatcherConfig{
		MaxConcurrentRequests: cfg.Batch.MaxConcurrentRequests,
		Policy: batch.RetryPolicy{
			MaxRetries: cfg.Batch.MaxRetries,
			BaseDelay:  cfg.Batch.RetryBaseDelay(),
		},
		CallTimeout: cfg.Batch.ServiceTimeout(),
	}, log)
	dispatcher.SetSink(fileStore)
	dispatcher.SetEmitter(emitter)

	started := time.Now()
	report := dispatcher.Run(ctx, items)

	if err := fileStore.WriteCombined(report); err != nil {
		log.Warn("failed to write combined analyses", "error", err)
	}

	if err := fileStore.WriteReport(report); err != nil {
		log.Warn("failed to write run report", "error", err)
	}

	logSummary(log, report, time.Since(started), ctx.Err() != nil)
	return nil
}
