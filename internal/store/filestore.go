package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/lawbench/casetriage/internal/analysis"
	"github.com/lawbench/casetriage/internal/domain"
)

// Relevance subdirectories under the output directory.
const (
	dirHighRelevance   = "high_relevance"
	dirMediumRelevance = "medium_relevance"
	dirLowRelevance    = "low_relevance"
)

// reportFileName is the run report written next to the analyses.
const reportFileName = "run_report.json"

// FileStore writes analysis results beneath a single output directory.
// Successful outcomes become markdown files in a per-relevance
// subdirectory; failed outcomes are not persisted, since the run report is
// the failure surface.
type FileStore struct {
	outputDir string
	logger    *slog.Logger
}

// NewFileStore creates a FileStore rooted at outputDir, creating the
// directory tree if needed.
func NewFileStore(outputDir string, logger *slog.Logger) (*FileStore, error) {
	if outputDir == "" {
		return nil, fmt.Errorf("output directory cannot be empty")
	}

	for _, dir := range []string{
		outputDir,
		filepath.Join(outputDir, dirHighRelevance),
		filepath.Join(outputDir, dirMediumRelevance),
		filepath.Join(outputDir, dirLowRelevance),
	} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create output directory %s: %w", dir, err)
		}
	}

	return &FileStore{
		outputDir: outputDir,
		logger:    logger.With("component", "file_store"),
	}, nil
}

// Store persists one terminal outcome. Failed outcomes are a no-op.
func (s *FileStore) Store(ctx context.Context, outcome domain.Outcome) error {
	if !outcome.Succeeded() {
		s.logger.DebugContext(ctx, "skipping failed outcome",
			"item_id", outcome.ItemID,
			"source_file", outcome.SourceFile)
		return nil
	}

	path := filepath.Join(s.outputDir,
		relevanceDir(outcome.Analysis.RelevanceLevel),
		analysisFileName(outcome.SourceFile))

	if err := os.WriteFile(path, []byte(renderMarkdown(outcome.Analysis)), 0o644); err != nil {
		return fmt.Errorf("failed to write analysis for %s: %w", outcome.SourceFile, err)
	}

	s.logger.InfoContext(ctx, "analysis written",
		"item_id", outcome.ItemID,
		"source_file", outcome.SourceFile,
		"path", path)

	return nil
}

// WriteCombined writes one combined markdown document per non-empty
// relevance and support level combination, collecting every successful
// analysis in that group under the relevance level's directory. Groups
// appear in the order their first member completed.
func (s *FileStore) WriteCombined(report *domain.RunReport) error {
	type groupKey struct {
		relevance string
		support   string
	}

	groups := make(map[groupKey][]*analysis.CaseAnalysis)
	var order []groupKey

	for _, outcome := range report.Outcomes {
		if !outcome.Succeeded() {
			continue
		}

		key := groupKey{
			relevance: outcome.Analysis.RelevanceLevel,
			support:   outcome.Analysis.SupportLevel,
		}
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], outcome.Analysis)
	}

	for _, key := range order {
		path := filepath.Join(s.outputDir,
			relevanceDir(key.relevance),
			combinedFileName(key.support))

		content := renderCombined(key.relevance, key.support, groups[key])
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return fmt.Errorf("failed to write combined analyses for %s/%s: %w",
				key.relevance, key.support, err)
		}

		s.logger.Info("combined analyses written",
			"relevance_level", key.relevance,
			"support_level", key.support,
			"cases", len(groups[key]),
			"path", path)
	}

	return nil
}

// WriteReport persists the aggregated run report as JSON in the output
// directory.
func (s *FileStore) WriteReport(report *domain.RunReport) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal run report: %w", err)
	}

	path := filepath.Join(s.outputDir, reportFileName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write run report: %w", err)
	}

	return nil
}

// relevanceDir maps a relevance level onto its output subdirectory.
// Unknown levels land in low_relevance rather than failing the write.
func relevanceDir(level string) string {
	switch level {
	case analysis.RelevanceHigh:
		return dirHighRelevance
	case analysis.RelevanceMedium:
		return dirMediumRelevance
	default:
		return dirLowRelevance
	}
}

// combinedFileName derives the combined document name from the support
// level, e.g. "Does not Support" becomes combined_does_not_support.md.
func combinedFileName(support string) string {
	slug := strings.ToLower(strings.ReplaceAll(support, " ", "_"))
	return "combined_" + slug + ".md"
}

// analysisFileName derives the output file name from the source document.
func analysisFileName(sourceFile string) string {
	base := filepath.Base(sourceFile)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return base + "_analysis.md"
}

// renderCombined formats a group of analyses sharing a relevance and
// support level into one document, separated by horizontal rules.
func renderCombined(relevance, support string, analyses []*analysis.CaseAnalysis) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Combined Case Analyses: Relevance %s - %s\n\n", relevance, support)
	fmt.Fprintf(&b, "%d case(s) in this group.\n\n", len(analyses))

	for i, a := range analyses {
		if i > 0 {
			b.WriteString("---\n\n")
		}
		b.WriteString(renderMarkdown(a))
	}

	return b.String()
}

// renderMarkdown formats one analysis the way the combined research memo
// laid out its sections.
func renderMarkdown(a *analysis.CaseAnalysis) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Case Analysis: %s\n\n", a.BlueBookCitation)

	b.WriteString("## Summary\n\n")
	b.WriteString(a.Summary)
	b.WriteString("\n\n")

	b.WriteString("## Relevancy\n\n")
	fmt.Fprintf(&b, "Relevance Level: %s\n\n", a.RelevanceLevel)
	fmt.Fprintf(&b, "Reasoning: %s\n\n", a.Reasoning)

	b.WriteString("## Support Level\n\n")
	b.WriteString(a.SupportLevel)
	b.WriteString("\n\n")

	b.WriteString("## Argument\n\n")
	b.WriteString(a.Argument)
	b.WriteString("\n\n")

	writeBulletSection(&b, "Key Points Related to Spoliation", a.KeyPoints)
	writeBulletSection(&b, "Citations", a.Citations)
	writeBulletSection(&b, "Quotes", a.Quotes)

	return b.String()
}

func writeBulletSection(b *strings.Builder, heading string, items []string) {
	if len(items) == 0 {
		return
	}

	fmt.Fprintf(b, "## %s\n\n", heading)
	for _, item := range items {
		fmt.Fprintf(b, "- %s\n", item)
	}
	b.WriteString("\n")
}
