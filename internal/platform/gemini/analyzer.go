package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"text/template"

	"google.golang.org/genai"

	"github.com/lawbench/casetriage/internal/analysis"
	"github.com/lawbench/casetriage/internal/config"
	"github.com/lawbench/casetriage/internal/redact"
)

// Analyzer implements the analysis.Analyzer interface using Google's
// Gemini API to produce case relevancy analyses from opinion text.
type Analyzer struct {
	// logger is used for structured logging
	logger *slog.Logger

	// config contains LLM-specific configuration
	config config.LLMConfig

	// promptTemplate is the parsed template for creating prompts
	promptTemplate *template.Template

	// client is the Gemini API client for making requests
	client *genai.Client

	// model is the name of the Gemini model to use
	model string
}

// Compile-time check that Analyzer satisfies the core interface.
var _ analysis.Analyzer = (*Analyzer)(nil)

// NewAnalyzer creates a new Analyzer with the provided dependencies.
//
// Parameters:
//   - ctx: Context for the operation, which can be used for cancellation
//   - logger: A structured logger for operation logging
//   - cfg: LLM configuration containing API key, model name, and the
//     prompt template path
//
// Returns:
//   - A properly initialized Analyzer or an error if initialization fails
func NewAnalyzer(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (*Analyzer, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", ErrInvalidConfig)
	}

	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", ErrInvalidConfig)
	}

	if cfg.PromptTemplatePath == "" {
		return nil, fmt.Errorf("%w: prompt template path cannot be empty", ErrInvalidConfig)
	}

	templateContent, err := os.ReadFile(cfg.PromptTemplatePath)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read prompt template from %s: %v",
			ErrInvalidConfig, cfg.PromptTemplatePath, err)
	}

	promptTemplate, err := template.New("case_relevancy").Parse(string(templateContent))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse prompt template: %v",
			ErrInvalidConfig, err)
	}

	clientConfig := &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v",
			ErrInvalidConfig, err)
	}

	return &Analyzer{
		logger:         logger,
		config:         cfg,
		promptTemplate: promptTemplate,
		client:         client,
		model:          cfg.ModelName,
	}, nil
}

// Analyze sends the case text to the Gemini API and returns the parsed
// structured analysis. Errors are returned as *analysis.Failure so the
// dispatcher's retry policy can classify them.
func (a *Analyzer) Analyze(ctx context.Context, caseText string) (*analysis.CaseAnalysis, error) {
	prompt, err := a.createPrompt(ctx, caseText)
	if err != nil {
		return nil, analysis.Fatal("failed to build prompt", err)
	}

	generateConfig := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		Temperature:      genai.Ptr[float32](0),
	}

	resp, err := a.client.Models.GenerateContent(ctx, a.model, genai.Text(prompt), generateConfig)
	if err != nil {
		return nil, a.classifyCallError(ctx, err)
	}

	return a.parseResponse(ctx, resp)
}

// createPrompt generates a prompt string from the template with the
// provided case text.
func (a *Analyzer) createPrompt(ctx context.Context, caseText string) (string, error) {
	if caseText == "" {
		return "", ErrEmptyCaseText
	}

	a.logger.DebugContext(ctx, "generating prompt from template",
		"case_length", len(caseText),
		"template_name", a.promptTemplate.Name())

	var promptBuffer bytes.Buffer
	if err := a.promptTemplate.Execute(&promptBuffer, promptData{CaseText: caseText}); err != nil {
		return "", fmt.Errorf("failed to execute prompt template: %w", err)
	}

	return promptBuffer.String(), nil
}

// classifyCallError maps a transport-level error from the Gemini client
// onto the analysis failure taxonomy.
func (a *Analyzer) classifyCallError(ctx context.Context, err error) error {
	// The client echoes the request URL, key parameter included, into
	// some error messages.
	a.logger.ErrorContext(ctx, "Gemini API call error", "error", redact.Error(err))

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Code == http.StatusTooManyRequests:
			return analysis.RateLimited("Gemini API rate limit", err)
		case apiErr.Code >= http.StatusInternalServerError:
			return analysis.Transient("Gemini API server error", err)
		case apiErr.Code >= http.StatusBadRequest:
			// Auth failures and malformed requests will not heal on retry.
			return analysis.Fatal(fmt.Sprintf("Gemini API rejected the request (%d %s)",
				apiErr.Code, apiErr.Status), err)
		}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return analysis.Transient("Gemini API call timed out", err)
	}

	// Unrecognized errors are assumed to be transient network conditions.
	return analysis.Transient("Gemini API call failed", err)
}

// parseResponse validates the API response and decodes the JSON payload
// into a CaseAnalysis. Malformed responses are fatal: resending the same
// document is unlikely to produce a parseable answer.
func (a *Analyzer) parseResponse(ctx context.Context, resp *genai.GenerateContentResponse) (*analysis.CaseAnalysis, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil, analysis.Fatal("no content generated", nil)
	}

	candidate := resp.Candidates[0]
	if candidate.FinishReason == genai.FinishReasonSafety {
		return nil, analysis.Fatal("content blocked by safety filters", nil)
	}

	if candidate.Content == nil {
		return nil, analysis.Fatal("empty content in response", nil)
	}

	text := strings.TrimSpace(resp.Text())
	text = stripCodeFence(text)
	if text == "" {
		return nil, analysis.Fatal("empty text in response", nil)
	}

	var result analysis.CaseAnalysis
	if err := json.Unmarshal([]byte(text), &result); err != nil {
		return nil, analysis.Fatal("failed to parse JSON response", err)
	}

	if err := result.Validate(); err != nil {
		return nil, analysis.Fatal("response failed validation", err)
	}

	a.logger.DebugContext(ctx, "parsed analysis response",
		"citation", result.BlueBookCitation,
		"relevance_level", result.RelevanceLevel,
		"support_level", result.SupportLevel)

	return &result, nil
}

// stripCodeFence removes a surrounding markdown code fence, which some
// models emit even when asked for bare JSON.
func stripCodeFence(text string) string {
	if !strings.HasPrefix(text, "```") {
		return text
	}

	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}
