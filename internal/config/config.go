package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
// The struct is immutable after Load and is passed explicitly into the
// components that need it; no ambient global state leaks into the
// dispatcher or retry policy.
type Config struct {
	Logging LoggingConfig `mapstructure:"logging" validate:"required"`
	Batch   BatchConfig   `mapstructure:"batch" validate:"required"`
	LLM     LLMConfig     `mapstructure:"llm" validate:"required"`
	IO      IOConfig      `mapstructure:"io" validate:"required"`
}

// LoggingConfig contains logging-related settings.
type LoggingConfig struct {
	Level string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
}

// BatchConfig contains the dispatcher's concurrency and retry settings.
type BatchConfig struct {
	// MaxConcurrentRequests caps simultaneous service calls.
	MaxConcurrentRequests int `mapstructure:"max_concurrent_requests" validate:"required,gte=1"`

	// MaxRetries is the retry budget after the first attempt. Zero makes
	// every failure terminal after one attempt.
	MaxRetries int `mapstructure:"max_retries" validate:"gte=0"`

	// RetryBaseDelaySeconds is the wait before the first retry; later
	// waits double each time.
	RetryBaseDelaySeconds float64 `mapstructure:"retry_base_delay_seconds" validate:"required,gt=0"`

	// ServiceTimeoutSeconds bounds each individual service call.
	ServiceTimeoutSeconds int `mapstructure:"service_timeout_seconds" validate:"required,gte=1"`
}

// RetryBaseDelay returns the configured base delay as a duration.
func (b BatchConfig) RetryBaseDelay() time.Duration {
	return time.Duration(b.RetryBaseDelaySeconds * float64(time.Second))
}

// ServiceTimeout returns the configured per-call timeout as a duration.
func (b BatchConfig) ServiceTimeout() time.Duration {
	return time.Duration(b.ServiceTimeoutSeconds) * time.Second
}

// LLMConfig contains all LLM integration related settings.
type LLMConfig struct {
	GeminiAPIKey       string `mapstructure:"gemini_api_key" validate:"required"`
	ModelName          string `mapstructure:"model_name" validate:"required"`
	PromptTemplatePath string `mapstructure:"prompt_template_path" validate:"required"`
}

// IOConfig contains the input and output locations for a run.
type IOConfig struct {
	InputDir  string `mapstructure:"input_dir" validate:"required"`
	OutputDir string `mapstructure:"output_dir" validate:"required"`
}
