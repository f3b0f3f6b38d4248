package analysis

import (
	"context"
	"errors"
	"fmt"
)

// Analyzer defines the interface for producing a structured case analysis
// from the plain text of a court opinion. This interface serves as the
// boundary between the application core and external AI/LLM services,
// following the hexagonal architecture pattern.
type Analyzer interface {
	// Analyze sends the case text to the analysis service and returns the
	// structured result.
	//
	// Parameters:
	//   - ctx: Context for the operation, used for cancellation and timeouts
	//   - caseText: The extracted plain text of the court opinion
	//
	// Returns:
	//   - A CaseAnalysis with the service's structured assessment
	//   - An error classifiable through KindOf if the call fails
	Analyze(ctx context.Context, caseText string) (*CaseAnalysis, error)
}

// Relevance level values returned by the analysis service.
const (
	RelevanceHigh   = "High"
	RelevanceMedium = "Medium"
	RelevanceLow    = "Low"
)

// Support level values returned by the analysis service.
const (
	SupportStrong = "Strongly Supports"
	SupportYes    = "Supports"
	SupportNo     = "Does not Support"
)

// Validation errors for CaseAnalysis.
var (
	ErrMissingCitation     = errors.New("analysis is missing the blue book citation")
	ErrMissingSummary      = errors.New("analysis is missing the summary")
	ErrMissingArgument     = errors.New("analysis is missing the argument")
	ErrInvalidRelevance    = errors.New("analysis has an invalid relevance level")
	ErrInvalidSupportLevel = errors.New("analysis has an invalid support level")
)

// CaseAnalysis is the structured result produced by the analysis service
// for a single court opinion. Field names mirror the JSON schema the
// service is instructed to return.
type CaseAnalysis struct {
	// BlueBookCitation is the full Blue Book style citation for the case.
	BlueBookCitation string `json:"blue_book_citation"`

	// Summary is a brief summary of the case, a few sentences long.
	Summary string `json:"summary"`

	// RelevanceLevel is one of High, Medium or Low.
	RelevanceLevel string `json:"relevance_level"`

	// Reasoning explains why the relevance level was assigned.
	Reasoning string `json:"reasoning"`

	// KeyPoints lists key points or mentions related to spoliation.
	KeyPoints []string `json:"key_points"`

	// Citations lists the key cases cited in the opinion.
	Citations []string `json:"citations"`

	// Quotes lists supporting quotes with pinpoint citations.
	Quotes []string `json:"quotes"`

	// Argument is the brief-style argument section.
	Argument string `json:"argument"`

	// SupportLevel is one of Strongly Supports, Supports or Does not Support.
	SupportLevel string `json:"support_level"`
}

// Validate checks that the required fields are present and that the closed
// vocabulary fields carry recognized values.
func (a *CaseAnalysis) Validate() error {
	if a.BlueBookCitation == "" {
		return ErrMissingCitation
	}

	if a.Summary == "" {
		return ErrMissingSummary
	}

	if a.Argument == "" {
		return ErrMissingArgument
	}

	switch a.RelevanceLevel {
	case RelevanceHigh, RelevanceMedium, RelevanceLow:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidRelevance, a.RelevanceLevel)
	}

	switch a.SupportLevel {
	case SupportStrong, SupportYes, SupportNo:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidSupportLevel, a.SupportLevel)
	}

	return nil
}
