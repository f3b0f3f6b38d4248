package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func completeAnalysis() CaseAnalysis {
	return CaseAnalysis{
		BlueBookCitation: "Doe v. Roe, 55 So. 3d 100 (La. App. 1 Cir. 2010)",
		Summary:          "A spoliation claim arising from a destroyed vehicle.",
		RelevanceLevel:   RelevanceMedium,
		Reasoning:        "References spoliation without deciding the tort question.",
		KeyPoints:        []string{"court applied adverse presumption"},
		Argument:         "The court's reliance on existing remedies parallels Reynolds.",
		SupportLevel:     SupportYes,
	}
}

func TestCaseAnalysis_Validate(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		mutate  func(*CaseAnalysis)
		wantErr error
	}{
		{
			name:   "complete analysis",
			mutate: func(a *CaseAnalysis) {},
		},
		{
			name:    "missing citation",
			mutate:  func(a *CaseAnalysis) { a.BlueBookCitation = "" },
			wantErr: ErrMissingCitation,
		},
		{
			name:    "missing summary",
			mutate:  func(a *CaseAnalysis) { a.Summary = "" },
			wantErr: ErrMissingSummary,
		},
		{
			name:    "missing argument",
			mutate:  func(a *CaseAnalysis) { a.Argument = "" },
			wantErr: ErrMissingArgument,
		},
		{
			name:    "unknown relevance level",
			mutate:  func(a *CaseAnalysis) { a.RelevanceLevel = "Critical" },
			wantErr: ErrInvalidRelevance,
		},
		{
			name:    "unknown support level",
			mutate:  func(a *CaseAnalysis) { a.SupportLevel = "Maybe" },
			wantErr: ErrInvalidSupportLevel,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			a := completeAnalysis()
			tc.mutate(&a)

			err := a.Validate()
			if tc.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.wantErr)
			}
		})
	}
}
