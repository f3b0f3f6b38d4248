package gemini

// promptData represents the data passed to the prompt template.
type promptData struct {
	CaseText string
}
