package gemini

// RequestData is one generation request. Category is informational; the
// prompt already names it.
type RequestData struct {
	Category string
	Prompt   string
}

// ResponseData is the structured result the model is asked to return.
type ResponseData struct {
	Text      string        `json:"text"`
	Reference string        `json:"reference"`
	Usage     UsageMetadata `json:"-"` // filled from the response envelope
}

// UsageMetadata holds token usage information.
type UsageMetadata struct {
	PromptTokenCount     int
	CandidatesTokenCount int
	TotalTokenCount      int
}
