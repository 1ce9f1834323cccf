// internal/workers/assistant/draft-response/models.go
package draftresponse

type Input struct {
	FeedbackID string `json:"feedbackId"`
	// CustomerFeedback replaces the stored feedback text when set.
	CustomerFeedback string `json:"customerFeedback,omitempty"`
}

// DraftContext is what the prompt says about the project and the person
// who raised the feedback.
type DraftContext struct {
	ProjectName string
	Category    string
	Status      string
	Stakeholder string
	Role        string
	Feedback    string
}

type Output struct {
	FeedbackID string `json:"feedbackId"`
	ProjectID  string `json:"projectId,omitempty"`
	Draft      string `json:"draft"`
	Configured bool   `json:"configured"`
	ErrorCode  string `json:"errorCode,omitempty"`
}

type generateRequest struct {
	Prompt      string  `json:"prompt"`
	MaxTokens   int     `json:"max_tokens"`
	Temperature float64 `json:"temperature"`
}

type generateResponse struct {
	Text string `json:"text"`
}
