package openai

import "github.com/petal-labs/chatstream/core"

// ModerationRequest is the body of POST /v1/moderations.
type ModerationRequest struct {
	Input core.Sequence `json:"input"`
	Model string        `json:"model,omitempty"`
}

// ModerationCategories holds one value per moderation category.
type ModerationCategories[T any] struct {
	Hate            T `json:"hate"`
	HateThreatening T `json:"hate/threatening"`
	SelfHarm        T `json:"self-harm"`
	Sexual          T `json:"sexual"`
	SexualMinors    T `json:"sexual/minors"`
	Violence        T `json:"violence"`
	ViolenceGraphic T `json:"violence/graphic"`
}

// ModerationResult is the classification of one input.
type ModerationResult struct {
	Categories     ModerationCategories[bool]    `json:"categories"`
	CategoryScores ModerationCategories[float64] `json:"category_scores"`
	Flagged        bool                          `json:"flagged"`
}

// ModerationResponse is the response of POST /v1/moderations.
type ModerationResponse struct {
	ID      string             `json:"id"`
	Model   string             `json:"model"`
	Results []ModerationResult `json:"results"`
}
