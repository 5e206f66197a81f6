package openai

import "github.com/petal-labs/chatstream/core"

// EditRequest is the body of POST /v1/edits.
type EditRequest struct {
	Model       string   `json:"model"`
	Input       string   `json:"input,omitempty"`
	Instruction string   `json:"instruction"`
	Temperature *float64 `json:"temperature,omitempty"`
	TopP        *float64 `json:"top_p,omitempty"`
	N           *int     `json:"n,omitempty"`
}

// EditChoice is one edited text.
type EditChoice struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
}

// EditResponse is the response of POST /v1/edits.
type EditResponse struct {
	Object  string       `json:"object"`
	Created int64        `json:"created"`
	Choices []EditChoice `json:"choices"`
	Usage   core.Usage   `json:"usage"`
}

func (r *EditResponse) tokenUsage() core.Usage { return r.Usage }
