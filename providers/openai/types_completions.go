package openai

import (
	"encoding/json"

	"github.com/petal-labs/chatstream/core"
)

// CompletionRequest is the body of POST /v1/completions. Nil fields are
// omitted from the request.
type CompletionRequest struct {
	Model            string         `json:"model"`
	Prompt           *core.Sequence `json:"prompt,omitempty"`
	Suffix           string         `json:"suffix,omitempty"`
	MaxTokens        *int           `json:"max_tokens,omitempty"`
	Temperature      *float64       `json:"temperature,omitempty"`
	TopP             *float64       `json:"top_p,omitempty"`
	N                *int           `json:"n,omitempty"`
	LogProbs         *int           `json:"logprobs,omitempty"`
	Echo             *bool          `json:"echo,omitempty"`
	Stop             *core.Sequence `json:"stop,omitempty"`
	PresencePenalty  *float64       `json:"presence_penalty,omitempty"`
	FrequencyPenalty *float64       `json:"frequency_penalty,omitempty"`
	BestOf           *int           `json:"best_of,omitempty"`
	LogitBias        map[uint64]int `json:"logit_bias,omitempty"`
	User             string         `json:"user,omitempty"`
}

// CompletionChoice is one generated completion.
type CompletionChoice struct {
	Index        int                `json:"index"`
	Text         string             `json:"text"`
	LogProbs     json.RawMessage    `json:"logprobs,omitempty"`
	FinishReason *core.FinishReason `json:"finish_reason"`
}

// CompletionResponse is the response of POST /v1/completions.
type CompletionResponse struct {
	ID      string             `json:"id"`
	Object  string             `json:"object"`
	Created int64              `json:"created"`
	Model   string             `json:"model"`
	Choices []CompletionChoice `json:"choices"`
	Usage   core.Usage         `json:"usage"`
}

func (r *CompletionResponse) tokenUsage() core.Usage { return r.Usage }
