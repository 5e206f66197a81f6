package core

import (
	"encoding/json"
	"maps"
	"slices"
	"time"
)

// ChatMessage is one entry of a conversation transcript.
type ChatMessage struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// NewChatMessage creates a message with the given role and content.
func NewChatMessage(role Role, content string) ChatMessage {
	return ChatMessage{Role: role, Content: content}
}

// ChatHistory is a finalized chat request: the ordered transcript, the model
// and the optional sampling parameters. It is immutable; obtain one from
// ChatHistoryBuilder.Build.
type ChatHistory struct {
	messages         []ChatMessage
	model            string
	temperature      *float64
	topP             *float64
	n                *int
	stop             *Sequence
	maxTokens        *int
	presencePenalty  *float64
	frequencyPenalty *float64
	logitBias        map[uint64]int
	user             *string
}

// chatHistoryWire is the JSON shape of a chat request. Pointer fields are
// omitted when nil so absent options never reach the wire as null.
type chatHistoryWire struct {
	Messages         []ChatMessage  `json:"messages"`
	Model            string         `json:"model"`
	Temperature      *float64       `json:"temperature,omitempty"`
	TopP             *float64       `json:"top_p,omitempty"`
	N                *int           `json:"n,omitempty"`
	Stream           *bool          `json:"stream,omitempty"`
	Stop             *Sequence      `json:"stop,omitempty"`
	MaxTokens        *int           `json:"max_tokens,omitempty"`
	PresencePenalty  *float64       `json:"presence_penalty,omitempty"`
	FrequencyPenalty *float64       `json:"frequency_penalty,omitempty"`
	LogitBias        map[uint64]int `json:"logit_bias,omitempty"`
	User             *string        `json:"user,omitempty"`
}

// Messages returns a copy of the transcript.
func (h ChatHistory) Messages() []ChatMessage { return slices.Clone(h.messages) }

// Model returns the model name.
func (h ChatHistory) Model() string { return h.model }

// Temperature returns the sampling temperature, if set.
func (h ChatHistory) Temperature() (float64, bool) { return deref(h.temperature) }

// TopP returns the nucleus sampling mass, if set.
func (h ChatHistory) TopP() (float64, bool) { return deref(h.topP) }

// N returns the number of choices requested, if set.
func (h ChatHistory) N() (int, bool) { return deref(h.n) }

// Stop returns the stop sequence(s), if set.
func (h ChatHistory) Stop() (Sequence, bool) { return deref(h.stop) }

// MaxTokens returns the completion token limit, if set.
func (h ChatHistory) MaxTokens() (int, bool) { return deref(h.maxTokens) }

// PresencePenalty returns the presence penalty, if set.
func (h ChatHistory) PresencePenalty() (float64, bool) { return deref(h.presencePenalty) }

// FrequencyPenalty returns the frequency penalty, if set.
func (h ChatHistory) FrequencyPenalty() (float64, bool) { return deref(h.frequencyPenalty) }

// LogitBias returns a copy of the token bias map, or nil if unset.
func (h ChatHistory) LogitBias() map[uint64]int { return maps.Clone(h.logitBias) }

// User returns the end-user tag, if set.
func (h ChatHistory) User() (string, bool) { return deref(h.user) }

// MarshalJSON encodes the request without a stream flag.
func (h ChatHistory) MarshalJSON() ([]byte, error) {
	return h.Payload(false)
}

// Payload encodes the request for transmission. The execution path decides
// the stream flag: true emits "stream":true, false leaves the key out.
func (h ChatHistory) Payload(stream bool) ([]byte, error) {
	w := chatHistoryWire{
		Messages:         h.messages,
		Model:            h.model,
		Temperature:      h.temperature,
		TopP:             h.topP,
		N:                h.n,
		Stop:             h.stop,
		MaxTokens:        h.maxTokens,
		PresencePenalty:  h.presencePenalty,
		FrequencyPenalty: h.frequencyPenalty,
		LogitBias:        h.logitBias,
		User:             h.user,
	}
	if w.Messages == nil {
		w.Messages = []ChatMessage{}
	}
	if stream {
		w.Stream = ptr(true)
	}
	return json.Marshal(w)
}

// Usage accounts for the tokens consumed by one request.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// ChatCompletion is one choice of a synchronous response.
type ChatCompletion struct {
	Index        int           `json:"index"`
	Message      ChatMessage   `json:"message"`
	FinishReason *FinishReason `json:"finish_reason"`
}

// ChatCompletionSyncResponse is the full response of a non-streaming call.
type ChatCompletionSyncResponse struct {
	ID      string           `json:"id"`
	Created int64            `json:"created"`
	Model   string           `json:"model"`
	Choices []ChatCompletion `json:"choices"`
	Usage   Usage            `json:"usage"`
}

// CreatedAt returns Created as a time.
func (r *ChatCompletionSyncResponse) CreatedAt() time.Time {
	return time.Unix(r.Created, 0)
}

// DeltaMessage is a partial message fragment. A nil field means the value is
// unchanged from the previous fragment for the same choice index.
type DeltaMessage struct {
	Role    *Role   `json:"role,omitempty"`
	Content *string `json:"content,omitempty"`
}

// DeltaChatCompletion is one choice's fragment within a stream event.
type DeltaChatCompletion struct {
	Index        int           `json:"index"`
	Delta        DeltaMessage  `json:"delta"`
	FinishReason *FinishReason `json:"finish_reason"`
}

// ChatCompletionDeltaResponse is one stream event's worth of incremental data.
// Deltas never carry usage.
type ChatCompletionDeltaResponse struct {
	ID      string                `json:"id"`
	Created int64                 `json:"created"`
	Model   string                `json:"model"`
	Choices []DeltaChatCompletion `json:"choices"`
}

func ptr[T any](v T) *T { return &v }

func deref[T any](p *T) (T, bool) {
	if p == nil {
		var zero T
		return zero, false
	}
	return *p, true
}
