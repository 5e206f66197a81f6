package core

import (
	"maps"
	"slices"
)

// ChatHistoryBuilder provides a fluent API for building chat requests.
// ChatHistoryBuilder is NOT thread-safe and should not be shared across goroutines.
type ChatHistoryBuilder struct {
	h ChatHistory
}

// NewChatHistoryBuilder returns an empty builder.
func NewChatHistoryBuilder() *ChatHistoryBuilder {
	return &ChatHistoryBuilder{}
}

// Messages replaces the transcript with msgs.
func (b *ChatHistoryBuilder) Messages(msgs ...ChatMessage) *ChatHistoryBuilder {
	b.h.messages = slices.Clone(msgs)
	return b
}

// Message appends one message to the transcript.
func (b *ChatHistoryBuilder) Message(role Role, content string) *ChatHistoryBuilder {
	b.h.messages = append(b.h.messages, ChatMessage{Role: role, Content: content})
	return b
}

// System appends a system message.
func (b *ChatHistoryBuilder) System(s string) *ChatHistoryBuilder {
	return b.Message(RoleSystem, s)
}

// User appends a user message.
func (b *ChatHistoryBuilder) User(s string) *ChatHistoryBuilder {
	return b.Message(RoleUser, s)
}

// Assistant appends an assistant message.
func (b *ChatHistoryBuilder) Assistant(s string) *ChatHistoryBuilder {
	return b.Message(RoleAssistant, s)
}

// Model sets the model name.
func (b *ChatHistoryBuilder) Model(model string) *ChatHistoryBuilder {
	b.h.model = model
	return b
}

// Temperature sets the temperature parameter.
func (b *ChatHistoryBuilder) Temperature(v float64) *ChatHistoryBuilder {
	b.h.temperature = &v
	return b
}

// TopP sets the nucleus sampling parameter.
func (b *ChatHistoryBuilder) TopP(v float64) *ChatHistoryBuilder {
	b.h.topP = &v
	return b
}

// N sets how many choices to generate.
func (b *ChatHistoryBuilder) N(n int) *ChatHistoryBuilder {
	b.h.n = &n
	return b
}

// Stop sets the stop sequence(s).
func (b *ChatHistoryBuilder) Stop(s Sequence) *ChatHistoryBuilder {
	b.h.stop = &s
	return b
}

// MaxTokens sets the maximum tokens parameter.
func (b *ChatHistoryBuilder) MaxTokens(n int) *ChatHistoryBuilder {
	b.h.maxTokens = &n
	return b
}

// PresencePenalty sets the presence penalty.
func (b *ChatHistoryBuilder) PresencePenalty(v float64) *ChatHistoryBuilder {
	b.h.presencePenalty = &v
	return b
}

// FrequencyPenalty sets the frequency penalty.
func (b *ChatHistoryBuilder) FrequencyPenalty(v float64) *ChatHistoryBuilder {
	b.h.frequencyPenalty = &v
	return b
}

// LogitBias sets the token bias map. Biases are conventionally in
// [-100, 100]; the range is not checked here.
func (b *ChatHistoryBuilder) LogitBias(bias map[uint64]int) *ChatHistoryBuilder {
	b.h.logitBias = maps.Clone(bias)
	return b
}

// UserTag sets the end-user tag sent as "user".
func (b *ChatHistoryBuilder) UserTag(user string) *ChatHistoryBuilder {
	b.h.user = &user
	return b
}

// Build validates the required fields, in the order messages then model,
// and returns an independent ChatHistory.
func (b *ChatHistoryBuilder) Build() (ChatHistory, error) {
	if len(b.h.messages) == 0 {
		return ChatHistory{}, &MissingFieldError{Field: "messages"}
	}
	if b.h.model == "" {
		return ChatHistory{}, &MissingFieldError{Field: "model"}
	}

	h := b.h
	h.messages = slices.Clone(b.h.messages)
	h.logitBias = maps.Clone(b.h.logitBias)
	return h, nil
}
