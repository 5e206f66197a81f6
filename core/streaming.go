package core

import (
	"slices"
	"strings"
)

// DeltaAccumulator folds successive stream deltas into complete messages,
// keyed by choice index. The zero value is ready to use.
// DeltaAccumulator is NOT thread-safe.
type DeltaAccumulator struct {
	id      string
	created int64
	model   string
	choices map[int]*accumulatedChoice
}

type accumulatedChoice struct {
	role         Role
	content      strings.Builder
	finishReason *FinishReason
}

// Add folds one delta response. Nil fields leave the previous value unchanged.
func (a *DeltaAccumulator) Add(d *ChatCompletionDeltaResponse) {
	if d == nil {
		return
	}
	if d.ID != "" {
		a.id = d.ID
	}
	if d.Created != 0 {
		a.created = d.Created
	}
	if d.Model != "" {
		a.model = d.Model
	}
	if a.choices == nil {
		a.choices = make(map[int]*accumulatedChoice)
	}

	for _, c := range d.Choices {
		acc, ok := a.choices[c.Index]
		if !ok {
			acc = &accumulatedChoice{role: RoleAssistant}
			a.choices[c.Index] = acc
		}
		if c.Delta.Role != nil {
			acc.role = *c.Delta.Role
		}
		if c.Delta.Content != nil {
			acc.content.WriteString(*c.Delta.Content)
		}
		if c.FinishReason != nil {
			fr := *c.FinishReason
			acc.finishReason = &fr
		}
	}
}

// Response returns the folded state as a synchronous-shaped response with
// choices ordered by index. Usage is always zero; deltas carry none.
func (a *DeltaAccumulator) Response() *ChatCompletionSyncResponse {
	resp := &ChatCompletionSyncResponse{
		ID:      a.id,
		Created: a.created,
		Model:   a.model,
		Choices: make([]ChatCompletion, 0, len(a.choices)),
	}

	indexes := make([]int, 0, len(a.choices))
	for i := range a.choices {
		indexes = append(indexes, i)
	}
	slices.Sort(indexes)

	for _, i := range indexes {
		c := a.choices[i]
		resp.Choices = append(resp.Choices, ChatCompletion{
			Index:        i,
			Message:      ChatMessage{Role: c.role, Content: c.content.String()},
			FinishReason: c.finishReason,
		})
	}
	return resp
}
