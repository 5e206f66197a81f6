package openai

import (
	"context"
	"net/http"

	"github.com/petal-labs/chatstream/core"
)

const (
	// chatCompletionsPath is the API endpoint for chat completions.
	chatCompletionsPath = "/v1/chat/completions"

	opChat       = "chat.completions"
	opChatStream = "chat.completions.stream"
)

// CreateChatCompletion sends history and waits for the full response.
// The request body never carries a stream flag.
func (c *Client) CreateChatCompletion(ctx context.Context, history core.ChatHistory) (*core.ChatCompletionSyncResponse, error) {
	var resp core.ChatCompletionSyncResponse
	if err := c.doJSON(ctx, opChat, history.Model(), http.MethodPost, chatCompletionsPath, history, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
