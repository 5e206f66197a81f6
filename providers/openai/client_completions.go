package openai

import (
	"context"
	"net/http"

	"github.com/petal-labs/chatstream/core"
)

// CreateCompletion generates text continuing req.Prompt.
func (c *Client) CreateCompletion(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error) {
	if req.Model == "" {
		return nil, &core.MissingFieldError{Field: "model"}
	}

	var resp CompletionResponse
	if err := c.doJSON(ctx, "completions", req.Model, http.MethodPost, "/v1/completions", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CreateEdit rewrites req.Input following req.Instruction.
func (c *Client) CreateEdit(ctx context.Context, req *EditRequest) (*EditResponse, error) {
	if req.Model == "" {
		return nil, &core.MissingFieldError{Field: "model"}
	}
	if req.Instruction == "" {
		return nil, &core.MissingFieldError{Field: "instruction"}
	}

	var resp EditResponse
	if err := c.doJSON(ctx, "edits", req.Model, http.MethodPost, "/v1/edits", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CreateEmbedding returns one vector per input.
func (c *Client) CreateEmbedding(ctx context.Context, req *EmbeddingRequest) (*EmbeddingResponse, error) {
	if req.Model == "" {
		return nil, &core.MissingFieldError{Field: "model"}
	}

	var resp EmbeddingResponse
	if err := c.doJSON(ctx, "embeddings", req.Model, http.MethodPost, "/v1/embeddings", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CreateModeration classifies req.Input against the content policy.
func (c *Client) CreateModeration(ctx context.Context, req *ModerationRequest) (*ModerationResponse, error) {
	var resp ModerationResponse
	if err := c.doJSON(ctx, "moderations", req.Model, http.MethodPost, "/v1/moderations", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
