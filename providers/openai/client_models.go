package openai

import (
	"context"
	"net/http"
	"net/url"
)

const modelsPath = "/v1/models"

// ListModels returns the models available to the account.
func (c *Client) ListModels(ctx context.Context) ([]Model, error) {
	var list dataList[Model]
	if err := c.doJSON(ctx, "models.list", "", http.MethodGet, modelsPath, nil, &list); err != nil {
		return nil, err
	}
	return list.Data, nil
}

// GetModel returns one model by id.
func (c *Client) GetModel(ctx context.Context, id string) (*Model, error) {
	var m Model
	if err := c.doJSON(ctx, "models.get", id, http.MethodGet, modelsPath+"/"+url.PathEscape(id), nil, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// DeleteFineTuneModel deletes a model produced by a fine-tune job.
func (c *Client) DeleteFineTuneModel(ctx context.Context, model string) (*DeleteModelResponse, error) {
	var resp DeleteModelResponse
	if err := c.doJSON(ctx, "models.delete", model, http.MethodDelete, modelsPath+"/"+url.PathEscape(model), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
