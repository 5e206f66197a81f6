package openai

import (
	"context"
	"net/http"
	"net/url"

	"github.com/petal-labs/chatstream/core"
)

const fineTunesPath = "/v1/fine-tunes"

// CreateFineTune starts a fine-tune job.
func (c *Client) CreateFineTune(ctx context.Context, req *CreateFineTuneRequest) (*FineTune, error) {
	if req.TrainingFile == "" {
		return nil, &core.MissingFieldError{Field: "training_file"}
	}

	var ft FineTune
	if err := c.doJSON(ctx, "fine_tunes.create", req.Model, http.MethodPost, fineTunesPath, req, &ft); err != nil {
		return nil, err
	}
	return &ft, nil
}

// GetFineTune returns one fine-tune job.
func (c *Client) GetFineTune(ctx context.Context, id string) (*FineTune, error) {
	var ft FineTune
	if err := c.doJSON(ctx, "fine_tunes.get", "", http.MethodGet, fineTunePath(id), nil, &ft); err != nil {
		return nil, err
	}
	return &ft, nil
}

// ListFineTunes returns the organization's fine-tune jobs.
func (c *Client) ListFineTunes(ctx context.Context) ([]FineTune, error) {
	var list dataList[FineTune]
	if err := c.doJSON(ctx, "fine_tunes.list", "", http.MethodGet, fineTunesPath, nil, &list); err != nil {
		return nil, err
	}
	return list.Data, nil
}

// CancelFineTune stops a running job.
func (c *Client) CancelFineTune(ctx context.Context, id string) (*FineTune, error) {
	var ft FineTune
	if err := c.doJSON(ctx, "fine_tunes.cancel", "", http.MethodPost, fineTunePath(id)+"/cancel", nil, &ft); err != nil {
		return nil, err
	}
	return &ft, nil
}

// ListFineTuneEvents returns the log of one job.
func (c *Client) ListFineTuneEvents(ctx context.Context, id string) ([]FineTuneEvent, error) {
	var list dataList[FineTuneEvent]
	if err := c.doJSON(ctx, "fine_tunes.events", "", http.MethodGet, fineTunePath(id)+"/events", nil, &list); err != nil {
		return nil, err
	}
	return list.Data, nil
}

func fineTunePath(id string) string {
	return fineTunesPath + "/" + url.PathEscape(id)
}
