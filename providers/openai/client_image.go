package openai

import (
	"context"
	"net/http"

	"github.com/petal-labs/chatstream/core"
)

const (
	imageGenerationsPath = "/v1/images/generations"
	imageEditsPath       = "/v1/images/edits"
	imageVariationsPath  = "/v1/images/variations"
)

// CreateImage generates images from a text prompt.
func (c *Client) CreateImage(ctx context.Context, req *ImageRequest) (*ImageResponse, error) {
	if req.Prompt == "" {
		return nil, &core.MissingFieldError{Field: "prompt"}
	}

	var resp ImageResponse
	if err := c.doJSON(ctx, "images.generate", "", http.MethodPost, imageGenerationsPath, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CreateImageEdit edits req.Image following req.Prompt, optionally limited
// to the transparent area of req.Mask.
func (c *Client) CreateImageEdit(ctx context.Context, req *ImageEditRequest) (*ImageResponse, error) {
	if req.Prompt == "" || req.Image.Reader == nil {
		files := []FileResource{req.Image}
		if req.Mask != nil {
			files = append(files, *req.Mask)
		}
		closeFiles(files...)
		if req.Prompt == "" {
			return nil, &core.MissingFieldError{Field: "prompt"}
		}
		return nil, &core.MissingFieldError{Field: "image"}
	}

	form := newFormWriter()
	form.field("prompt", req.Prompt)
	form.file("image", req.Image)
	if req.Mask != nil {
		form.file("mask", *req.Mask)
	}
	writeImageOptions(form, req.N, req.Size, req.ResponseFormat, req.User)

	var resp ImageResponse
	if err := c.doMultipart(ctx, "images.edit", "", imageEditsPath, form, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CreateImageVariation generates variations of req.Image.
func (c *Client) CreateImageVariation(ctx context.Context, req *ImageVariationRequest) (*ImageResponse, error) {
	if req.Image.Reader == nil {
		return nil, &core.MissingFieldError{Field: "image"}
	}

	form := newFormWriter()
	form.file("image", req.Image)
	writeImageOptions(form, req.N, req.Size, req.ResponseFormat, req.User)

	var resp ImageResponse
	if err := c.doMultipart(ctx, "images.variation", "", imageVariationsPath, form, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func writeImageOptions(form *formWriter, n *int, size ImageSize, format ImageResponseFormat, user string) {
	form.optionalInt("n", n)
	form.optional("size", string(size))
	form.optional("response_format", string(format))
	form.optional("user", user)
}
