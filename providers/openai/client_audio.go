package openai

import (
	"context"
	"encoding/json"

	"github.com/petal-labs/chatstream/core"
)

const (
	transcriptionsPath = "/v1/audio/transcriptions"
	translationsPath   = "/v1/audio/translations"
)

// CreateTranscription transcribes req.File in its spoken language.
func (c *Client) CreateTranscription(ctx context.Context, req *TranscriptionRequest) (*AudioResponse, error) {
	if err := validateAudio(req.File, req.Model); err != nil {
		return nil, err
	}

	form := newFormWriter()
	form.file("file", req.File)
	form.field("model", req.Model)
	form.optional("prompt", req.Prompt)
	form.optional("response_format", string(req.ResponseFormat))
	form.optionalFloat("temperature", req.Temperature)
	form.optional("language", req.Language)

	return c.doAudio(ctx, "audio.transcriptions", req.Model, transcriptionsPath, req.ResponseFormat, form)
}

// CreateTranslation transcribes req.File into English.
func (c *Client) CreateTranslation(ctx context.Context, req *TranslationRequest) (*AudioResponse, error) {
	if err := validateAudio(req.File, req.Model); err != nil {
		return nil, err
	}

	form := newFormWriter()
	form.file("file", req.File)
	form.field("model", req.Model)
	form.optional("prompt", req.Prompt)
	form.optional("response_format", string(req.ResponseFormat))
	form.optionalFloat("temperature", req.Temperature)

	return c.doAudio(ctx, "audio.translations", req.Model, translationsPath, req.ResponseFormat, form)
}

func validateAudio(file FileResource, model string) error {
	if file.Reader == nil {
		return &core.MissingFieldError{Field: "file"}
	}
	if model == "" {
		closeFiles(file)
		return &core.MissingFieldError{Field: "model"}
	}
	return nil
}

// doAudio sends an audio form. Plain-text formats are returned verbatim in
// AudioResponse.Text.
func (c *Client) doAudio(ctx context.Context, operation, model, path string, format AudioResponseFormat, form *formWriter) (*AudioResponse, error) {
	cl := c.begin(operation, model)

	body, err := c.sendForm(ctx, cl, path, form)
	if err != nil {
		cl.finish(core.Usage{}, 0, err)
		return nil, err
	}

	var resp AudioResponse
	if format.isJSON() {
		if uerr := json.Unmarshal(body, &resp); uerr != nil {
			err = newDecodeError(uerr)
		}
	} else {
		resp.Text = string(body)
	}
	cl.finish(core.Usage{}, 0, err)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}
