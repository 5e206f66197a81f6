package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/petal-labs/chatstream/core"
	"github.com/petal-labs/chatstream/providers/internal/normalize"
)

const (
	headerClientRequestID = "X-Client-Request-Id"
	headerRequestID       = "x-request-id"
	contentTypeJSON       = "application/json"
)

// buildHeaders constructs the HTTP headers for a request.
func (c *Client) buildHeaders() http.Header {
	headers := make(http.Header)

	headers.Set("Authorization", "Bearer "+c.config.APIKey.Expose())

	if c.config.OrgID != "" {
		headers.Set("OpenAI-Organization", c.config.OrgID)
	}
	if c.config.ProjectID != "" {
		headers.Set("OpenAI-Project", c.config.ProjectID)
	}

	for key, values := range c.config.Headers {
		for _, v := range values {
			headers.Add(key, v)
		}
	}

	return headers
}

// call tracks one logical request for telemetry.
type call struct {
	hook      core.TelemetryHook
	operation string
	model     string
	requestID string
	start     time.Time
}

// begin starts a call and notifies the telemetry hook.
func (c *Client) begin(operation, model string) *call {
	cl := &call{
		hook:      c.config.Telemetry,
		operation: operation,
		model:     model,
		requestID: uuid.NewString(),
		start:     time.Now(),
	}
	cl.hook.OnRequestStart(core.RequestStartEvent{
		Operation: operation,
		Model:     model,
		RequestID: cl.requestID,
		Start:     cl.start,
	})
	return cl
}

// finish notifies the telemetry hook that the call ended.
func (cl *call) finish(usage core.Usage, events int, err error) {
	cl.hook.OnRequestEnd(core.RequestEndEvent{
		Operation: cl.operation,
		Model:     cl.model,
		RequestID: cl.requestID,
		Start:     cl.start,
		End:       time.Now(),
		Usage:     usage,
		Events:    events,
		Err:       err,
	})
}

// newRequest creates an HTTP request against the service root.
func (c *Client) newRequest(ctx context.Context, cl *call, method, path string, body io.Reader, contentType string, stream bool) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.config.BaseURL+path, body)
	if err != nil {
		return nil, newNetworkError(err)
	}

	for key, values := range c.buildHeaders() {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set(headerClientRequestID, cl.requestID)
	if stream {
		req.Header.Set("Accept", "text/event-stream")
		req.Header.Set("Cache-Control", "no-cache")
	} else {
		req.Header.Set("Accept", contentTypeJSON)
	}

	return req, nil
}

// send executes req. A non-success status is read in full and returned as
// a remote error; on success the caller owns the response body.
func (c *Client) send(req *http.Request) (*http.Response, error) {
	resp, err := c.config.HTTPClient.Do(req)
	if err != nil {
		return nil, newNetworkError(err)
	}

	if !normalize.IsSuccess(resp.StatusCode) {
		defer resp.Body.Close()
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, newNetworkError(err)
		}
		return nil, normalizeError(resp.StatusCode, body, resp.Header.Get(headerRequestID))
	}

	return resp, nil
}

// exchange sends a request and reads the full success body.
func (c *Client) exchange(ctx context.Context, cl *call, method, path string, body io.Reader, contentType string) ([]byte, error) {
	req, err := c.newRequest(ctx, cl, method, path, body, contentType, false)
	if err != nil {
		return nil, err
	}

	resp, err := c.send(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, newNetworkError(err)
	}
	return respBody, nil
}

// doJSON performs a JSON request and decodes the response into out. A nil
// in sends no body.
func (c *Client) doJSON(ctx context.Context, operation, model, method, path string, in, out any) error {
	cl := c.begin(operation, model)
	usage, err := c.doJSONCall(ctx, cl, method, path, in, out)
	cl.finish(usage, 0, err)
	return err
}

func (c *Client) doJSONCall(ctx context.Context, cl *call, method, path string, in, out any) (core.Usage, error) {
	var (
		body        io.Reader
		contentType string
	)
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return core.Usage{}, newDecodeError(err)
		}
		body = bytes.NewReader(data)
		contentType = contentTypeJSON
	}

	respBody, err := c.exchange(ctx, cl, method, path, body, contentType)
	if err != nil {
		return core.Usage{}, err
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return core.Usage{}, newDecodeError(err)
	}
	return usageOf(out), nil
}

// usageReporter is implemented by responses that carry token accounting.
type usageReporter interface {
	tokenUsage() core.Usage
}

func usageOf(v any) core.Usage {
	switch r := v.(type) {
	case *core.ChatCompletionSyncResponse:
		return r.Usage
	case usageReporter:
		return r.tokenUsage()
	}
	return core.Usage{}
}

// doMultipart sends a multipart form and decodes the JSON response into out.
func (c *Client) doMultipart(ctx context.Context, operation, model, path string, form *formWriter, out any) error {
	cl := c.begin(operation, model)
	respBody, err := c.sendForm(ctx, cl, path, form)
	if err == nil {
		if uerr := json.Unmarshal(respBody, out); uerr != nil {
			err = newDecodeError(uerr)
		}
	}
	cl.finish(core.Usage{}, 0, err)
	return err
}

// sendForm sends a multipart form and returns the raw success body.
func (c *Client) sendForm(ctx context.Context, cl *call, path string, form *formWriter) ([]byte, error) {
	body, contentType, err := form.finish()
	if err != nil {
		return nil, newDecodeError(err)
	}
	return c.exchange(ctx, cl, http.MethodPost, path, body, contentType)
}
