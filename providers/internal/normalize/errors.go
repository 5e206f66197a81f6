// Package normalize maps HTTP and decoding failures onto core error values.
package normalize

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/petal-labs/chatstream/core"
)

// errorEnvelope is the {"error":{"message":"...","type":"...","code":"..."}}
// body the service returns with non-success statuses. code may be a string
// or null.
type errorEnvelope struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    any    `json:"code"`
	} `json:"error"`
}

// RemoteError builds the error for a non-success HTTP status. The raw body is
// kept whether or not it parses as an error envelope.
func RemoteError(provider string, status int, body []byte, requestID string) error {
	var env errorEnvelope
	_ = json.Unmarshal(body, &env)

	message := env.Error.Message
	if message == "" {
		message = http.StatusText(status)
	}

	code, _ := env.Error.Code.(string)
	if code == "" {
		code = env.Error.Type
	}

	return &core.ProviderError{
		Provider:  provider,
		Status:    status,
		RequestID: requestID,
		Code:      code,
		Message:   message,
		Body:      body,
		Err:       SentinelForStatus(status),
	}
}

// TransportError wraps connection-level failures.
func TransportError(provider string, err error) error {
	return &core.ProviderError{
		Provider: provider,
		Message:  err.Error(),
		Err:      errors.Join(core.ErrNetwork, err),
	}
}

// DecodeError wraps body and payload decoding failures. The cause stays
// reachable through errors.As.
func DecodeError(provider string, err error) error {
	return &core.ProviderError{
		Provider: provider,
		Message:  err.Error(),
		Err:      errors.Join(core.ErrDecode, err),
	}
}

// SentinelForStatus maps an HTTP status code to a core sentinel error.
func SentinelForStatus(status int) error {
	switch {
	case status == http.StatusBadRequest:
		return core.ErrBadRequest
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return core.ErrUnauthorized
	case status == http.StatusNotFound:
		return core.ErrNotFound
	case status == http.StatusTooManyRequests:
		return core.ErrRateLimited
	case status >= 500:
		return core.ErrServer
	default:
		return core.ErrBadRequest
	}
}

// IsSuccess reports whether status is in the 2xx class.
func IsSuccess(status int) bool {
	return status >= 200 && status < 300
}
