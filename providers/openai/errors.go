package openai

import "github.com/petal-labs/chatstream/providers/internal/normalize"

// normalizeError converts a non-success HTTP response into a remote error.
func normalizeError(status int, body []byte, requestID string) error {
	return normalize.RemoteError(providerID, status, body, requestID)
}

// newNetworkError creates a ProviderError for connection-level failures.
func newNetworkError(err error) error {
	return normalize.TransportError(providerID, err)
}

// newDecodeError creates a ProviderError for encode and decode failures.
func newDecodeError(err error) error {
	return normalize.DecodeError(providerID, err)
}
