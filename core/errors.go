package core

import (
	"errors"
	"fmt"
)

// ProviderError represents an error returned by the remote service or the
// transport underneath it, with full context.
type ProviderError struct {
	Provider  string
	Status    int
	RequestID string
	Code      string
	Message   string
	// Body is the raw response body for non-success HTTP statuses.
	Body []byte
	Err  error
}

// Error implements the error interface.
func (e *ProviderError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("%s: %s", e.Provider, e.Message)
	}
	if e.RequestID != "" {
		return fmt.Sprintf("%s: %s (status=%d, code=%s, request_id=%s)",
			e.Provider, e.Message, e.Status, e.Code, e.RequestID)
	}
	return fmt.Sprintf("%s: %s (status=%d, code=%s)",
		e.Provider, e.Message, e.Status, e.Code)
}

// Unwrap returns the underlying error for error chaining.
func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Sentinel errors for classification.
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrRateLimited  = errors.New("rate limited")
	ErrBadRequest   = errors.New("bad request")
	ErrNotFound     = errors.New("not found")
	ErrServer       = errors.New("server error")
	ErrNetwork      = errors.New("network error")
	ErrDecode       = errors.New("decode error")
	ErrMissingField = errors.New("missing required field")
	ErrInvalidEnum  = errors.New("invalid enum value")
)

// MissingFieldError is returned when a builder is finalized without one of
// its required fields. It never involves the network.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field %q", e.Field)
}

// Unwrap lets errors.Is match ErrMissingField.
func (e *MissingFieldError) Unwrap() error {
	return ErrMissingField
}

// InvalidEnumError is returned when a wire string does not name any variant
// of an enumerated type, or when an unnamed variant is serialized.
type InvalidEnumError struct {
	Type  string
	Value string
}

func (e *InvalidEnumError) Error() string {
	return fmt.Sprintf("invalid %s %q", e.Type, e.Value)
}

// Is reports whether target is ErrInvalidEnum or ErrDecode.
func (e *InvalidEnumError) Is(target error) bool {
	return target == ErrInvalidEnum || target == ErrDecode
}

// IsRemote reports whether err carries a non-success HTTP status from the
// remote service.
func IsRemote(err error) bool {
	var pe *ProviderError
	return errors.As(err, &pe) && pe.Status > 0
}

// IsTransport reports whether err is a connection-level failure.
func IsTransport(err error) bool {
	return errors.Is(err, ErrNetwork)
}

// IsDecode reports whether err is a response or event payload that failed
// to decode.
func IsDecode(err error) bool {
	return errors.Is(err, ErrDecode)
}
