package core

import "time"

// TelemetryHook receives notifications about request lifecycle events.
// Implementations can use this for logging, metrics, tracing, etc.
//
// Events never include API keys, message content or generated output. Only
// operational metadata is exposed (operation, model, request id, timing,
// token counts). Keep it that way when adding fields.
type TelemetryHook interface {
	// OnRequestStart is called when a request begins.
	OnRequestStart(e RequestStartEvent)

	// OnRequestEnd is called exactly once per started request. For streams
	// it fires when the stream ends, fails terminally, or is closed.
	OnRequestEnd(e RequestEndEvent)
}

// RequestStartEvent contains metadata about a starting request.
type RequestStartEvent struct {
	Operation string    // e.g. "chat.completions", "chat.completions.stream"
	Model     string    // Model being called, if the operation has one
	RequestID string    // Client-generated request id
	Start     time.Time // When the request started
}

// RequestEndEvent contains metadata about a completed request.
type RequestEndEvent struct {
	Operation string
	Model     string
	RequestID string
	Start     time.Time
	End       time.Time
	Usage     Usage // Zero for streams and operations without accounting
	Events    int   // Stream events delivered; zero for non-streaming calls
	Err       error // Error if request failed, nil on success
}

// Duration returns the elapsed time for the request.
func (e RequestEndEvent) Duration() time.Duration {
	return e.End.Sub(e.Start)
}

// NoopTelemetryHook is a no-op implementation of TelemetryHook.
type NoopTelemetryHook struct{}

// OnRequestStart does nothing.
func (NoopTelemetryHook) OnRequestStart(RequestStartEvent) {}

// OnRequestEnd does nothing.
func (NoopTelemetryHook) OnRequestEnd(RequestEndEvent) {}

var _ TelemetryHook = NoopTelemetryHook{}
