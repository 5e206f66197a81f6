// Package otel exports chatstream request lifecycle events as OpenTelemetry
// spans.
package otel

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/petal-labs/chatstream/core"
)

// Attribute keys set on every span.
const (
	AttrOperation        = attribute.Key("chatstream.operation")
	AttrModel            = attribute.Key("chatstream.model")
	AttrRequestID        = attribute.Key("chatstream.request_id")
	AttrPromptTokens     = attribute.Key("chatstream.usage.prompt_tokens")
	AttrCompletionTokens = attribute.Key("chatstream.usage.completion_tokens")
	AttrTotalTokens      = attribute.Key("chatstream.usage.total_tokens")
	AttrStreamEvents     = attribute.Key("chatstream.stream.events")
)

// Hook is a core.TelemetryHook that records one client span per request.
// Spans are created when the request ends, backdated to its start time, so
// the hook keeps no per-request state and is safe for concurrent use.
type Hook struct {
	tracer trace.Tracer
}

// NewHook returns a hook recording spans with tracer.
func NewHook(tracer trace.Tracer) *Hook {
	return &Hook{tracer: tracer}
}

// OnRequestStart does nothing; the span is emitted from OnRequestEnd.
func (h *Hook) OnRequestStart(core.RequestStartEvent) {}

// OnRequestEnd records the finished request as a span.
func (h *Hook) OnRequestEnd(e core.RequestEndEvent) {
	attrs := []attribute.KeyValue{
		AttrOperation.String(e.Operation),
		AttrRequestID.String(e.RequestID),
	}
	if e.Model != "" {
		attrs = append(attrs, AttrModel.String(e.Model))
	}
	if e.Usage.TotalTokens > 0 {
		attrs = append(attrs,
			AttrPromptTokens.Int(e.Usage.PromptTokens),
			AttrCompletionTokens.Int(e.Usage.CompletionTokens),
			AttrTotalTokens.Int(e.Usage.TotalTokens),
		)
	}
	if e.Events > 0 {
		attrs = append(attrs, AttrStreamEvents.Int(e.Events))
	}

	_, span := h.tracer.Start(context.Background(), e.Operation,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithTimestamp(e.Start),
		trace.WithAttributes(attrs...),
	)
	if e.Err != nil {
		span.RecordError(e.Err, trace.WithTimestamp(e.End))
		span.SetStatus(codes.Error, e.Err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End(trace.WithTimestamp(e.End))
}

var _ core.TelemetryHook = (*Hook)(nil)
