package core

import (
	"context"
	"log/slog"
)

// LogHook is a TelemetryHook that writes lifecycle events to a slog.Logger.
type LogHook struct {
	logger *slog.Logger
}

// NewLogHook returns a hook logging to logger, or to slog.Default() if nil.
func NewLogHook(logger *slog.Logger) *LogHook {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogHook{logger: logger}
}

// OnRequestStart logs at debug level.
func (h *LogHook) OnRequestStart(e RequestStartEvent) {
	h.logger.Debug("request started",
		slog.String("operation", e.Operation),
		slog.String("model", e.Model),
		slog.String("request_id", e.RequestID),
	)
}

// OnRequestEnd logs at info level, or warn when the request failed.
func (h *LogHook) OnRequestEnd(e RequestEndEvent) {
	attrs := []slog.Attr{
		slog.String("operation", e.Operation),
		slog.String("model", e.Model),
		slog.String("request_id", e.RequestID),
		slog.Duration("duration", e.Duration()),
	}
	if e.Usage.TotalTokens > 0 {
		attrs = append(attrs, slog.Group("usage",
			slog.Int("prompt_tokens", e.Usage.PromptTokens),
			slog.Int("completion_tokens", e.Usage.CompletionTokens),
			slog.Int("total_tokens", e.Usage.TotalTokens),
		))
	}
	if e.Events > 0 {
		attrs = append(attrs, slog.Int("events", e.Events))
	}

	if e.Err != nil {
		attrs = append(attrs, slog.String("error", e.Err.Error()))
		h.logger.LogAttrs(context.Background(), slog.LevelWarn, "request failed", attrs...)
		return
	}
	h.logger.LogAttrs(context.Background(), slog.LevelInfo, "request finished", attrs...)
}

var _ TelemetryHook = (*LogHook)(nil)
