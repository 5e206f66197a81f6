// Package core provides the value types shared by the chatstream client.
//
// The core package owns the wire model of the chat-completion protocol:
// roles, finish reasons, string-or-list sequences, messages, the immutable
// chat request ([ChatHistory]) and the response and delta shapes returned by
// the synchronous and streaming paths. It has no network dependencies; the
// HTTP client lives in providers/openai.
//
// # Building a request
//
// [ChatHistoryBuilder] collects the required model and message history plus
// any optional sampling parameters, and finalizes into a [ChatHistory]:
//
//	history, err := core.NewChatHistoryBuilder().
//	    Model("gpt-3.5-turbo").
//	    System("You are a terse assistant.").
//	    User("Hello!").
//	    Temperature(0.2).
//	    Build()
//	if err != nil {
//	    return err // *core.MissingFieldError
//	}
//
// Optional parameters that were never set are omitted from the JSON payload
// entirely; they are never sent as null.
//
// The stream flag is not part of the builder. Each execution path encodes the
// request with [ChatHistory.Payload], forcing the flag it needs.
//
// # Streaming deltas
//
// The streaming path yields [ChatCompletionDeltaResponse] values. Each carries
// partial [DeltaMessage] fragments keyed by choice index. Folding fragments
// into complete messages is the caller's job; [DeltaAccumulator] is a helper
// for callers that want the common fold:
//
//	var acc core.DeltaAccumulator
//	for delta, err := range stream.All() {
//	    if err != nil {
//	        continue
//	    }
//	    acc.Add(delta)
//	}
//	full := acc.Response()
//
// # Errors
//
// Failures are typed values. Validation failures are [*MissingFieldError];
// everything that crossed the network is a [*ProviderError] classified by a
// sentinel ([ErrNetwork], [ErrDecode], [ErrUnauthorized], ...). Unknown enum
// strings in a response decode to [*InvalidEnumError], which matches
// [ErrDecode] under errors.Is.
//
// # Telemetry
//
// [TelemetryHook] receives request lifecycle events containing only
// operational metadata. [NewLogHook] adapts a *slog.Logger.
package core
