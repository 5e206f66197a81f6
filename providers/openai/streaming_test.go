package openai

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/petal-labs/chatstream/core"
	"github.com/petal-labs/chatstream/internal/testutil"
	"golang.org/x/sync/errgroup"
)

func deltaJSON(content string) string {
	return fmt.Sprintf(`{"id":"chatcmpl-1","created":1,"model":"gpt-3.5-turbo","choices":[{"index":0,"delta":{"content":%q},"finish_reason":null}]}`, content)
}

const firstDelta = `{"id":"chatcmpl-1","created":1,"model":"gpt-3.5-turbo","choices":[{"index":0,"delta":{"role":"assistant"},"finish_reason":null}]}`

const lastDelta = `{"id":"chatcmpl-1","created":1,"model":"gpt-3.5-turbo","choices":[{"index":0,"delta":{},"finish_reason":"stop"}]}`

func TestChatStreamThreeDeltas(t *testing.T) {
	api := testutil.NewMockAPI()
	defer api.Close()
	api.SSE(http.MethodPost, "/v1/chat/completions", firstDelta, deltaJSON("Hi"), lastDelta, "[DONE]")

	client := New("test-key", WithBaseURL(api.URL()))
	stream, err := client.CreateChatCompletionStream(context.Background(), testHistory(t))
	if err != nil {
		t.Fatalf("CreateChatCompletionStream() error = %v", err)
	}
	defer stream.Close()

	var got []*core.ChatCompletionDeltaResponse
	for delta, err := range stream.All() {
		if err != nil {
			t.Fatalf("stream error = %v", err)
		}
		got = append(got, delta)
	}

	if len(got) != 3 {
		t.Fatalf("len(deltas) = %d, want 3", len(got))
	}
	if r := got[0].Choices[0].Delta.Role; r == nil || *r != core.RoleAssistant {
		t.Errorf("first delta role = %v, want assistant", r)
	}
	if c := got[1].Choices[0].Delta.Content; c == nil || *c != "Hi" {
		t.Errorf("second delta content = %v, want Hi", c)
	}
	if fr := got[2].Choices[0].FinishReason; fr == nil || *fr != core.FinishReasonStop {
		t.Errorf("last delta finish reason = %v, want stop", fr)
	}

	if _, err := stream.Recv(); !errors.Is(err, io.EOF) {
		t.Errorf("Recv() after end = %v, want io.EOF", err)
	}
}

func TestChatStreamRequestShape(t *testing.T) {
	api := testutil.NewMockAPI()
	defer api.Close()
	api.SSE(http.MethodPost, "/v1/chat/completions", "[DONE]")

	client := New("test-key", WithBaseURL(api.URL()))
	stream, err := client.CreateChatCompletionStream(context.Background(), testHistory(t))
	if err != nil {
		t.Fatalf("CreateChatCompletionStream() error = %v", err)
	}
	if _, err := stream.Recv(); !errors.Is(err, io.EOF) {
		t.Errorf("Recv() = %v, want io.EOF", err)
	}

	req := api.LastRequest()
	body, err := req.JSON()
	if err != nil {
		t.Fatalf("request body: %v", err)
	}
	if body["stream"] != true {
		t.Errorf("stream = %v, want true", body["stream"])
	}
	if got := req.Header.Get("Accept"); got != "text/event-stream" {
		t.Errorf("Accept = %q, want text/event-stream", got)
	}
	if got := req.Header.Get("Authorization"); got != "Bearer test-key" {
		t.Errorf("Authorization = %q", got)
	}
}

func TestChatStreamMalformedDeltaIsNotTerminal(t *testing.T) {
	api := testutil.NewMockAPI()
	defer api.Close()
	api.SSE(http.MethodPost, "/v1/chat/completions", deltaJSON("a"), `{"choices": [`, deltaJSON("b"), "[DONE]")

	client := New("test-key", WithBaseURL(api.URL()))
	stream, err := client.CreateChatCompletionStream(context.Background(), testHistory(t))
	if err != nil {
		t.Fatalf("CreateChatCompletionStream() error = %v", err)
	}

	var kinds []string
	for delta, err := range stream.All() {
		switch {
		case err == nil:
			kinds = append(kinds, "ok:"+*delta.Choices[0].Delta.Content)
		case core.IsDecode(err):
			kinds = append(kinds, "decode")
		default:
			t.Fatalf("unexpected error = %v", err)
		}
	}

	want := []string{"ok:a", "decode", "ok:b"}
	if strings.Join(kinds, ",") != strings.Join(want, ",") {
		t.Errorf("items = %v, want %v", kinds, want)
	}
}

func TestChatStreamNonObjectPayloadIsDecodeError(t *testing.T) {
	api := testutil.NewMockAPI()
	defer api.Close()
	api.SSE(http.MethodPost, "/v1/chat/completions",
		"null",
		`{"choices":[{"index":0,"delta":{"role":"tool"}}]}`,
		`"text"`,
		deltaJSON("ok"),
		"[DONE]")

	client := New("test-key", WithBaseURL(api.URL()))
	stream, err := client.CreateChatCompletionStream(context.Background(), testHistory(t))
	if err != nil {
		t.Fatalf("CreateChatCompletionStream() error = %v", err)
	}

	var kinds []string
	for delta, err := range stream.All() {
		switch {
		case err == nil:
			kinds = append(kinds, "ok:"+*delta.Choices[0].Delta.Content)
		case core.IsDecode(err):
			kinds = append(kinds, "decode")
		default:
			t.Fatalf("unexpected error = %v", err)
		}
	}

	want := []string{"decode", "decode", "decode", "ok:ok"}
	if strings.Join(kinds, ",") != strings.Join(want, ",") {
		t.Errorf("items = %v, want %v", kinds, want)
	}
	if stream.Delivered() != 1 {
		t.Errorf("Delivered() = %d, want 1", stream.Delivered())
	}
}

func TestChatStreamUnknownFinishReasonIsDecodeError(t *testing.T) {
	api := testutil.NewMockAPI()
	defer api.Close()
	api.SSE(http.MethodPost, "/v1/chat/completions",
		`{"id":"x","created":1,"model":"m","choices":[{"index":0,"delta":{},"finish_reason":"weird"}]}`,
		"[DONE]")

	client := New("test-key", WithBaseURL(api.URL()))
	stream, err := client.CreateChatCompletionStream(context.Background(), testHistory(t))
	if err != nil {
		t.Fatalf("CreateChatCompletionStream() error = %v", err)
	}
	defer stream.Close()

	_, err = stream.Recv()
	if !errors.Is(err, core.ErrInvalidEnum) {
		t.Fatalf("Recv() error = %v, want ErrInvalidEnum", err)
	}
	if _, err := stream.Recv(); !errors.Is(err, io.EOF) {
		t.Errorf("Recv() = %v, want io.EOF", err)
	}
}

func TestChatStreamSkipsControlEvents(t *testing.T) {
	api := testutil.NewMockAPI()
	defer api.Close()
	api.Handle(http.MethodPost, "/v1/chat/completions", func(w http.ResponseWriter, r *http.Request) {
		testutil.StartSSE(w)
		fmt.Fprint(w, ": keep-alive\n\n")
		fmt.Fprint(w, "event: ping\ndata: {}\n\n")
		fmt.Fprint(w, "data:\n\n")
		fmt.Fprintf(w, "data: %s\r\n\r\n", deltaJSON("x"))
		fmt.Fprint(w, "data: [DONE]\n\n")
	})

	client := New("test-key", WithBaseURL(api.URL()))
	stream, err := client.CreateChatCompletionStream(context.Background(), testHistory(t))
	if err != nil {
		t.Fatalf("CreateChatCompletionStream() error = %v", err)
	}

	var n int
	for delta, err := range stream.All() {
		if err != nil {
			t.Fatalf("stream error = %v", err)
		}
		if got := *delta.Choices[0].Delta.Content; got != "x" {
			t.Errorf("content = %q, want x", got)
		}
		n++
	}
	if n != 1 {
		t.Errorf("deltas = %d, want 1", n)
	}
}

func TestChatStreamEndsWithoutDoneMarker(t *testing.T) {
	api := testutil.NewMockAPI()
	defer api.Close()
	api.SSE(http.MethodPost, "/v1/chat/completions", deltaJSON("a"), deltaJSON("b"))

	client := New("test-key", WithBaseURL(api.URL()))
	stream, err := client.CreateChatCompletionStream(context.Background(), testHistory(t))
	if err != nil {
		t.Fatalf("CreateChatCompletionStream() error = %v", err)
	}

	var n int
	for _, err := range stream.All() {
		if err != nil {
			t.Fatalf("stream error = %v", err)
		}
		n++
	}
	if n != 2 {
		t.Errorf("deltas = %d, want 2", n)
	}
}

func TestChatStreamTransportErrorIsTerminal(t *testing.T) {
	api := testutil.NewMockAPI()
	defer api.Close()
	api.Handle(http.MethodPost, "/v1/chat/completions", func(w http.ResponseWriter, r *http.Request) {
		testutil.StartSSE(w)
		testutil.WriteEvent(w, deltaJSON("a"))
		conn, _, err := w.(http.Hijacker).Hijack()
		if err != nil {
			return
		}
		conn.Close()
	})

	client := New("test-key", WithBaseURL(api.URL()))
	stream, err := client.CreateChatCompletionStream(context.Background(), testHistory(t))
	if err != nil {
		t.Fatalf("CreateChatCompletionStream() error = %v", err)
	}

	if _, err := stream.Recv(); err != nil {
		t.Fatalf("first Recv() error = %v", err)
	}
	_, err = stream.Recv()
	if !core.IsTransport(err) {
		t.Fatalf("second Recv() = %v, want transport error", err)
	}
	if _, err := stream.Recv(); !errors.Is(err, io.EOF) {
		t.Errorf("Recv() after transport error = %v, want io.EOF", err)
	}
}

func TestChatStreamRemoteErrorOnOpen(t *testing.T) {
	api := testutil.NewMockAPI()
	defer api.Close()
	api.Raw(http.MethodPost, "/v1/chat/completions", http.StatusUnauthorized, "application/json",
		`{"error":{"message":"Incorrect API key provided","type":"invalid_request_error","code":"invalid_api_key"}}`)

	hook := &recordingHook{}
	client := New("bad-key", WithBaseURL(api.URL()), WithTelemetry(hook))
	stream, err := client.CreateChatCompletionStream(context.Background(), testHistory(t))
	if stream != nil {
		t.Error("stream should be nil on a non-success status")
	}
	if !core.IsRemote(err) || !errors.Is(err, core.ErrUnauthorized) {
		t.Errorf("error = %v, want remote unauthorized", err)
	}
	var pe *core.ProviderError
	if !errors.As(err, &pe) {
		t.Fatalf("error = %T, want *core.ProviderError", err)
	}
	if pe.Status != http.StatusUnauthorized {
		t.Errorf("Status = %d, want %d", pe.Status, http.StatusUnauthorized)
	}
	if !strings.Contains(string(pe.Body), "invalid_api_key") {
		t.Errorf("Body = %q, want the raw error body", pe.Body)
	}
	if len(hook.ends) != 1 || hook.ends[0].Err == nil {
		t.Errorf("telemetry end events = %+v, want one failed end", hook.ends)
	}
}

func TestChatStreamCloseDisconnects(t *testing.T) {
	api := testutil.NewMockAPI()
	defer api.Close()
	gone := api.SSEUntilDisconnect(http.MethodPost, "/v1/chat/completions", deltaJSON("a"))

	client := New("test-key", WithBaseURL(api.URL()))
	stream, err := client.CreateChatCompletionStream(context.Background(), testHistory(t))
	if err != nil {
		t.Fatalf("CreateChatCompletionStream() error = %v", err)
	}

	for _, err := range stream.All() {
		if err != nil {
			t.Fatalf("stream error = %v", err)
		}
		break
	}

	select {
	case <-gone:
	case <-time.After(5 * time.Second):
		t.Fatal("server did not observe the disconnect")
	}

	if _, err := stream.Recv(); !errors.Is(err, io.EOF) {
		t.Errorf("Recv() after break = %v, want io.EOF", err)
	}
	if err := stream.Close(); err != nil {
		t.Errorf("second Close() = %v", err)
	}
}

// recvOnceAndDrop reads one delta and lets the stream become unreachable
// without closing it.
func recvOnceAndDrop(t *testing.T, client *Client) {
	t.Helper()
	stream, err := client.CreateChatCompletionStream(context.Background(), testHistory(t))
	if err != nil {
		t.Fatalf("CreateChatCompletionStream() error = %v", err)
	}
	if _, err := stream.Recv(); err != nil {
		t.Fatalf("Recv() error = %v", err)
	}
}

func TestChatStreamDroppedWithoutCloseDisconnects(t *testing.T) {
	api := testutil.NewMockAPI()
	defer api.Close()
	gone := api.SSEUntilDisconnect(http.MethodPost, "/v1/chat/completions", deltaJSON("a"))

	client := New("test-key", WithBaseURL(api.URL()))
	recvOnceAndDrop(t, client)

	deadline := time.After(5 * time.Second)
	for {
		runtime.GC()
		select {
		case <-gone:
			return
		case <-deadline:
			t.Fatal("server did not observe the disconnect after the stream was dropped")
		case <-time.After(20 * time.Millisecond):
		}
	}
}

func TestChatStreamContextCancel(t *testing.T) {
	api := testutil.NewMockAPI()
	defer api.Close()
	gone := api.SSEUntilDisconnect(http.MethodPost, "/v1/chat/completions", deltaJSON("a"))

	ctx, cancel := context.WithCancel(context.Background())
	client := New("test-key", WithBaseURL(api.URL()))
	stream, err := client.CreateChatCompletionStream(ctx, testHistory(t))
	if err != nil {
		t.Fatalf("CreateChatCompletionStream() error = %v", err)
	}
	defer stream.Close()

	if _, err := stream.Recv(); err != nil {
		t.Fatalf("first Recv() error = %v", err)
	}
	cancel()

	_, err = stream.Recv()
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Recv() after cancel = %v, want context.Canceled", err)
	}
	if !core.IsTransport(err) {
		t.Errorf("IsTransport(%v) = false", err)
	}

	select {
	case <-gone:
	case <-time.After(5 * time.Second):
		t.Fatal("server did not observe the disconnect")
	}
}

func TestChatStreamTelemetry(t *testing.T) {
	api := testutil.NewMockAPI()
	defer api.Close()
	api.SSE(http.MethodPost, "/v1/chat/completions", firstDelta, deltaJSON("Hi"), lastDelta, "[DONE]")

	hook := &recordingHook{}
	client := New("test-key", WithBaseURL(api.URL()), WithTelemetry(hook))
	stream, err := client.CreateChatCompletionStream(context.Background(), testHistory(t))
	if err != nil {
		t.Fatalf("CreateChatCompletionStream() error = %v", err)
	}
	for range stream.All() {
	}
	_ = stream.Close()

	if len(hook.ends) != 1 {
		t.Fatalf("end events = %d, want exactly 1", len(hook.ends))
	}
	end := hook.ends[0]
	if end.Operation != opChatStream {
		t.Errorf("Operation = %q, want %q", end.Operation, opChatStream)
	}
	if end.Events != 3 {
		t.Errorf("Events = %d, want 3", end.Events)
	}
	if end.Err != nil {
		t.Errorf("Err = %v, want nil", end.Err)
	}
	if stream.Delivered() != 3 {
		t.Errorf("Delivered() = %d, want 3", stream.Delivered())
	}
}

func TestChatStreamAccumulate(t *testing.T) {
	api := testutil.NewMockAPI()
	defer api.Close()
	api.SSE(http.MethodPost, "/v1/chat/completions", firstDelta, deltaJSON("Hel"), deltaJSON("lo"), lastDelta, "[DONE]")

	client := New("test-key", WithBaseURL(api.URL()))
	stream, err := client.CreateChatCompletionStream(context.Background(), testHistory(t))
	if err != nil {
		t.Fatalf("CreateChatCompletionStream() error = %v", err)
	}

	var acc core.DeltaAccumulator
	for delta, err := range stream.All() {
		if err != nil {
			t.Fatalf("stream error = %v", err)
		}
		acc.Add(delta)
	}

	resp := acc.Response()
	if len(resp.Choices) != 1 {
		t.Fatalf("len(Choices) = %d, want 1", len(resp.Choices))
	}
	if got := resp.Choices[0].Message.Content; got != "Hello" {
		t.Errorf("Content = %q, want Hello", got)
	}
}

func TestConcurrentStreams(t *testing.T) {
	api := testutil.NewMockAPI()
	defer api.Close()
	api.SSE(http.MethodPost, "/v1/chat/completions", firstDelta, deltaJSON("Hi"), lastDelta, "[DONE]")

	client := New("test-key", WithBaseURL(api.URL()))
	history := testHistory(t)

	g, ctx := errgroup.WithContext(context.Background())
	for i := 0; i < 8; i++ {
		g.Go(func() error {
			stream, err := client.CreateChatCompletionStream(ctx, history)
			if err != nil {
				return err
			}
			var n int
			for _, err := range stream.All() {
				if err != nil {
					return err
				}
				n++
			}
			if n != 3 {
				return fmt.Errorf("deltas = %d, want 3", n)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatal(err)
	}
	if got := len(api.Requests()); got != 8 {
		t.Errorf("requests = %d, want 8", got)
	}
}
