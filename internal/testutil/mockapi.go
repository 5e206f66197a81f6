// Package testutil provides an in-process stand-in for the chat completion
// service.
package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// Request is a captured inbound request.
type Request struct {
	Method string
	Path   string
	Header http.Header
	Body   []byte
}

// JSON decodes the captured body into a generic map.
func (r Request) JSON() (map[string]any, error) {
	var m map[string]any
	if err := json.Unmarshal(r.Body, &m); err != nil {
		return nil, err
	}
	return m, nil
}

// MockAPI is an httptest.Server with a gorilla/mux router. Every response
// carries a fresh x-request-id header.
type MockAPI struct {
	Server *httptest.Server
	Router *mux.Router

	mu       sync.Mutex
	requests []Request
}

// NewMockAPI creates and starts a mock server with no routes.
func NewMockAPI() *MockAPI {
	m := &MockAPI{Router: mux.NewRouter()}
	m.Router.Use(m.capture)
	m.Server = httptest.NewServer(m.Router)
	return m
}

// Close shuts down the mock server.
func (m *MockAPI) Close() {
	m.Server.Close()
}

// URL returns the base URL of the mock server.
func (m *MockAPI) URL() string {
	return m.Server.URL
}

// Requests returns every captured request in arrival order.
func (m *MockAPI) Requests() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Request, len(m.requests))
	copy(out, m.requests)
	return out
}

// LastRequest returns the most recent captured request.
func (m *MockAPI) LastRequest() Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.requests) == 0 {
		return Request{}
	}
	return m.requests[len(m.requests)-1]
}

func (m *MockAPI) capture(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(bytes.NewReader(body))

		m.mu.Lock()
		m.requests = append(m.requests, Request{
			Method: r.Method,
			Path:   r.URL.Path,
			Header: r.Header.Clone(),
			Body:   body,
		})
		m.mu.Unlock()

		w.Header().Set("x-request-id", uuid.NewString())
		next.ServeHTTP(w, r)
	})
}

// Handle registers a handler for method and path.
func (m *MockAPI) Handle(method, path string, h http.HandlerFunc) {
	m.Router.HandleFunc(path, h).Methods(method)
}

// JSON registers a route answering with status and body encoded as JSON.
func (m *MockAPI) JSON(method, path string, status int, body any) {
	m.Handle(method, path, func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, status, body)
	})
}

// Raw registers a route answering with status and a literal body.
func (m *MockAPI) Raw(method, path string, status int, contentType, body string) {
	m.Handle(method, path, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	})
}

// SSE registers a route that streams each payload as one data event, then
// ends the response.
func (m *MockAPI) SSE(method, path string, payloads ...string) {
	m.Handle(method, path, func(w http.ResponseWriter, r *http.Request) {
		StartSSE(w)
		for _, p := range payloads {
			WriteEvent(w, p)
		}
	})
}

// SSEUntilDisconnect registers a route that streams payloads and then holds
// the connection open until the client goes away. The returned channel is
// closed when the server observes the disconnect.
func (m *MockAPI) SSEUntilDisconnect(method, path string, payloads ...string) <-chan struct{} {
	gone := make(chan struct{})
	var once sync.Once
	m.Handle(method, path, func(w http.ResponseWriter, r *http.Request) {
		StartSSE(w)
		for _, p := range payloads {
			WriteEvent(w, p)
		}
		select {
		case <-r.Context().Done():
			once.Do(func() { close(gone) })
		case <-time.After(10 * time.Second):
		}
	})
	return gone
}

// WriteJSON writes body as a JSON response.
func WriteJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// StartSSE writes the event-stream response headers.
func StartSSE(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	Flush(w)
}

// WriteEvent writes one data event and flushes it.
func WriteEvent(w http.ResponseWriter, data string) {
	fmt.Fprintf(w, "data: %s\n\n", data)
	Flush(w)
}

// Flush sends buffered output to the client if w supports it.
func Flush(w http.ResponseWriter) {
	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}
