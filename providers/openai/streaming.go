package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"iter"
	"net/http"
	"runtime"
	"strings"
	"sync"

	"github.com/petal-labs/chatstream/core"
	"github.com/petal-labs/chatstream/providers/internal/sse"
)

// doneSentinel is the data payload that ends a chat completion stream.
const doneSentinel = "[DONE]"

var errNullEvent = errors.New("event data is null, want a delta object")

// CreateChatCompletionStream sends history with "stream":true and returns a
// stream of deltas. The caller should Close the stream, or range over All
// which closes it on exit.
//
// The call returns once the response headers arrive. A non-success status
// is never delivered through the stream: it is returned here as a
// *core.ProviderError carrying the status and body, and the stream is nil.
// Every error a returned stream yields is therefore a decode failure of one
// event or a transport failure that ends it.
func (c *Client) CreateChatCompletionStream(ctx context.Context, history core.ChatHistory) (*ChatStream, error) {
	cl := c.begin(opChatStream, history.Model())

	stream, err := c.openStream(ctx, cl, history)
	if err != nil {
		cl.finish(core.Usage{}, 0, err)
		return nil, err
	}
	return stream, nil
}

func (c *Client) openStream(ctx context.Context, cl *call, history core.ChatHistory) (*ChatStream, error) {
	body, err := history.Payload(true)
	if err != nil {
		return nil, newDecodeError(err)
	}

	ctx, cancel := context.WithCancel(ctx)
	req, err := c.newRequest(ctx, cl, http.MethodPost, chatCompletionsPath, bytes.NewReader(body), contentTypeJSON, true)
	if err != nil {
		cancel()
		return nil, err
	}

	resp, err := c.send(req)
	if err != nil {
		cancel()
		return nil, err
	}

	return newChatStream(ctx, cl, resp.Body, cancel), nil
}

// ChatStream is a lazily pulled sequence of chat completion deltas read from
// one server-sent event response. Nothing is read from the network until
// Recv is called, and no goroutines are started.
//
// A delta that fails to decode is reported and the stream continues. A
// transport failure is reported once and ends the stream. After the end,
// Recv returns io.EOF.
//
// ChatStream is NOT safe for concurrent use.
type ChatStream struct {
	ctx     context.Context
	conn    *streamConn
	events  *sse.Reader
	call    *call
	cleanup runtime.Cleanup

	delivered int
	done      bool
}

// streamConn owns the network resources of a stream so they can be released
// without reaching the ChatStream itself.
type streamConn struct {
	once   sync.Once
	body   io.ReadCloser
	cancel context.CancelFunc
}

func (sc *streamConn) release() {
	sc.once.Do(func() {
		sc.cancel()
		_ = sc.body.Close()
	})
}

func newChatStream(ctx context.Context, cl *call, body io.ReadCloser, cancel context.CancelFunc) *ChatStream {
	conn := &streamConn{body: body, cancel: cancel}
	s := &ChatStream{
		ctx:    ctx,
		conn:   conn,
		events: sse.NewReader(body),
		call:   cl,
	}
	// Release the connection if the stream is dropped without Close.
	s.cleanup = runtime.AddCleanup(s, func(sc *streamConn) { sc.release() }, conn)
	return s
}

// Recv returns the next delta. It returns io.EOF once the server sends the
// end marker or closes the body, and after the stream was closed or failed.
// Errors matching core.ErrDecode are not terminal: Recv may be called again.
func (s *ChatStream) Recv() (*core.ChatCompletionDeltaResponse, error) {
	if s.done {
		return nil, io.EOF
	}

	for {
		ev, err := s.events.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				s.end(nil)
				return nil, io.EOF
			}
			if ctxErr := s.ctx.Err(); ctxErr != nil {
				err = errors.Join(ctxErr, err)
			}
			terr := newNetworkError(err)
			s.end(terr)
			return nil, terr
		}

		// Control events and keep-alives carry no delta.
		if !ev.IsMessage() {
			continue
		}
		if strings.TrimSpace(ev.Data) == doneSentinel {
			s.end(nil)
			return nil, io.EOF
		}

		var delta *core.ChatCompletionDeltaResponse
		if err := json.Unmarshal([]byte(ev.Data), &delta); err != nil {
			return nil, newDecodeError(err)
		}
		if delta == nil {
			return nil, newDecodeError(errNullEvent)
		}
		s.delivered++
		return delta, nil
	}
}

// All returns an iterator over the remaining deltas. Each item is either a
// delta or an error, in the order Recv would return them. The stream is
// closed when iteration stops, including when the loop body breaks early.
//
//	for delta, err := range stream.All() {
//	    if err != nil {
//	        log.Print(err)
//	        continue
//	    }
//	    fmt.Print(delta.Choices[0].Delta.Content)
//	}
func (s *ChatStream) All() iter.Seq2[*core.ChatCompletionDeltaResponse, error] {
	return func(yield func(*core.ChatCompletionDeltaResponse, error) bool) {
		defer s.Close()
		for {
			delta, err := s.Recv()
			if errors.Is(err, io.EOF) {
				return
			}
			if !yield(delta, err) {
				return
			}
		}
	}
}

// Close releases the connection. It is safe to call more than once, and
// after the stream has already ended.
func (s *ChatStream) Close() error {
	s.end(nil)
	return nil
}

// Delivered returns how many deltas Recv has returned so far.
func (s *ChatStream) Delivered() int {
	return s.delivered
}

func (s *ChatStream) end(err error) {
	if s.done {
		return
	}
	s.done = true
	s.cleanup.Stop()
	s.conn.release()
	s.call.finish(core.Usage{}, s.delivered, err)
}
