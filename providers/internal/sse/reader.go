// Package sse provides a pull-based reader for server-sent event streams.
package sse

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// DefaultEventType is the type of events that carry no "event" field.
const DefaultEventType = "message"

// Event is one dispatched server-sent event.
type Event struct {
	// Type is the "event" field, or DefaultEventType when absent.
	Type string
	// Data is the concatenation of all "data" lines, joined by "\n".
	Data string
	// ID is the last "id" field seen on the stream.
	ID string
	// Retry is the reconnection delay in milliseconds, or zero.
	Retry int
}

// IsMessage reports whether e is a message-type event carrying a payload.
func (e Event) IsMessage() bool {
	return e.Type == DefaultEventType && e.Data != ""
}

// Reader decodes events from an underlying byte stream one at a time.
// Reader does no work between calls to Next and starts no goroutines.
// Reader is NOT safe for concurrent use.
type Reader struct {
	r      *bufio.Reader
	lastID string
	err    error
}

// NewReader returns a Reader over r.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: bufio.NewReader(r)}
}

// Next blocks until one complete event is available and returns it. At the
// end of the stream it returns io.EOF; any other error comes from the
// underlying reader. Once Next has returned an error, it keeps returning it.
func (rd *Reader) Next() (Event, error) {
	if rd.err != nil {
		return Event{}, rd.err
	}

	var (
		ev      Event
		data    strings.Builder
		hasData bool
		pending bool
	)

	dispatch := func() Event {
		ev.Data = data.String()
		ev.ID = rd.lastID
		if ev.Type == "" {
			ev.Type = DefaultEventType
		}
		return ev
	}

	for {
		line, err := rd.r.ReadString('\n')
		if err != nil && (err != io.EOF || line == "") {
			rd.err = err
			// A final event without a trailing blank line is still delivered.
			if err == io.EOF && pending {
				return dispatch(), nil
			}
			return Event{}, err
		}
		line = strings.TrimSuffix(line, "\n")
		line = strings.TrimSuffix(line, "\r")

		if line == "" {
			if pending {
				return dispatch(), nil
			}
			continue
		}

		// Comment lines (keep-alives) carry nothing.
		if strings.HasPrefix(line, ":") {
			continue
		}

		field, value, _ := strings.Cut(line, ":")
		value = strings.TrimPrefix(value, " ")

		switch field {
		case "event":
			ev.Type = value
			pending = true
		case "data":
			if hasData {
				data.WriteByte('\n')
			}
			data.WriteString(value)
			hasData = true
			pending = true
		case "id":
			if !strings.ContainsRune(value, 0) {
				rd.lastID = value
			}
		case "retry":
			if n, err := strconv.Atoi(value); err == nil {
				ev.Retry = n
				pending = true
			}
		}
	}
}
