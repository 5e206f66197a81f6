package sse

import (
	"errors"
	"io"
	"strings"
	"testing"
)

func readAll(t *testing.T, input string) []Event {
	t.Helper()
	rd := NewReader(strings.NewReader(input))
	var events []Event
	for {
		ev, err := rd.Next()
		if err == io.EOF {
			return events
		}
		if err != nil {
			t.Fatalf("Next() error = %v", err)
		}
		events = append(events, ev)
	}
}

func TestReaderDataEvents(t *testing.T) {
	events := readAll(t, "data: one\n\ndata: two\n\ndata: [DONE]\n\n")

	want := []string{"one", "two", "[DONE]"}
	if len(events) != len(want) {
		t.Fatalf("len(events) = %d, want %d", len(events), len(want))
	}
	for i, ev := range events {
		if ev.Data != want[i] {
			t.Errorf("events[%d].Data = %q, want %q", i, ev.Data, want[i])
		}
		if ev.Type != DefaultEventType {
			t.Errorf("events[%d].Type = %q, want %q", i, ev.Type, DefaultEventType)
		}
		if !ev.IsMessage() {
			t.Errorf("events[%d].IsMessage() = false", i)
		}
	}
}

func TestReaderFields(t *testing.T) {
	input := ": keep-alive\n" +
		"event: open\n\n" +
		"id: 7\nretry: 3000\ndata: {\"a\":1}\n\n"
	events := readAll(t, input)

	if len(events) != 2 {
		t.Fatalf("len(events) = %d, want 2", len(events))
	}

	if events[0].Type != "open" || events[0].Data != "" {
		t.Errorf("events[0] = %+v, want open control event", events[0])
	}
	if events[0].IsMessage() {
		t.Error("control event reported as message")
	}

	if events[1].ID != "7" {
		t.Errorf("ID = %q, want 7", events[1].ID)
	}
	if events[1].Retry != 3000 {
		t.Errorf("Retry = %d, want 3000", events[1].Retry)
	}
	if events[1].Data != `{"a":1}` {
		t.Errorf("Data = %q", events[1].Data)
	}
}

func TestReaderMultilineData(t *testing.T) {
	events := readAll(t, "data: first\ndata: second\n\n")

	if len(events) != 1 {
		t.Fatalf("len(events) = %d, want 1", len(events))
	}
	if events[0].Data != "first\nsecond" {
		t.Errorf("Data = %q, want %q", events[0].Data, "first\nsecond")
	}
}

func TestReaderCRLFAndNoSpace(t *testing.T) {
	events := readAll(t, "data:tight\r\n\r\ndata:  two spaces\r\n\r\n")

	if len(events) != 2 {
		t.Fatalf("len(events) = %d, want 2", len(events))
	}
	if events[0].Data != "tight" {
		t.Errorf("events[0].Data = %q, want tight", events[0].Data)
	}
	// Only one leading space is stripped.
	if events[1].Data != " two spaces" {
		t.Errorf("events[1].Data = %q, want %q", events[1].Data, " two spaces")
	}
}

func TestReaderTrailingEventWithoutBlankLine(t *testing.T) {
	events := readAll(t, "data: a\n\ndata: b")

	if len(events) != 2 || events[1].Data != "b" {
		t.Errorf("events = %+v, want a then b", events)
	}
}

func TestReaderStickyError(t *testing.T) {
	boom := errors.New("connection reset")
	rd := NewReader(io.MultiReader(strings.NewReader("data: a\n\n"), &failingReader{err: boom}))

	ev, err := rd.Next()
	if err != nil || ev.Data != "a" {
		t.Fatalf("Next() = %+v, %v, want event a", ev, err)
	}

	for i := 0; i < 2; i++ {
		if _, err := rd.Next(); !errors.Is(err, boom) {
			t.Errorf("Next() #%d error = %v, want %v", i, err, boom)
		}
	}
}

func TestReaderEmptyStream(t *testing.T) {
	if events := readAll(t, ""); len(events) != 0 {
		t.Errorf("len(events) = %d, want 0", len(events))
	}
}

type failingReader struct{ err error }

func (f *failingReader) Read([]byte) (int, error) { return 0, f.err }
