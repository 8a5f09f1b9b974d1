package streaming

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func decodeEvents(t *testing.T, raw string) []Event {
	t.Helper()
	var events []Event
	for _, frame := range strings.Split(raw, "\n\n") {
		frame = strings.TrimSpace(frame)
		if frame == "" {
			continue
		}
		if !strings.HasPrefix(frame, "data: ") {
			t.Fatalf("frame missing data prefix: %q", frame)
		}
		var ev Event
		if err := json.Unmarshal([]byte(strings.TrimPrefix(frame, "data: ")), &ev); err != nil {
			t.Fatalf("decode %q: %v", frame, err)
		}
		events = append(events, ev)
	}
	return events
}

func TestEventEncode(t *testing.T) {
	got := string(Event{Type: EventChunk, Content: "hello"}.Encode())
	if got != `data: {"type":"chunk","content":"hello"}`+"\n\n" {
		t.Errorf("encoded = %q", got)
	}

	got = string(Event{Type: EventDone}.Encode())
	if got != `data: {"type":"done"}`+"\n\n" {
		t.Errorf("encoded = %q", got)
	}
}

func TestEmitterEventSequence(t *testing.T) {
	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)
	emitter := NewEmitter(w, 0)

	if err := emitter.Start(); err != nil {
		t.Fatal(err)
	}
	if err := emitter.StreamChunks("This is a test. Another sentence! And one more?", 30); err != nil {
		t.Fatal(err)
	}
	if err := emitter.Done(); err != nil {
		t.Fatal(err)
	}

	events := decodeEvents(t, buf.String())
	if len(events) < 3 {
		t.Fatalf("got %d events, want start + chunks + done", len(events))
	}
	if events[0].Type != EventStart {
		t.Errorf("first event = %q", events[0].Type)
	}
	if events[len(events)-1].Type != EventDone {
		t.Errorf("last event = %q", events[len(events)-1].Type)
	}

	var answer strings.Builder
	for _, ev := range events[1 : len(events)-1] {
		if ev.Type != EventChunk {
			t.Errorf("middle event = %q, want chunk", ev.Type)
		}
		answer.WriteString(ev.Content)
		answer.WriteString(" ")
	}
	collapsed := strings.Join(strings.Fields(answer.String()), " ")
	if collapsed != "This is a test. Another sentence! And one more?" {
		t.Errorf("reconstructed answer = %q", collapsed)
	}
}

func TestEmitterErrorEvent(t *testing.T) {
	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)
	emitter := NewEmitter(w, 0)

	if err := emitter.Start(); err != nil {
		t.Fatal(err)
	}
	if err := emitter.Error("generation failed"); err != nil {
		t.Fatal(err)
	}

	events := decodeEvents(t, buf.String())
	if len(events) != 2 {
		t.Fatalf("got %d events", len(events))
	}
	if events[1].Type != EventError || events[1].Error != "generation failed" {
		t.Errorf("terminal event = %+v", events[1])
	}
}

type brokenWriter struct{}

func (brokenWriter) Write([]byte) (int, error) { return 0, errors.New("connection closed") }
func (brokenWriter) Flush() error              { return errors.New("connection closed") }

func TestEmitterStopsOnDeadConnection(t *testing.T) {
	emitter := NewEmitter(brokenWriter{}, 0)
	if err := emitter.StreamChunks("One sentence. Two sentence.", 30); err == nil {
		t.Error("expected error on dead connection")
	}
}
