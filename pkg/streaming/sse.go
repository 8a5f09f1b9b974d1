package streaming

import (
	"encoding/json"
	"fmt"
	"time"
)

const (
	EventStart = "start"
	EventChunk = "chunk"
	EventDone  = "done"
	EventError = "error"
)

// Event is one server-sent event in the stream protocol. A stream is
// exactly one start, zero or more chunks in answer order, then one
// terminal done or error.
type Event struct {
	Type    string `json:"type"`
	Content string `json:"content,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Encode renders the event in SSE wire framing.
func (e Event) Encode() []byte {
	payload, err := json.Marshal(e)
	if err != nil {
		// Event only holds strings, so this cannot happen in practice.
		payload = []byte(`{"type":"error","error":"event encoding failed"}`)
	}
	return []byte(fmt.Sprintf("data: %s\n\n", payload))
}

// flushWriter is the slice of bufio.Writer the emitter needs. Flushing
// after every event both defeats transport buffering and surfaces a dead
// connection as an error.
type flushWriter interface {
	Write(p []byte) (int, error)
	Flush() error
}

// Emitter writes paced SSE events to a single response stream. A write or
// flush error means the client is gone; the caller should stop emitting.
type Emitter struct {
	w     flushWriter
	delay time.Duration
}

func NewEmitter(w flushWriter, delay time.Duration) *Emitter {
	return &Emitter{w: w, delay: delay}
}

func (e *Emitter) emit(ev Event) error {
	if _, err := e.w.Write(ev.Encode()); err != nil {
		return err
	}
	return e.w.Flush()
}

func (e *Emitter) Start() error {
	return e.emit(Event{Type: EventStart})
}

func (e *Emitter) Done() error {
	return e.emit(Event{Type: EventDone})
}

func (e *Emitter) Error(message string) error {
	return e.emit(Event{Type: EventError, Error: message})
}

// StreamChunks splits the answer into sentence-packed chunks and emits
// each as a chunk event, sleeping the pacing delay between consecutive
// events. Emission stops at the first write failure.
func (e *Emitter) StreamChunks(answer string, chunkSize int) error {
	for i, chunk := range Chunk(answer, chunkSize) {
		if i > 0 && e.delay > 0 {
			time.Sleep(e.delay)
		}
		if err := e.emit(Event{Type: EventChunk, Content: chunk}); err != nil {
			return err
		}
	}
	return nil
}
