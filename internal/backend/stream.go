package backend

import (
	"context"
	"fmt"
)

// Stream delivers the events of a single request. Events is closed after
// the terminal signal; Err is only meaningful after that.
type Stream struct {
	events chan Event
	err    *ErrorResponse
}

// Events returns the event channel.
func (s *Stream) Events() <-chan Event {
	return s.events
}

// Err returns the *ErrorResponse that ended the stream, or nil. It must be
// called after Events has been closed.
func (s *Stream) Err() error {
	if s.err == nil {
		return nil
	}
	return s.err
}

// Collect drains the stream and returns every event with the terminal error.
func (s *Stream) Collect() ([]Event, error) {
	var events []Event
	for ev := range s.events {
		events = append(events, ev)
	}
	return events, s.Err()
}

// Response drains the stream and returns the terminal response.
func (s *Stream) Response() (*Response, error) {
	var res *Response
	for ev := range s.events {
		if r, ok := ev.(*Response); ok {
			res = r
		}
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return res, nil
}

type streamState int

const (
	stateIdle streamState = iota
	stateSent
	stateTerminal
)

// emitter is the producing side of a Stream. Its states only move forward:
// idle -> sent -> terminal.
type emitter struct {
	ctx    context.Context
	stream *Stream
	state  streamState
}

// Sent and the success event always fit in the buffer, so the fetch path
// never blocks on a slow reader.
const streamBuffer = 2

func newStream(ctx context.Context) (*Stream, *emitter) {
	s := &Stream{events: make(chan Event, streamBuffer)}
	return s, &emitter{ctx: ctx, stream: s}
}

// sent emits the Sent event. It never blocks.
func (e *emitter) sent() {
	e.transition(stateIdle, stateSent)
	e.stream.events <- SentEvent{}
}

// progress emits an intermediate event. It reports false when the request
// context is done and the event was dropped.
func (e *emitter) progress(ev Event) bool {
	if e.state != stateSent {
		panic(fmt.Sprintf("backend: progress event in state %d", e.state))
	}
	return e.send(ev)
}

// succeed emits the terminal response and closes the stream.
func (e *emitter) succeed(res *Response) {
	e.transition(stateSent, stateTerminal)
	e.send(res)
	close(e.stream.events)
}

// fail records the terminal error and closes the stream.
func (e *emitter) fail(err *ErrorResponse) {
	e.transition(stateSent, stateTerminal)
	e.stream.err = err
	close(e.stream.events)
}

// abandon closes the stream without a terminal event. It is only used once
// the request context is done and nobody is reading.
func (e *emitter) abandon() {
	e.transition(stateSent, stateTerminal)
	close(e.stream.events)
}

// send delivers ev unless the reader is gone. Buffered room is used even
// after cancellation.
func (e *emitter) send(ev Event) bool {
	select {
	case e.stream.events <- ev:
		return true
	default:
	}
	select {
	case e.stream.events <- ev:
		return true
	case <-e.ctx.Done():
		return false
	}
}

func (e *emitter) transition(from, to streamState) {
	if e.state != from {
		panic(fmt.Sprintf("backend: invalid stream transition %d -> %d", e.state, to))
	}
	e.state = to
}
