// Package upstream defines the narrow contract the relay has with the
// completion API: one-shot completions and streamed completions delivered as
// a closed, tagged event sequence. The production implementation is backed by
// the OpenAI Responses API; tests substitute scripted stubs.
package upstream

import "context"

// Request carries the parameters for one completion call. PreviousResponseID
// links the call to the prior turn's response so the upstream maintains
// context without the full history being resent.
type Request struct {
	Instructions       string  // system instructions (language policy text)
	Input              string  // user input for this turn
	PreviousResponseID string  // continuation token from the prior turn, empty on the first turn
	Temperature        float64 // sampling temperature
	MaxOutputTokens    int64   // cap on generated output tokens
}

// Result is the outcome of a one-shot completion.
type Result struct {
	ID   string // upstream-assigned response identifier
	Text string // full reply text
}

// EventKind enumerates the event types a completion stream can emit.
type EventKind int

const (
	// EventCreated reports the upstream-assigned response identifier.
	EventCreated EventKind = iota
	// EventDelta carries an incremental chunk of output text.
	EventDelta
	// EventDone marks clean completion of the stream.
	EventDone
	// EventError reports an upstream-signaled failure.
	EventError
)

// Event is one element of a completion stream. Exactly the fields implied by
// Kind are set.
type Event struct {
	Kind       EventKind
	ResponseID string // set on EventCreated
	Delta      string // set on EventDelta
	Message    string // set on EventError
}

// EventStream iterates over the events of one streaming completion.
// Next reports whether an event is available; Current returns it. After Next
// returns false, Err reports any transport error that ended the stream.
type EventStream interface {
	Next() bool
	Current() Event
	Err() error
	Close() error
}

// Client executes completion calls against the upstream model.
type Client interface {
	// Complete performs a single request/response completion.
	Complete(ctx context.Context, req Request) (*Result, error)

	// Stream performs a streaming completion. The returned stream must be
	// closed by the caller. Abandoning consumption (context cancellation)
	// stops upstream reads.
	Stream(ctx context.Context, req Request) (EventStream, error)
}
