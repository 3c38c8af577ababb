// Package upstreamtest provides a scripted upstream.Client for tests. The
// client records every request it receives and plays back configured results
// or event sequences, so tests can assert whether and how the upstream was
// invoked.
package upstreamtest

import (
	"context"
	"sync"

	"github.com/linguachat/linguachat/internal/relaysrv/upstream"
)

// Client is a scripted implementation of upstream.Client.
type Client struct {
	mu       sync.Mutex
	requests []upstream.Request

	// CompleteResult and CompleteErr configure the outcome of Complete.
	CompleteResult *upstream.Result
	CompleteErr    error

	// StreamEvents is the event sequence played back by Stream. StreamErr, if
	// set, fails the Stream call itself. TailErr is reported by the stream's
	// Err method after the events are exhausted.
	StreamEvents []upstream.Event
	StreamErr    error
	TailErr      error
}

var _ upstream.Client = (*Client)(nil)

// Complete records the request and returns the configured result.
func (c *Client) Complete(_ context.Context, req upstream.Request) (*upstream.Result, error) {
	c.record(req)
	if c.CompleteErr != nil {
		return nil, c.CompleteErr
	}
	return c.CompleteResult, nil
}

// Stream records the request and returns a stream playing back StreamEvents.
func (c *Client) Stream(_ context.Context, req upstream.Request) (upstream.EventStream, error) {
	c.record(req)
	if c.StreamErr != nil {
		return nil, c.StreamErr
	}
	return &scriptedStream{events: c.StreamEvents, tailErr: c.TailErr}, nil
}

// Requests returns a copy of the requests received so far.
func (c *Client) Requests() []upstream.Request {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]upstream.Request, len(c.requests))
	copy(out, c.requests)
	return out
}

// Calls returns the number of upstream invocations.
func (c *Client) Calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.requests)
}

func (c *Client) record(req upstream.Request) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.requests = append(c.requests, req)
}

type scriptedStream struct {
	events  []upstream.Event
	tailErr error
	pos     int
	cur     upstream.Event
	closed  bool
}

func (s *scriptedStream) Next() bool {
	if s.closed || s.pos >= len(s.events) {
		return false
	}
	s.cur = s.events[s.pos]
	s.pos++
	return true
}

func (s *scriptedStream) Current() upstream.Event {
	return s.cur
}

func (s *scriptedStream) Err() error {
	if s.pos >= len(s.events) {
		return s.tailErr
	}
	return nil
}

func (s *scriptedStream) Close() error {
	s.closed = true
	return nil
}
