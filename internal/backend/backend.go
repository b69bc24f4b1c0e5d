// Package backend executes HTTP requests described by a Request and reports
// their lifecycle as a Stream of events: Sent first, then exactly one
// terminal signal, either a *Response event or an *ErrorResponse from
// Stream.Err.
//
// FetchBackend services requests with a fetch primitive. HTTPBackend is the
// legacy net/http transport and the only one that reports progress.
// Selector picks between the two per request.
package backend

import "context"

// Backend sends a request and returns its event stream. Handle never
// blocks on network I/O; the Sent event is available on the stream by the
// time Handle returns.
type Backend interface {
	Handle(ctx context.Context, req *Request) *Stream
}

// BackendFunc adapts an ordinary function to the Backend interface.
type BackendFunc func(ctx context.Context, req *Request) *Stream

// Handle calls f(ctx, req).
func (f BackendFunc) Handle(ctx context.Context, req *Request) *Stream {
	return f(ctx, req)
}
