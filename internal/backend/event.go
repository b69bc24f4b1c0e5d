package backend

import "net/http"

// EventType identifies an Event.
type EventType int

const (
	EventSent EventType = iota
	EventUploadProgress
	EventResponseHeader
	EventDownloadProgress
	EventResponse
)

// String returns the event type name.
func (t EventType) String() string {
	switch t {
	case EventSent:
		return "sent"
	case EventUploadProgress:
		return "uploadProgress"
	case EventResponseHeader:
		return "responseHeader"
	case EventDownloadProgress:
		return "downloadProgress"
	case EventResponse:
		return "response"
	default:
		return "unknown"
	}
}

// Event is one notification on a Stream.
type Event interface {
	Type() EventType
}

// SentEvent acknowledges that transmission began.
type SentEvent struct{}

// Type returns EventSent.
func (SentEvent) Type() EventType { return EventSent }

// ProgressEvent reports bytes transferred in either direction.
type ProgressEvent struct {
	Kind   EventType
	Loaded int64
	// Total is negative when the size is unknown.
	Total int64
	// PartialText holds the body read so far for text downloads.
	PartialText string
}

// Type returns EventUploadProgress or EventDownloadProgress.
func (e *ProgressEvent) Type() EventType { return e.Kind }

// HeaderResponse is emitted once the status line and headers arrived.
type HeaderResponse struct {
	Header     http.Header
	Status     int
	StatusText string
	URL        string
}

// Type returns EventResponseHeader.
func (*HeaderResponse) Type() EventType { return EventResponseHeader }

// Response is the successful terminal event.
type Response struct {
	// Body depends on the request's response type: string for text, the
	// decoded JSON value (nil for an empty body), *fetch.Blob for blob and
	// []byte for arraybuffer.
	Body       any
	Header     http.Header
	Status     int
	StatusText string
	URL        string
}

// Type returns EventResponse.
func (*Response) Type() EventType { return EventResponse }

// OK reports whether the status is in the 2xx range.
func (r *Response) OK() bool {
	return r.Status >= 200 && r.Status < 300
}
