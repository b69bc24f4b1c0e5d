package backend

import (
	"fmt"
	"net/http"
)

// UnknownStatusText is the status text of failures that never reached a server.
const UnknownStatusText = "Unknown Error"

// ErrorResponse is the failing terminal signal of a Stream.
type ErrorResponse struct {
	// Payload is the parsed error body for HTTP error statuses, the parse
	// fault when that body could not be decoded, a *DecodeError when a
	// successful body could not be decoded, or the raw fault for requests
	// that never got a response.
	Payload    any
	Header     http.Header
	Status     int
	StatusText string
	URL        string
	Message    string
}

func newErrorResponse(payload any, header http.Header, status int, statusText, url string) *ErrorResponse {
	if header == nil {
		header = make(http.Header)
	}
	e := &ErrorResponse{
		Payload:    payload,
		Header:     header,
		Status:     status,
		StatusText: statusText,
		URL:        url,
	}
	if status >= 200 && status < 300 {
		e.Message = fmt.Sprintf("Http failure during parsing for %s", displayURL(url))
	} else {
		e.Message = fmt.Sprintf("Http failure response for %s: %d %s", displayURL(url), status, statusText)
	}
	return e
}

// networkError builds the envelope for a request that never got a response.
func networkError(fault error, url string) *ErrorResponse {
	return newErrorResponse(fault, nil, 0, UnknownStatusText, url)
}

func displayURL(url string) string {
	if url == "" {
		return "(unknown url)"
	}
	return url
}

// Error returns the failure message.
func (e *ErrorResponse) Error() string {
	return e.Message
}

// Unwrap exposes the payload when it is an error.
func (e *ErrorResponse) Unwrap() error {
	if err, ok := e.Payload.(error); ok {
		return err
	}
	return nil
}

// DecodeError is the payload of a successful response whose body could not
// be decoded as the declared response type.
type DecodeError struct {
	Err  error
	Text string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding response body: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
