package backend

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/dvcrn/fetch-relay/internal/fetch"
)

// ResponseType tells the backend how to decode the response body.
type ResponseType string

const (
	ResponseTypeText        ResponseType = "text"
	ResponseTypeJSON        ResponseType = "json"
	ResponseTypeBlob        ResponseType = "blob"
	ResponseTypeArrayBuffer ResponseType = "arraybuffer"
)

// ParseResponseType validates s. The empty string maps to text.
func ParseResponseType(s string) (ResponseType, error) {
	switch t := ResponseType(s); t {
	case "":
		return ResponseTypeText, nil
	case ResponseTypeText, ResponseTypeJSON, ResponseTypeBlob, ResponseTypeArrayBuffer:
		return t, nil
	default:
		return "", fmt.Errorf("unknown response type %q", s)
	}
}

// Request describes one HTTP call. Backends only read it; callers must not
// modify a Request once it has been handed to Handle.
type Request struct {
	Method string
	URL    string
	// Body is serialized by SerializeBody. See DetectContentTypeHeader for
	// the Content-Type each supported type implies.
	Body            any
	Header          http.Header
	WithCredentials bool
	ResponseType    ResponseType
	ReportProgress  bool
}

// RequestOption configures a Request built by NewRequest.
type RequestOption func(*Request)

// NewRequest creates a Request. The response type defaults to text.
func NewRequest(method, url string, body any, opts ...RequestOption) *Request {
	req := &Request{
		Method:       method,
		URL:          url,
		Body:         body,
		Header:       make(http.Header),
		ResponseType: ResponseTypeText,
	}
	for _, opt := range opts {
		opt(req)
	}
	return req
}

// WithHeader sets a header, replacing any earlier value for the same name.
func WithHeader(name, value string) RequestOption {
	return func(r *Request) {
		r.Header.Set(name, value)
	}
}

// WithCredentials asks for cookies and auth state to be sent.
func WithCredentials() RequestOption {
	return func(r *Request) {
		r.WithCredentials = true
	}
}

// WithResponseType sets the declared response type.
func WithResponseType(t ResponseType) RequestOption {
	return func(r *Request) {
		r.ResponseType = t
	}
}

// WithReportProgress asks for upload and download progress events.
func WithReportProgress() RequestOption {
	return func(r *Request) {
		r.ReportProgress = true
	}
}

// SerializeBody converts Body into the bytes sent on the wire. A nil result
// means the request has no body.
func (r *Request) SerializeBody() ([]byte, error) {
	switch v := r.Body.(type) {
	case nil:
		return nil, nil
	case []byte:
		return v, nil
	case json.RawMessage:
		return v, nil
	case string:
		return []byte(v), nil
	case url.Values:
		return []byte(v.Encode()), nil
	case *fetch.Blob:
		return v.Bytes(), nil
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("could not serialize request body: %w", err)
		}
		return b, nil
	}
}

// DetectContentTypeHeader returns the Content-Type implied by Body, or ""
// when none should be sent.
func (r *Request) DetectContentTypeHeader() string {
	switch v := r.Body.(type) {
	case nil, []byte:
		return ""
	case string:
		return "text/plain"
	case url.Values:
		return "application/x-www-form-urlencoded;charset=UTF-8"
	case *fetch.Blob:
		return v.Type()
	default:
		return "application/json"
	}
}

func (r *Request) responseType() ResponseType {
	if r.ResponseType == "" {
		return ResponseTypeText
	}
	return r.ResponseType
}

func (r *Request) credentials() fetch.Credentials {
	if r.WithCredentials {
		return fetch.CredentialsInclude
	}
	return fetch.CredentialsOmit
}
