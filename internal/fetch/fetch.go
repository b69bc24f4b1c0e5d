// Package fetch models the platform fetch primitive: a single call that takes
// a URL plus an init bag and resolves to a response whose body can be read
// once as text, a blob or a raw byte buffer.
package fetch

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
)

// ErrBodyUsed is returned when a response body is read a second time.
var ErrBodyUsed = errors.New("fetch: body stream already read")

// Credentials is the fetch credentials mode.
type Credentials string

const (
	CredentialsInclude    Credentials = "include"
	CredentialsOmit       Credentials = "omit"
	CredentialsSameOrigin Credentials = "same-origin"
)

// Init carries the parameters of a single fetch call.
type Init struct {
	Method      string
	Body        []byte
	Header      http.Header
	Credentials Credentials
}

// Fetcher abstracts the fetch primitive so the Workers runtime, a plain
// net/http client and test doubles can be swapped freely.
type Fetcher interface {
	Fetch(ctx context.Context, url string, init Init) (*Response, error)
}

// FetcherFunc adapts an ordinary function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, url string, init Init) (*Response, error)

// Fetch calls f(ctx, url, init).
func (f FetcherFunc) Fetch(ctx context.Context, url string, init Init) (*Response, error) {
	return f(ctx, url, init)
}

// Response is the result of a fetch call.
type Response struct {
	Status     int
	StatusText string
	URL        string
	Redirected bool
	Header     http.Header

	body io.ReadCloser
	used bool
}

// NewResponse builds a Response around body. A nil body reads as empty.
func NewResponse(status int, statusText string, header http.Header, body io.ReadCloser) *Response {
	if header == nil {
		header = make(http.Header)
	}
	if statusText == "" {
		statusText = http.StatusText(status)
	}
	return &Response{
		Status:     status,
		StatusText: statusText,
		Header:     header,
		body:       body,
	}
}

// FromHTTP converts a net/http response. requestURL is used when the
// response does not carry the request it answers.
func FromHTTP(resp *http.Response, requestURL string) *Response {
	res := NewResponse(resp.StatusCode, statusText(resp), resp.Header, resp.Body)
	res.URL = requestURL
	if resp.Request != nil && resp.Request.URL != nil {
		res.URL = resp.Request.URL.String()
		res.Redirected = res.URL != requestURL
	}
	return res
}

// statusText extracts the reason phrase from a status line like "200 OK".
func statusText(resp *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if text == "" {
		return http.StatusText(resp.StatusCode)
	}
	return text
}

// OK reports whether the status is in the 2xx range.
func (r *Response) OK() bool {
	return r.Status >= 200 && r.Status < 300
}

// Text reads the whole body as a string.
func (r *Response) Text() (string, error) {
	b, err := r.consume()
	return string(b), err
}

// Blob reads the whole body into a Blob typed with the response Content-Type.
func (r *Response) Blob() (*Blob, error) {
	b, err := r.consume()
	if err != nil {
		return nil, err
	}
	return NewBlob(b, r.Header.Get("Content-Type")), nil
}

// ArrayBuffer reads the whole body as raw bytes.
func (r *Response) ArrayBuffer() ([]byte, error) {
	b, err := r.consume()
	if err != nil {
		return nil, err
	}
	if b == nil {
		b = []byte{}
	}
	return b, nil
}

// Close releases the body without reading it.
func (r *Response) Close() error {
	if r.body == nil {
		return nil
	}
	return r.body.Close()
}

// BodyUsed reports whether the body has already been consumed.
func (r *Response) BodyUsed() bool {
	return r.used
}

func (r *Response) consume() ([]byte, error) {
	if r.used {
		return nil, ErrBodyUsed
	}
	r.used = true
	if r.body == nil {
		return nil, nil
	}
	defer r.body.Close()
	return io.ReadAll(r.body)
}
