package backend

import (
	"net/http"

	"github.com/dvcrn/fetch-relay/internal/fetch"
)

// DefaultAccept is sent unless the request sets its own Accept header.
const DefaultAccept = "application/json, text/plain, */*"

// DefaultHeaders returns the headers every request starts from: Accept and,
// when the body implies one, Content-Type.
func DefaultHeaders(req *Request) http.Header {
	h := make(http.Header)
	h.Set("Accept", DefaultAccept)
	if ct := req.DetectContentTypeHeader(); ct != "" {
		h.Set("Content-Type", ct)
	}
	return h
}

// MergeHeaders merges the given headers in order into a new header map. A
// name present in a later map replaces all values of that name from earlier
// maps; names are compared case-insensitively.
func MergeHeaders(layers ...http.Header) http.Header {
	merged := make(http.Header)
	for _, layer := range layers {
		for name, values := range layer {
			merged[http.CanonicalHeaderKey(name)] = append([]string(nil), values...)
		}
	}
	return merged
}

// outgoingHeaders is the header set sent for req.
func outgoingHeaders(req *Request) http.Header {
	return MergeHeaders(DefaultHeaders(req), req.Header)
}

// responseHeaders copies the native response headers into a fresh map.
func responseHeaders(res *fetch.Response) http.Header {
	return MergeHeaders(res.Header)
}

// responseURL resolves the URL reported for res: the native response URL,
// then the X-Request-URL header, then the request URL.
func responseURL(res *fetch.Response, req *Request) string {
	if res.URL != "" {
		return res.URL
	}
	if u := res.Header.Get("X-Request-URL"); u != "" {
		return u
	}
	return req.URL
}
