package backend

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dvcrn/fetch-relay/internal/fetch"
)

func TestMergeHeaders(t *testing.T) {
	merged := MergeHeaders(
		http.Header{"Accept": {"a"}, "X-One": {"1"}},
		http.Header{"accept": {"b", "c"}},
	)

	assert.Equal(t, []string{"b", "c"}, merged.Values("Accept"))
	assert.Equal(t, "1", merged.Get("X-One"))
	assert.NotContains(t, merged, "accept")
}

func TestMergeHeadersCopiesValues(t *testing.T) {
	src := http.Header{"X-Test": {"a"}}
	merged := MergeHeaders(src)
	merged.Add("X-Test", "b")

	assert.Equal(t, []string{"a"}, src.Values("X-Test"))
}

func TestDefaultHeaders(t *testing.T) {
	tests := []struct {
		name  string
		body  any
		ctype string
	}{
		{name: "nil", body: nil, ctype: ""},
		{name: "bytes", body: []byte("raw"), ctype: ""},
		{name: "string", body: "text", ctype: "text/plain"},
		{name: "form", body: url.Values{"a": {"1"}}, ctype: "application/x-www-form-urlencoded;charset=UTF-8"},
		{name: "blob", body: fetch.NewBlob([]byte("x"), "image/gif"), ctype: "image/gif"},
		{name: "object", body: map[string]int{"a": 1}, ctype: "application/json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := DefaultHeaders(NewRequest(http.MethodPost, "/test", tt.body))
			assert.Equal(t, DefaultAccept, h.Get("Accept"))
			assert.Equal(t, tt.ctype, h.Get("Content-Type"))
		})
	}
}

func TestResponseURLFallsBackToRequest(t *testing.T) {
	res := fetch.NewResponse(http.StatusOK, "", nil, nil)
	assert.Equal(t, "/test", responseURL(res, NewRequest(http.MethodGet, "/test", nil)))
}
