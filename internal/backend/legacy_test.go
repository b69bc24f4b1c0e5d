package backend

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPBackendRoundTrip(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, DefaultAccept, r.Header.Get("Accept"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.JSONEq(t, `{"some":"data"}`, string(body))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	req := NewRequest(http.MethodPost, server.URL+"/test", map[string]string{"some": "data"},
		WithResponseType(ResponseTypeJSON))

	events, err := collect(t, NewHTTPBackend(quiet()), req)
	require.NoError(t, err)
	require.Equal(t, []EventType{EventSent, EventResponse}, eventTypes(events))

	res := events[1].(*Response)
	assert.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, "OK", res.StatusText)
	assert.Equal(t, server.URL+"/test", res.URL)
	assert.Equal(t, map[string]any{"ok": true}, res.Body)
}

func TestHTTPBackendProgressEvents(t *testing.T) {
	payload := strings.Repeat("x", 64*1024)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.Copy(io.Discard, r.Body)
		w.Header().Set("Content-Type", "text/plain")
		w.Header().Set("Content-Length", strconv.Itoa(len(payload)))
		w.Write([]byte(payload))
	}))
	defer server.Close()

	req := NewRequest(http.MethodPost, server.URL, "upload body", WithReportProgress())
	events, err := collect(t, NewHTTPBackend(quiet()), req)
	require.NoError(t, err)

	types := eventTypes(events)
	require.GreaterOrEqual(t, len(types), 4)
	assert.Equal(t, EventSent, types[0])
	assert.Equal(t, EventResponse, types[len(types)-1])

	headerAt := -1
	for i, typ := range types {
		switch typ {
		case EventResponseHeader:
			assert.Equal(t, -1, headerAt, "header event emitted twice")
			headerAt = i
		case EventUploadProgress:
			assert.Equal(t, -1, headerAt, "upload progress after headers")
		case EventDownloadProgress:
			assert.NotEqual(t, -1, headerAt, "download progress before headers")
		}
	}
	require.NotEqual(t, -1, headerAt)

	header := events[headerAt].(*HeaderResponse)
	assert.Equal(t, http.StatusOK, header.Status)
	assert.Equal(t, server.URL, header.URL)

	var last *ProgressEvent
	for _, ev := range events {
		if p, ok := ev.(*ProgressEvent); ok && p.Kind == EventDownloadProgress {
			last = p
		}
	}
	require.NotNil(t, last)
	assert.EqualValues(t, len(payload), last.Loaded)
	assert.EqualValues(t, len(payload), last.Total)
	assert.Equal(t, payload, last.PartialText)

	assert.Equal(t, payload, events[len(events)-1].(*Response).Body)
}

func TestHTTPBackendNoProgressUnlessAsked(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("hello"))
	}))
	defer server.Close()

	events, err := collect(t, NewHTTPBackend(quiet()), NewRequest(http.MethodPost, server.URL, "body"))
	require.NoError(t, err)
	assert.Equal(t, []EventType{EventSent, EventResponse}, eventTypes(events))
}

func TestHTTPBackendErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("not here"))
	}))
	defer server.Close()

	_, err := collect(t, NewHTTPBackend(quiet()), NewRequest(http.MethodGet, server.URL, nil))

	var errRes *ErrorResponse
	require.ErrorAs(t, err, &errRes)
	assert.Equal(t, http.StatusNotFound, errRes.Status)
	assert.Equal(t, "Not Found", errRes.StatusText)
	assert.Equal(t, "not here", errRes.Payload)
	assert.Equal(t, server.URL, errRes.URL)
}

func TestHTTPBackendNetworkFault(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	_, err := collect(t, NewHTTPBackend(quiet()), NewRequest(http.MethodGet, url, nil))

	var errRes *ErrorResponse
	require.ErrorAs(t, err, &errRes)
	assert.Equal(t, 0, errRes.Status)
	assert.Equal(t, UnknownStatusText, errRes.StatusText)
	assert.Equal(t, url, errRes.URL)
}

func TestHTTPBackendCredentials(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/login" {
			http.SetCookie(w, &http.Cookie{Name: "session", Value: "abc", Path: "/"})
			return
		}
		if c, err := r.Cookie("session"); err == nil {
			w.Write([]byte(c.Value))
		}
	}))
	defer server.Close()

	b := NewHTTPBackend(quiet())
	_, err := collect(t, b, NewRequest(http.MethodGet, server.URL+"/login", nil, WithCredentials()))
	require.NoError(t, err)

	res, err := b.Handle(context.Background(), NewRequest(http.MethodGet, server.URL+"/me", nil, WithCredentials())).Response()
	require.NoError(t, err)
	assert.Equal(t, "abc", res.Body)

	res, err = b.Handle(context.Background(), NewRequest(http.MethodGet, server.URL+"/me", nil)).Response()
	require.NoError(t, err)
	assert.Equal(t, "", res.Body)
}
