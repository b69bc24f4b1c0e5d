package backend

import (
	"context"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/dvcrn/fetch-relay/internal/fetch"
)

func quiet() Option {
	l := zerolog.Nop()
	return WithLogger(&l)
}

// recordingFetcher answers every call with respond and remembers the last
// call it saw.
type recordingFetcher struct {
	mu      sync.Mutex
	url     string
	init    fetch.Init
	calls   int
	respond func(ctx context.Context) (*fetch.Response, error)
}

func (f *recordingFetcher) Fetch(ctx context.Context, url string, init fetch.Init) (*fetch.Response, error) {
	f.mu.Lock()
	f.url = url
	f.init = init
	f.calls++
	f.mu.Unlock()
	return f.respond(ctx)
}

func (f *recordingFetcher) last() (string, fetch.Init) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.url, f.init
}

func respondWith(status int, header http.Header, body string) *recordingFetcher {
	return &recordingFetcher{
		respond: func(context.Context) (*fetch.Response, error) {
			return fetch.NewResponse(status, "", header, io.NopCloser(strings.NewReader(body))), nil
		},
	}
}

func failWith(err error) *recordingFetcher {
	return &recordingFetcher{
		respond: func(context.Context) (*fetch.Response, error) {
			return nil, err
		},
	}
}

func collect(t *testing.T, b Backend, req *Request) ([]Event, error) {
	t.Helper()
	return b.Handle(context.Background(), req).Collect()
}

func eventTypes(events []Event) []EventType {
	types := make([]EventType, len(events))
	for i, ev := range events {
		types[i] = ev.Type()
	}
	return types
}
