package backend

import (
	"context"

	"github.com/dvcrn/fetch-relay/internal/fetch"
)

// Path is the transport chosen for a request.
type Path int

const (
	PathFetch Path = iota
	PathLegacy
)

// String returns the path name.
func (p Path) String() string {
	if p == PathFetch {
		return "fetch"
	}
	return "legacy"
}

// Select picks the transport for req. Fetch cannot report progress, so
// progress requests always take the legacy path.
func Select(fetchAvailable bool, req *Request) Path {
	if !fetchAvailable || req.ReportProgress {
		return PathLegacy
	}
	return PathFetch
}

// Selector is a Backend that dispatches each request to a fetch backend or
// the legacy transport.
type Selector struct {
	fetch  Backend
	legacy Backend
}

// Ensure Selector implements Backend
var _ Backend = (*Selector)(nil)

// NewSelector creates a Selector. A nil fetchBackend means fetch is not
// available and every request goes to legacy.
func NewSelector(fetchBackend, legacy Backend) *Selector {
	return &Selector{fetch: fetchBackend, legacy: legacy}
}

// New wires a Selector from the platform: the native fetch primitive when
// there is one, and an HTTPBackend as the legacy transport.
func New(opts ...Option) *Selector {
	o := buildOptions(opts)

	legacy := o.legacy
	if legacy == nil {
		legacy = NewHTTPBackend(opts...)
	}

	if o.noFetch {
		return NewSelector(nil, legacy)
	}

	fetcher := o.fetcher
	if fetcher == nil {
		native, ok := fetch.Native()
		if !ok {
			o.logger.Debug().Msg("Native fetch unavailable, using legacy transport")
			return NewSelector(nil, legacy)
		}
		fetcher = native
	}

	return NewSelector(NewFetchBackend(fetcher, opts...), legacy)
}

// FetchAvailable reports whether the selector has a fetch backend.
func (s *Selector) FetchAvailable() bool {
	return s.fetch != nil
}

// Handle routes req according to Select.
func (s *Selector) Handle(ctx context.Context, req *Request) *Stream {
	if Select(s.FetchAvailable(), req) == PathLegacy {
		return s.legacy.Handle(ctx, req)
	}
	return s.fetch.Handle(ctx, req)
}
