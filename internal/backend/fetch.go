package backend

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/dvcrn/fetch-relay/internal/fetch"
)

// FetchBackend services requests with a fetch primitive. It emits Sent and
// one terminal signal; progress is never reported.
type FetchBackend struct {
	fetcher fetch.Fetcher
	logger  *zerolog.Logger
}

// Ensure FetchBackend implements Backend
var _ Backend = (*FetchBackend)(nil)

// NewFetchBackend creates a backend over f.
func NewFetchBackend(f fetch.Fetcher, opts ...Option) *FetchBackend {
	o := buildOptions(opts)
	return &FetchBackend{fetcher: f, logger: o.logger}
}

// Handle emits Sent immediately and runs the fetch in the background.
func (b *FetchBackend) Handle(ctx context.Context, req *Request) *Stream {
	stream, em := newStream(ctx)
	em.sent()
	go b.run(ctx, req, em)
	return stream
}

func (b *FetchBackend) run(ctx context.Context, req *Request, em *emitter) {
	start := time.Now()
	log := requestLogger(b.logger, "fetch", req, uuid.NewString())
	log.Debug().Msg("Sending request")

	res, fault := b.fetch(ctx, req)
	result, errRes := classify(req, res, fault)
	finish(em, log, start, result, errRes)
}

// fetch translates req into a fetch call. A panicking fetcher is reported
// as a fault like any other failure to get a response.
func (b *FetchBackend) fetch(ctx context.Context, req *Request) (res *fetch.Response, fault error) {
	defer func() {
		if r := recover(); r != nil {
			res, fault = nil, fmt.Errorf("fetch panicked: %v", r)
		}
	}()

	body, err := req.SerializeBody()
	if err != nil {
		return nil, err
	}

	return b.fetcher.Fetch(ctx, req.URL, fetch.Init{
		Method:      req.Method,
		Body:        body,
		Header:      outgoingHeaders(req),
		Credentials: req.credentials(),
	})
}
