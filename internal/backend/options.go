package backend

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/dvcrn/fetch-relay/internal/fetch"
	"github.com/dvcrn/fetch-relay/internal/logger"
)

// Option configures the backends built by New, NewFetchBackend and
// NewHTTPBackend. Options that do not apply to a backend are ignored.
type Option func(*options)

type options struct {
	logger  *zerolog.Logger
	client  *http.Client
	fetcher fetch.Fetcher
	noFetch bool
	legacy  Backend
}

func buildOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = logger.Get()
	}
	return o
}

// WithLogger replaces the process-wide logger.
func WithLogger(l *zerolog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithHTTPClient sets the client used by the legacy transport.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) {
		o.client = c
	}
}

// WithFetcher makes fetch available through f instead of the platform fetch.
func WithFetcher(f fetch.Fetcher) Option {
	return func(o *options) {
		o.fetcher = f
	}
}

// WithoutFetch routes every request to the legacy transport.
func WithoutFetch() Option {
	return func(o *options) {
		o.noFetch = true
	}
}

// WithLegacy replaces the legacy transport.
func WithLegacy(b Backend) Option {
	return func(o *options) {
		o.legacy = b
	}
}
