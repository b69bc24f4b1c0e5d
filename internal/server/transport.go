package server

import (
	"github.com/dvcrn/fetch-relay/internal/backend"
	"github.com/dvcrn/fetch-relay/internal/config"
	"github.com/dvcrn/fetch-relay/internal/fetch"
	"github.com/dvcrn/fetch-relay/internal/logger"
)

// NewTransport builds the relay backend for the configured fetch mode.
// HTTP_TIMEOUT bounds the net/http client shared by the legacy transport
// and, in fetch mode without native fetch, the emulated fetch.
func NewTransport(cfg *config.Config) *backend.Selector {
	client := fetch.NewCookieClient()
	client.Timeout = cfg.HTTPTimeout

	opts := []backend.Option{
		backend.WithHTTPClient(client),
		backend.WithLogger(logger.Get()),
	}

	switch cfg.FetchMode {
	case config.ModeLegacy:
		opts = append(opts, backend.WithoutFetch())
	case config.ModeFetch:
		if _, ok := fetch.Native(); !ok {
			opts = append(opts, backend.WithFetcher(fetch.NewClientFetcher(client)))
		}
	}

	return backend.New(opts...)
}

var _ Transport = (*backend.Selector)(nil)
