//go:build js && wasm

package main

import (
	"github.com/syumai/workers"

	"github.com/dvcrn/fetch-relay/internal/config"
	"github.com/dvcrn/fetch-relay/internal/logger"
	"github.com/dvcrn/fetch-relay/internal/server"
)

var srv *server.Server

func init() {
	cfg, err := config.Load()
	if err != nil {
		logger.Get().Error().Err(err).Msg("Invalid configuration, falling back to defaults")
		cfg = &config.Config{
			Port:         "8787",
			FetchMode:    config.ModeAuto,
			MaxBodyBytes: 1 << 20,
		}
	}

	t := server.NewTransport(cfg)
	logger.Get().Info().
		Str("fetch_mode", string(cfg.FetchMode)).
		Bool("fetch_available", t.FetchAvailable()).
		Msg("Relay worker initialised")

	srv = server.NewServer(cfg, t)
}

func main() {
	workers.Serve(srv)
}
