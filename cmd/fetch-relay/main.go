package main

import (
	"errors"
	"io/fs"

	"github.com/joho/godotenv"

	"github.com/dvcrn/fetch-relay/internal/config"
	"github.com/dvcrn/fetch-relay/internal/logger"
	"github.com/dvcrn/fetch-relay/internal/server"
)

func main() {
	// .env is optional, real environment variables win
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Get().Warn().Err(err).Msg("Failed to load .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Get().Fatal().Err(err).Msg("Invalid configuration")
	}

	srv := server.NewServer(cfg, server.NewTransport(cfg))

	if err := srv.Start(":" + cfg.Port); err != nil {
		logger.Get().Fatal().Err(err).Msg("Failed to start server")
	}
}
