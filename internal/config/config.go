// Package config loads the relay configuration from the environment.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/dvcrn/fetch-relay/internal/env"
)

// Mode controls which transports the relay may use.
type Mode string

const (
	// ModeAuto uses native fetch when the platform has it.
	ModeAuto Mode = "auto"
	// ModeFetch uses native fetch, or fetch semantics over net/http when
	// the platform has none.
	ModeFetch Mode = "fetch"
	// ModeLegacy always uses the net/http transport.
	ModeLegacy Mode = "legacy"
)

const (
	defaultPort         = "9877"
	defaultHTTPTimeout  = 30 * time.Second
	defaultMaxBodyBytes = 1 << 20
)

// Config holds the relay settings.
type Config struct {
	Port         string
	APIKey       string
	FetchMode    Mode
	HTTPTimeout  time.Duration
	MaxBodyBytes int64
}

// Load reads PORT, RELAY_API_KEY, FETCH_MODE, HTTP_TIMEOUT and
// MAX_BODY_BYTES and validates the result.
func Load() (*Config, error) {
	timeout, err := env.GetDuration("HTTP_TIMEOUT", defaultHTTPTimeout)
	if err != nil {
		return nil, err
	}
	maxBody, err := env.GetInt64("MAX_BODY_BYTES", defaultMaxBodyBytes)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Port:         env.GetOrDefault("PORT", defaultPort),
		APIKey:       env.GetOrDefault("RELAY_API_KEY", ""),
		FetchMode:    Mode(strings.ToLower(env.GetOrDefault("FETCH_MODE", string(ModeAuto)))),
		HTTPTimeout:  timeout,
		MaxBodyBytes: maxBody,
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	switch c.FetchMode {
	case ModeAuto, ModeFetch, ModeLegacy:
	default:
		return fmt.Errorf("config: unknown FETCH_MODE %q", c.FetchMode)
	}
	if c.HTTPTimeout < 0 {
		return fmt.Errorf("config: HTTP_TIMEOUT must not be negative")
	}
	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("config: MAX_BODY_BYTES must be positive")
	}
	return nil
}
