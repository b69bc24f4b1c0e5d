// Package logger provides the process-wide zerolog logger.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/dvcrn/fetch-relay/internal/env"
)

const (
	colorRed     = 31
	colorGreen   = 32
	colorYellow  = 33
	colorMagenta = 35

	colorBold = 1
)

// Output formats accepted by New and LOG_FORMAT.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

var (
	once   sync.Once
	logger *zerolog.Logger
)

// Get returns the singleton logger instance, initializing it on first call.
func Get() *zerolog.Logger {
	once.Do(func() {
		zerolog.SetGlobalLevel(levelFromEnv())
		logger = New(os.Stderr, formatFromEnv())
	})
	return logger
}

// New creates a logger writing to w. Console output is colored and human
// readable; anything else is JSON with UNIX timestamps.
func New(w io.Writer, format string) *zerolog.Logger {
	if format == FormatConsole {
		zl := zerolog.New(zerolog.ConsoleWriter{
			Out:         w,
			TimeFormat:  "2006-01-02 15:04:05",
			FormatLevel: formatLevel,
		}).With().Timestamp().Logger()
		return &zl
	}

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zl := zerolog.New(w).With().Timestamp().Logger()
	return &zl
}

// levelFromEnv reads LOG_LEVEL, defaulting to info
func levelFromEnv() zerolog.Level {
	levelStr, ok := env.Get("LOG_LEVEL")
	if !ok {
		return zerolog.InfoLevel
	}
	level, err := zerolog.ParseLevel(strings.ToLower(levelStr))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid LOG_LEVEL \"%s\"; defaulting to 'info'\n", levelStr)
		return zerolog.InfoLevel
	}
	return level
}

// formatFromEnv prefers LOG_FORMAT and otherwise derives the format from ENV:
// console for development, JSON for everything else.
func formatFromEnv() string {
	if format, ok := env.Get("LOG_FORMAT"); ok {
		return strings.ToLower(format)
	}
	switch env.GetOrDefault("ENV", "development") {
	case "development", "dev":
		return FormatConsole
	default:
		return FormatJSON
	}
}

func formatLevel(i interface{}) string {
	ll, ok := i.(string)
	if !ok {
		ll = fmt.Sprintf("%v", i)
	}
	switch ll {
	case "trace":
		return colorize("TRC", colorMagenta)
	case "debug":
		return colorize("DBG", colorYellow)
	case "info":
		return colorize("INF", colorGreen)
	case "warn":
		return colorize("WRN", colorRed)
	case "error":
		return colorize("ERR", colorRed)
	case "fatal":
		return colorize("FTL", colorRed)
	case "panic":
		return colorize("PNC", colorRed)
	default:
		if len(ll) < 3 {
			return colorize(strings.ToUpper(ll), colorBold)
		}
		return colorize(strings.ToUpper(ll)[0:3], colorBold)
	}
}

func colorize(s interface{}, c int) string {
	return fmt.Sprintf("\x1b[%dm%v\x1b[0m", c, s)
}
