package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, FormatJSON)
	l.Info().Str("transport", "fetch").Msg("hello")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "fetch", entry["transport"])
	assert.Equal(t, "hello", entry["message"])
	assert.Contains(t, entry, "time")
}

func TestNewConsole(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, FormatConsole)
	l.Warn().Msg("careful")

	assert.Contains(t, buf.String(), "careful")
	assert.Contains(t, buf.String(), "WRN")
}

func TestFormatFromEnv(t *testing.T) {
	t.Setenv("LOG_FORMAT", "JSON")
	assert.Equal(t, FormatJSON, formatFromEnv())
}

func TestFormatLevel(t *testing.T) {
	assert.Equal(t, colorize("DBG", colorYellow), formatLevel("debug"))
	assert.Equal(t, colorize("CUS", colorBold), formatLevel("custom"))
	assert.Equal(t, colorize("42", colorBold), formatLevel(42))
}
