package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dvcrn/fetch-relay/internal/config"
)

func TestHealthHandler(t *testing.T) {
	s := newTestServer(t, config.ModeAuto)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestRequestIDIsPropagated(t *testing.T) {
	s := newTestServer(t, config.ModeAuto)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	assert.Equal(t, "abc-123", rec.Header().Get("X-Request-ID"))
}

func TestTransportHandler(t *testing.T) {
	tests := []struct {
		mode           config.Mode
		fetchAvailable bool
	}{
		{config.ModeAuto, false},
		{config.ModeFetch, true},
		{config.ModeLegacy, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			s := newTestServer(t, tt.mode)
			req := httptest.NewRequest(http.MethodGet, "/v1/transport", nil)
			req.Header.Set("X-API-Key", testAPIKey)
			rec := httptest.NewRecorder()
			s.ServeHTTP(rec, req)
			require.Equal(t, http.StatusOK, rec.Code)

			var out struct {
				Mode           string `json:"mode"`
				FetchAvailable bool   `json:"fetchAvailable"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
			assert.Equal(t, string(tt.mode), out.Mode)
			assert.Equal(t, tt.fetchAvailable, out.FetchAvailable)
		})
	}
}

func TestAPIKeyMiddleware(t *testing.T) {
	tests := []struct {
		name   string
		apiKey string
		header string
		value  string
		want   int
	}{
		{name: "bearer", apiKey: testAPIKey, header: "Authorization", value: "Bearer " + testAPIKey, want: http.StatusOK},
		{name: "lowercase bearer", apiKey: testAPIKey, header: "Authorization", value: "bearer " + testAPIKey, want: http.StatusOK},
		{name: "x-api-key", apiKey: testAPIKey, header: "X-API-Key", value: testAPIKey, want: http.StatusOK},
		{name: "wrong key", apiKey: testAPIKey, header: "X-API-Key", value: "nope", want: http.StatusUnauthorized},
		{name: "bad auth format", apiKey: testAPIKey, header: "Authorization", value: "Basic abc", want: http.StatusUnauthorized},
		{name: "missing", apiKey: testAPIKey, want: http.StatusUnauthorized},
		{name: "not configured", apiKey: "", header: "X-API-Key", value: testAPIKey, want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(config.ModeAuto)
			cfg.APIKey = tt.apiKey
			s := NewServer(cfg, NewTransport(cfg))

			req := httptest.NewRequest(http.MethodGet, "/v1/transport", nil)
			if tt.header != "" {
				req.Header.Set(tt.header, tt.value)
			}
			rec := httptest.NewRecorder()
			s.ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
