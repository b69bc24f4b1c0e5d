package server

import (
	"encoding/json"
	"net/http"

	"go.opentelemetry.io/otel"

	"github.com/dvcrn/fetch-relay/internal/backend"
	"github.com/dvcrn/fetch-relay/internal/config"
	"github.com/dvcrn/fetch-relay/internal/logger"
)

// Transport is the backend the relay sends requests through.
type Transport interface {
	backend.Backend
	FetchAvailable() bool
}

// Server represents the relay server with its dependencies
type Server struct {
	cfg       *config.Config
	transport Transport
	backend   backend.Backend
	mux       *http.ServeMux
	handler   http.Handler
}

// NewServer creates a new server relaying through t
func NewServer(cfg *config.Config, t Transport) *Server {
	s := &Server{
		cfg:       cfg,
		transport: t,
		backend:   backend.Traced(t, otel.GetTracerProvider()),
		mux:       http.NewServeMux(),
	}
	s.setupRoutes()
	s.handler = loggingMiddleware(s.mux)

	return s
}

// Start launches the relay server
func (s *Server) Start(addr string) error {
	if s.cfg.APIKey == "" {
		logger.Get().Warn().Msg("RELAY_API_KEY is not set, relay endpoints will reject all requests")
	}

	logger.Get().Info().
		Str("fetch_mode", string(s.cfg.FetchMode)).
		Bool("fetch_available", s.transport.FetchAvailable()).
		Msgf("Starting relay server on %s", addr)
	return http.ListenAndServe(addr, s)
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/v1/fetch", s.apiKeyMiddleware(s.fetchHandler))
	s.mux.HandleFunc("/v1/transport", s.apiKeyMiddleware(s.transportHandler))
	s.mux.HandleFunc("/healthz", s.healthHandler)
}

// ServeHTTP implements http.Handler interface
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// transportHandler handles GET /v1/transport
func (s *Server) transportHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"mode":           s.cfg.FetchMode,
		"fetchAvailable": s.transport.FetchAvailable(),
	})
}

// healthHandler handles GET /healthz
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Get().Error().Err(err).Msg("Failed to write response")
	}
}
