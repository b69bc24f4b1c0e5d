package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/dvcrn/fetch-relay/internal/backend"
	"github.com/dvcrn/fetch-relay/internal/logger"
)

// FetchRequest is the body of POST /v1/fetch.
type FetchRequest struct {
	Method  string            `json:"method"`
	URL     string            `json:"url"`
	Headers map[string]string `json:"headers,omitempty"`
	// Body is sent as text when it is a JSON string and as JSON otherwise.
	Body            json.RawMessage `json:"body,omitempty"`
	WithCredentials bool            `json:"withCredentials,omitempty"`
	ResponseType    string          `json:"responseType,omitempty"`
	ReportProgress  bool            `json:"reportProgress,omitempty"`
}

// FetchResult mirrors the event stream of a relayed request.
type FetchResult struct {
	RequestID string      `json:"requestId"`
	Path      string      `json:"path"`
	Events    []EventJSON `json:"events"`
	Error     *ErrorJSON  `json:"error,omitempty"`
}

// EventJSON is one stream event.
type EventJSON struct {
	Type        string            `json:"type"`
	Loaded      *int64            `json:"loaded,omitempty"`
	Total       *int64            `json:"total,omitempty"`
	PartialText string            `json:"partialText,omitempty"`
	Status      int               `json:"status,omitempty"`
	StatusText  string            `json:"statusText,omitempty"`
	URL         string            `json:"url,omitempty"`
	Headers     map[string]string `json:"headers,omitempty"`
	Body        interface{}       `json:"body,omitempty"`
}

// ErrorJSON is the failing terminal signal.
type ErrorJSON struct {
	Status     int               `json:"status"`
	StatusText string            `json:"statusText"`
	URL        string            `json:"url,omitempty"`
	Message    string            `json:"message"`
	Headers    map[string]string `json:"headers,omitempty"`
	Payload    interface{}       `json:"payload"`
}

// fetchHandler handles POST /v1/fetch
func (s *Server) fetchHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var in FetchRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)).Decode(&in); err != nil {
		logger.Get().Error().Err(err).Msg("Failed to decode fetch request")
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	req, err := in.toRequest()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	path := backend.Select(s.transport.FetchAvailable(), req)
	events, streamErr := s.backend.Handle(r.Context(), req).Collect()

	out := FetchResult{
		RequestID: requestID(r.Context()),
		Path:      path.String(),
		Events:    make([]EventJSON, 0, len(events)),
	}
	for _, ev := range events {
		out.Events = append(out.Events, eventJSON(ev))
	}
	if streamErr != nil {
		if errRes, ok := streamErr.(*backend.ErrorResponse); ok {
			out.Error = errorJSON(errRes)
		}
	}

	writeJSON(w, http.StatusOK, out)
}

// toRequest validates the relay input and builds the request descriptor.
func (in *FetchRequest) toRequest() (*backend.Request, error) {
	target, err := url.Parse(in.URL)
	if err != nil || (target.Scheme != "http" && target.Scheme != "https") || target.Host == "" {
		return nil, fmt.Errorf("url must be an absolute http(s) URL")
	}

	responseType, err := backend.ParseResponseType(in.ResponseType)
	if err != nil {
		return nil, err
	}

	method := strings.ToUpper(in.Method)
	if method == "" {
		method = http.MethodGet
	}

	body, err := decodeBody(in.Body)
	if err != nil {
		return nil, err
	}

	opts := []backend.RequestOption{backend.WithResponseType(responseType)}
	for name, value := range in.Headers {
		opts = append(opts, backend.WithHeader(name, value))
	}
	if in.WithCredentials {
		opts = append(opts, backend.WithCredentials())
	}
	if in.ReportProgress {
		opts = append(opts, backend.WithReportProgress())
	}

	return backend.NewRequest(method, target.String(), body, opts...), nil
}

// decodeBody maps the raw JSON body onto a request body: nothing, a string
// or raw JSON.
func decodeBody(raw json.RawMessage) (interface{}, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return nil, fmt.Errorf("invalid body: %w", err)
		}
		return s, nil
	}
	return json.RawMessage(trimmed), nil
}

func eventJSON(ev backend.Event) EventJSON {
	out := EventJSON{Type: ev.Type().String()}
	switch e := ev.(type) {
	case *backend.ProgressEvent:
		loaded, total := e.Loaded, e.Total
		out.Loaded = &loaded
		if total >= 0 {
			out.Total = &total
		}
		out.PartialText = e.PartialText
	case *backend.HeaderResponse:
		out.Status = e.Status
		out.StatusText = e.StatusText
		out.URL = e.URL
		out.Headers = flattenHeaders(e.Header)
	case *backend.Response:
		out.Status = e.Status
		out.StatusText = e.StatusText
		out.URL = e.URL
		out.Headers = flattenHeaders(e.Header)
		out.Body = e.Body
	}
	return out
}

func errorJSON(e *backend.ErrorResponse) *ErrorJSON {
	return &ErrorJSON{
		Status:     e.Status,
		StatusText: e.StatusText,
		URL:        e.URL,
		Message:    e.Message,
		Headers:    flattenHeaders(e.Header),
		Payload:    payloadJSON(e.Payload),
	}
}

// payloadJSON makes error payloads encodable: errors become their message.
func payloadJSON(p interface{}) interface{} {
	switch v := p.(type) {
	case *backend.DecodeError:
		return map[string]string{"error": v.Err.Error(), "text": v.Text}
	case error:
		return v.Error()
	default:
		return v
	}
}

// flattenHeaders joins multi-value headers the way fetch Headers does.
func flattenHeaders(h http.Header) map[string]string {
	if len(h) == 0 {
		return nil
	}
	result := make(map[string]string, len(h))
	for k, v := range h {
		result[k] = strings.Join(v, ", ")
	}
	return result
}
