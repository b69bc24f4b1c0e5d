package backend

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/dvcrn/fetch-relay/internal/fetch"
)

// classify turns the outcome of a round trip into the terminal result.
// fault is set when no response was obtained at all.
func classify(req *Request, res *fetch.Response, fault error) (*Response, *ErrorResponse) {
	if fault != nil {
		return nil, networkError(fault, req.URL)
	}

	header := responseHeaders(res)
	url := responseURL(res, req)

	if !res.OK() {
		payload, _, err := parseBody(res, req.responseType())
		if err != nil {
			payload = err
		}
		return nil, newErrorResponse(payload, header, res.Status, res.StatusText, url)
	}

	body, raw, err := parseBody(res, req.responseType())
	if err != nil {
		return nil, newErrorResponse(&DecodeError{Err: err, Text: raw}, header, res.Status, res.StatusText, url)
	}

	return &Response{
		Body:       body,
		Header:     header,
		Status:     res.Status,
		StatusText: res.StatusText,
		URL:        url,
	}, nil
}

// finish logs the result and emits the terminal signal.
func finish(em *emitter, log zerolog.Logger, start time.Time, res *Response, errRes *ErrorResponse) {
	if errRes != nil {
		log.Warn().
			Int("status", errRes.Status).
			Dur("duration", time.Since(start)).
			Err(errRes).
			Msg("Request failed")
		em.fail(errRes)
		return
	}

	log.Debug().
		Int("status", res.Status).
		Dur("duration", time.Since(start)).
		Msg("Request completed")
	em.succeed(res)
}

// requestLogger tags log lines with a fresh request id.
func requestLogger(base *zerolog.Logger, transport string, req *Request, id string) zerolog.Logger {
	return base.With().
		Str("request_id", id).
		Str("transport", transport).
		Str("method", req.Method).
		Str("url", req.URL).
		Logger()
}
