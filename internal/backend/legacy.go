package backend

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/dvcrn/fetch-relay/internal/fetch"
)

// HTTPBackend is the legacy transport built directly on net/http. Unlike
// FetchBackend it reports upload and download progress when asked to.
type HTTPBackend struct {
	client *http.Client
	logger *zerolog.Logger
}

// Ensure HTTPBackend implements Backend
var _ Backend = (*HTTPBackend)(nil)

// NewHTTPBackend creates the legacy transport. Without WithHTTPClient it
// uses a client with its own cookie jar.
func NewHTTPBackend(opts ...Option) *HTTPBackend {
	o := buildOptions(opts)
	client := o.client
	if client == nil {
		client = fetch.NewCookieClient()
	}
	return &HTTPBackend{client: client, logger: o.logger}
}

// Handle emits Sent immediately and runs the request in the background.
func (b *HTTPBackend) Handle(ctx context.Context, req *Request) *Stream {
	stream, em := newStream(ctx)
	em.sent()
	go b.run(ctx, req, em)
	return stream
}

func (b *HTTPBackend) run(ctx context.Context, req *Request, em *emitter) {
	start := time.Now()
	log := requestLogger(b.logger, "legacy", req, uuid.NewString())
	log.Debug().Bool("report_progress", req.ReportProgress).Msg("Sending request")

	res, fault := b.roundTrip(ctx, req, em)
	result, errRes := classify(req, res, fault)
	finish(em, log, start, result, errRes)
}

func (b *HTTPBackend) roundTrip(ctx context.Context, req *Request, em *emitter) (*fetch.Response, error) {
	body, err := req.SerializeBody()
	if err != nil {
		return nil, err
	}

	// The transport may still be writing the body after Do returns, so
	// upload events go through a gate that is shut before the terminal signal.
	var upload *progressGate
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
		if req.ReportProgress {
			upload = &progressGate{emit: em.progress}
			reader = &progressReader{
				r:     reader,
				kind:  EventUploadProgress,
				total: int64(len(body)),
				emit:  upload.send,
			}
		}
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, reader)
	if err != nil {
		return nil, err
	}
	httpReq.Header = outgoingHeaders(req)
	if body != nil {
		httpReq.ContentLength = int64(len(body))
		httpReq.GetBody = func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(body)), nil
		}
	}

	resp, err := fetch.WithCredentials(b.client, req.credentials()).Do(httpReq)
	if upload != nil {
		upload.shut()
	}
	if err != nil {
		return nil, err
	}

	if req.ReportProgress {
		pr := &progressReader{
			r:     resp.Body,
			kind:  EventDownloadProgress,
			total: resp.ContentLength,
			emit:  em.progress,
		}
		if req.responseType() == ResponseTypeText {
			pr.text = new(strings.Builder)
		}
		resp.Body = struct {
			io.Reader
			io.Closer
		}{pr, resp.Body}
	}

	res := fetch.FromHTTP(resp, req.URL)
	if req.ReportProgress {
		em.progress(&HeaderResponse{
			Header:     responseHeaders(res),
			Status:     res.Status,
			StatusText: res.StatusText,
			URL:        responseURL(res, req),
		})
	}
	return res, nil
}

// progressReader reports the running byte count of everything read through it.
type progressReader struct {
	r      io.Reader
	kind   EventType
	loaded int64
	total  int64
	text   *strings.Builder
	emit   func(Event) bool
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.loaded += int64(n)
		ev := &ProgressEvent{Kind: p.kind, Loaded: p.loaded, Total: p.total}
		if p.text != nil {
			p.text.Write(b[:n])
			ev.PartialText = p.text.String()
		}
		p.emit(ev)
	}
	return n, err
}

// progressGate forwards events until it is shut.
type progressGate struct {
	mu     sync.Mutex
	closed bool
	emit   func(Event) bool
}

func (g *progressGate) send(ev Event) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		return false
	}
	return g.emit(ev)
}

func (g *progressGate) shut() {
	g.mu.Lock()
	g.closed = true
	g.mu.Unlock()
}
