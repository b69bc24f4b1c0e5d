package backend

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/dvcrn/fetch-relay/internal/backend"

// Traced wraps next so every request runs inside a client span. The stream
// keeps the same events; the span ends just before the terminal signal.
func Traced(next Backend, tp trace.TracerProvider) Backend {
	tracer := tp.Tracer(tracerName)

	return BackendFunc(func(ctx context.Context, req *Request) *Stream {
		ctx, span := tracer.Start(ctx, "HTTP "+req.Method,
			trace.WithSpanKind(trace.SpanKindClient),
			trace.WithAttributes(
				attribute.String("http.request.method", req.Method),
				attribute.String("url.full", req.URL),
				attribute.String("http.response_type", string(req.responseType())),
				attribute.Bool("http.report_progress", req.ReportProgress),
			),
		)

		inner := next.Handle(ctx, req)
		stream, em := newStream(ctx)
		em.sent()

		go func() {
			var final *Response
			for ev := range inner.Events() {
				switch e := ev.(type) {
				case SentEvent:
				case *Response:
					final = e
				default:
					em.progress(ev)
				}
			}

			if errRes := inner.err; errRes != nil {
				span.SetAttributes(attribute.Int("http.response.status_code", errRes.Status))
				span.RecordError(errRes)
				span.SetStatus(codes.Error, errRes.Message)
				span.End()
				em.fail(errRes)
				return
			}
			if final == nil {
				// the reader went away before the response was delivered
				span.End()
				em.abandon()
				return
			}
			span.SetAttributes(attribute.Int("http.response.status_code", final.Status))
			span.End()
			em.succeed(final)
		}()

		return stream
	})
}
