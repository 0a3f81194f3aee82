// internal/api/middleware.go
package api

import (
	"net/http"

	"github.com/signalsfoundry/meshfreq/internal/logging"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const requestIDHeader = "X-Request-Id"

// withRequestID ensures a request_id is present on the context, sourcing it
// from the inbound header if provided, and attaches a per-request logger
// annotated with request_id, method and path. The ID is echoed back in the
// response header and recorded on the active span.
func withRequestID(base logging.Logger, next http.Handler) http.Handler {
	if base == nil {
		base = logging.Noop()
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if incoming := r.Header.Get(requestIDHeader); incoming != "" {
			ctx = logging.ContextWithRequestID(ctx, incoming)
		}

		ctx, reqLog := logging.WithRequestLogger(ctx, base.With(
			logging.String("method", r.Method),
			logging.String("path", r.URL.Path),
		))
		ctx = logging.ContextWithLogger(ctx, reqLog)

		reqID := logging.RequestIDFromContext(ctx)
		w.Header().Set(requestIDHeader, reqID)
		if span := trace.SpanFromContext(ctx); span.SpanContext().IsValid() {
			span.SetAttributes(attribute.String("request_id", reqID))
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// annotateSpan adds resolution attributes to the active server span, if any.
func annotateSpan(r *http.Request, attrs ...attribute.KeyValue) {
	span := trace.SpanFromContext(r.Context())
	if !span.SpanContext().IsValid() {
		return
	}
	span.SetAttributes(attrs...)
}

// recordSpanError marks the active span with the failure, if any.
func recordSpanError(r *http.Request, err error) {
	if err == nil {
		return
	}
	span := trace.SpanFromContext(r.Context())
	if !span.SpanContext().IsValid() {
		return
	}
	span.RecordError(err)
}
