// internal/api/server.go

// Package api serves the channel frequency resolver over HTTP/JSON.
//
// The package owns the wire types and the mapping from resolver errors to
// HTTP statuses; the arithmetic lives in core. Handlers are assembled by
// Routes and instrumented through small optional interfaces so the binary
// decides which collectors and sinks are attached.
package api

import (
	"context"
	"net/http"

	"github.com/signalsfoundry/meshfreq/core"
	"github.com/signalsfoundry/meshfreq/internal/logging"
)

// MetricsRecorder receives the outcome of each resolution request.
type MetricsRecorder interface {
	RecordResolution(region, outcome string)
}

// ResolutionSink receives successful resolutions for fan-out beyond the
// HTTP response, such as broker announcements.
type ResolutionSink interface {
	PublishResolution(ctx context.Context, res core.Resolution)
}

// RouteInstrumenter wraps a route handler with per-route request metrics.
type RouteInstrumenter interface {
	Middleware(handler string, next http.Handler) http.Handler
}

// Server bundles the HTTP handlers for the resolver API.
type Server struct {
	// log is the base logger; handlers log through the request-scoped
	// logger derived from it by the request-ID middleware.
	log logging.Logger

	// metrics is an optional recorder for resolution outcomes.
	metrics MetricsRecorder

	// sink is an optional receiver of successful resolutions.
	sink ResolutionSink

	// instrument optionally wraps each route with request metrics.
	instrument RouteInstrumenter
}

// Option customises Server construction.
type Option func(*Server)

// WithMetricsRecorder attaches an optional recorder for resolution outcomes.
func WithMetricsRecorder(m MetricsRecorder) Option {
	return func(s *Server) {
		s.metrics = m
	}
}

// WithResolutionSink attaches an optional sink notified of each successful
// resolution.
func WithResolutionSink(sink ResolutionSink) Option {
	return func(s *Server) {
		s.sink = sink
	}
}

// WithRouteInstrumenter attaches per-route request counting and timing.
func WithRouteInstrumenter(ri RouteInstrumenter) Option {
	return func(s *Server) {
		s.instrument = ri
	}
}

// NewServer constructs a Server. A nil logger falls back to the noop logger.
func NewServer(log logging.Logger, opts ...Option) *Server {
	if log == nil {
		log = logging.Noop()
	}
	s := &Server{log: log}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Routes returns the handler tree with the request-ID middleware applied
// around every route.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/v1/resolve", s.route("resolve", http.HandlerFunc(s.handleResolve)))
	mux.Handle("/v1/plan", s.route("plan", http.HandlerFunc(s.handlePlan)))
	mux.Handle("/v1/regions", s.route("regions", http.HandlerFunc(s.handleRegions)))
	mux.Handle("/healthz", s.route("healthz", http.HandlerFunc(s.handleHealthz)))
	return withRequestID(s.log, mux)
}

// route applies the optional per-route instrumentation.
func (s *Server) route(name string, h http.Handler) http.Handler {
	if s.instrument == nil {
		return h
	}
	return s.instrument.Middleware(name, h)
}

// requireGet rejects non-GET methods with a 405. The API is read-only.
func (s *Server) requireGet(w http.ResponseWriter, r *http.Request) bool {
	if r.Method == http.MethodGet {
		return true
	}
	w.Header().Set("Allow", http.MethodGet)
	http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	return false
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	if !s.requireGet(w, r) {
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok\n"))
}
