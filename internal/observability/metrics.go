package observability

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/signalsfoundry/meshfreq/core"
)

// ResolverCollector bundles Prometheus metrics for the resolver API
// surface and provides helpers to wire them into HTTP handlers.
type ResolverCollector struct {
	gatherer prometheus.Gatherer

	Requests  *prometheus.CounterVec
	Durations *prometheus.HistogramVec

	Resolutions    *prometheus.CounterVec
	CatalogRegions prometheus.Gauge
}

// NewResolverCollector registers resolver metrics against the provided
// registerer, defaulting to the global Prometheus registry when nil.
func NewResolverCollector(reg prometheus.Registerer) (*ResolverCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "api_requests_total",
		Help: "Total number of handled API requests, labeled by handler, HTTP method, and status code.",
	}, []string{"handler", "method", "code"})
	requests, err := registerCounterVec(reg, requests, "api_requests_total")
	if err != nil {
		return nil, err
	}

	durations := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "api_request_duration_seconds",
		Help:    "API request latency in seconds.",
		Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	}, []string{"handler"})
	durations, err = registerHistogramVec(reg, durations, "api_request_duration_seconds")
	if err != nil {
		return nil, err
	}

	resolutions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "resolutions_total",
		Help: "Channel resolutions by region and outcome. Unknown region codes collapse into one label value to keep cardinality bounded.",
	}, []string{"region", "outcome"})
	resolutions, err = registerCounterVec(reg, resolutions, "resolutions_total")
	if err != nil {
		return nil, err
	}

	regions, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "catalog_regions",
		Help: "Number of regions in the regional band catalog.",
	}), "catalog_regions")
	if err != nil {
		return nil, err
	}

	return &ResolverCollector{
		gatherer:       gatherer,
		Requests:       requests,
		Durations:      durations,
		Resolutions:    resolutions,
		CatalogRegions: regions,
	}, nil
}

// Middleware records request counts and durations for one named handler.
func (c *ResolverCollector) Middleware(handler string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, code: http.StatusOK}
		next.ServeHTTP(sw, r)

		if c == nil {
			return
		}
		if c.Requests != nil {
			c.Requests.WithLabelValues(handler, r.Method, strconv.Itoa(sw.code)).Inc()
		}
		if c.Durations != nil {
			c.Durations.WithLabelValues(handler).Observe(time.Since(start).Seconds())
		}
	})
}

// RecordResolution counts one resolution attempt. The region label must
// come from the catalog (or be the fixed "unknown" value); outcome is
// one of the ResolutionOutcome values.
func (c *ResolverCollector) RecordResolution(region, outcome string) {
	if c == nil || c.Resolutions == nil {
		return
	}
	c.Resolutions.WithLabelValues(region, outcome).Inc()
}

// SetCatalogSize publishes the region catalog size, normally once at
// startup.
func (c *ResolverCollector) SetCatalogSize(regions int) {
	if c == nil || c.CatalogRegions == nil {
		return
	}
	c.CatalogRegions.Set(float64(regions))
}

// Handler exposes a ready-to-use /metrics handler.
func (c *ResolverCollector) Handler() http.Handler {
	gatherer := c.gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// ResolutionOutcome maps a resolution error to its bounded outcome
// label.
func ResolutionOutcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, core.ErrUnknownRegion):
		return "unknown_region"
	case errors.Is(err, core.ErrInvalidBandwidth):
		return "invalid_bandwidth"
	case errors.Is(err, core.ErrDegenerateBand):
		return "degenerate_band"
	default:
		return "error"
	}
}

// statusWriter captures the status code written by a handler. Handlers
// that never call WriteHeader implicitly send 200.
type statusWriter struct {
	http.ResponseWriter
	code int
}

func (w *statusWriter) WriteHeader(code int) {
	w.code = code
	w.ResponseWriter.WriteHeader(code)
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerHistogramVec(reg prometheus.Registerer, vec *prometheus.HistogramVec, name string) (*prometheus.HistogramVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.HistogramVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerGauge(reg prometheus.Registerer, gauge prometheus.Gauge, name string) (prometheus.Gauge, error) {
	if err := reg.Register(gauge); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Gauge); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return gauge, nil
}
