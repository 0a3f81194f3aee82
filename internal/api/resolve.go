// internal/api/resolve.go
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/signalsfoundry/meshfreq/core"
	"github.com/signalsfoundry/meshfreq/internal/logging"
	"github.com/signalsfoundry/meshfreq/internal/observability"
	"go.opentelemetry.io/otel/attribute"
)

// logger returns the request-scoped logger installed by the middleware,
// falling back to the server's base logger.
func (s *Server) logger(ctx context.Context) logging.Logger {
	if l := logging.LoggerFromContext(ctx); l != nil {
		return l
	}
	return s.log
}

// handleResolve serves GET /v1/resolve?region=US&channel=LongFast&bandwidth=250.
//
// bandwidth is optional; absent or zero means the preset bandwidth for the
// channel name. The channel parameter is passed through as-is, matching the
// firmware's behaviour of hashing whatever name the node carries.
func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	if !s.requireGet(w, r) {
		return
	}

	q := r.URL.Query()
	regionCode := q.Get("region")
	channel := q.Get("channel")

	bandwidth := 0
	if raw := q.Get("bandwidth"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			s.writeJSON(w, r, http.StatusBadRequest, errorPayload{
				Error: fmt.Sprintf("bandwidth %q is not an integer", raw),
			})
			return
		}
		bandwidth = parsed
	}

	annotateSpan(r,
		attribute.String("meshfreq.region", regionCode),
		attribute.String("meshfreq.channel", channel),
	)

	res, err := core.Resolve(core.Request{
		Region:       regionCode,
		Channel:      channel,
		BandwidthKHz: bandwidth,
	})
	s.recordResolution(regionCode, err)
	if err != nil {
		recordSpanError(r, err)
		s.writeResolveError(w, r, err)
		return
	}

	annotateSpan(r,
		attribute.Int("meshfreq.slot", res.SlotNumber()),
		attribute.Float64("meshfreq.frequency_mhz", res.FrequencyMHz),
	)
	s.logger(r.Context()).Info(r.Context(), "resolved channel",
		logging.String("region", res.Band.Code),
		logging.String("channel", channel),
		logging.Int("slot", res.SlotNumber()),
		logging.Float64("frequency_mhz", res.FrequencyMHz),
	)

	if s.sink != nil {
		s.sink.PublishResolution(r.Context(), res)
	}

	s.writeJSON(w, r, http.StatusOK, resolutionToPayload(res))
}

// handlePlan serves GET /v1/plan?region=US with the full preset channel
// plan for one region.
func (s *Server) handlePlan(w http.ResponseWriter, r *http.Request) {
	if !s.requireGet(w, r) {
		return
	}

	regionCode := r.URL.Query().Get("region")
	annotateSpan(r, attribute.String("meshfreq.region", regionCode))

	band, err := core.LookupRegion(regionCode)
	if err != nil {
		recordSpanError(r, err)
		s.writeResolveError(w, r, err)
		return
	}

	resolutions, err := core.ResolvePresets(band.Code)
	if err != nil {
		recordSpanError(r, err)
		s.writeResolveError(w, r, err)
		return
	}

	s.writeJSON(w, r, http.StatusOK, planToPayload(band, resolutions))
}

// recordResolution counts the outcome of a resolve call. Region codes that
// failed catalog lookup are collapsed to "unknown" so arbitrary query
// strings never become metric label values.
func (s *Server) recordResolution(regionCode string, err error) {
	if s.metrics == nil {
		return
	}
	label := regionCode
	if errors.Is(err, core.ErrUnknownRegion) {
		label = "unknown"
	}
	s.metrics.RecordResolution(label, observability.ResolutionOutcome(err))
}
