// internal/api/regions.go
package api

import (
	"net/http"

	"github.com/signalsfoundry/meshfreq/core"
)

// handleRegions serves GET /v1/regions with the catalog in declaration order.
func (s *Server) handleRegions(w http.ResponseWriter, r *http.Request) {
	if !s.requireGet(w, r) {
		return
	}

	bands := core.Regions()
	payload := regionsPayload{Regions: make([]regionPayload, 0, len(bands))}
	for _, band := range bands {
		payload.Regions = append(payload.Regions, regionToPayload(band))
	}

	s.writeJSON(w, r, http.StatusOK, payload)
}
