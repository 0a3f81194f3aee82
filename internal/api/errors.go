// internal/api/errors.go
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/signalsfoundry/meshfreq/core"
	"github.com/signalsfoundry/meshfreq/internal/logging"
)

// StatusCodeFor maps resolver errors onto HTTP status codes.
func StatusCodeFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, core.ErrUnknownRegion):
		return http.StatusNotFound
	case errors.Is(err, core.ErrInvalidBandwidth):
		return http.StatusBadRequest
	case errors.Is(err, core.ErrDegenerateBand):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// writeJSON encodes v as the response body with the given status code.
func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger(r.Context()).Error(r.Context(), "failed to encode response", logging.Err(err))
	}
}

// writeResolveError maps err to a status code and writes the error payload.
// Unknown-region failures carry the valid region codes so clients see the
// same listing the CLI prints.
func (s *Server) writeResolveError(w http.ResponseWriter, r *http.Request, err error) {
	payload := errorPayload{Error: err.Error()}
	if errors.Is(err, core.ErrUnknownRegion) {
		payload.ValidRegions = regionCodes(core.Regions())
	}
	status := StatusCodeFor(err)
	if status >= http.StatusInternalServerError {
		s.logger(r.Context()).Error(r.Context(), "resolution failed", logging.Err(err))
	} else {
		s.logger(r.Context()).Debug(r.Context(), "rejected request", logging.Err(err), logging.Int("status", status))
	}
	s.writeJSON(w, r, status, payload)
}
