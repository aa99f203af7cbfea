// Package api declares HTTP contracts and route registration helpers.
package api

import "net/http"

// TrendHandler handles year-over-year trend requests.
type TrendHandler struct {
	deps Dependencies
}

// NewTrendHandler creates a new trend handler.
func NewTrendHandler(deps Dependencies) *TrendHandler {
	return &TrendHandler{deps: deps}
}

// trendResponse carries the trend table with its sampling label.
type trendResponse struct {
	Drug        string `json:"drug"`
	SampleBasis string `json:"sample_basis"`
	Years       any    `json:"years"`
}

// HandleGetTrend handles GET /trend/{drug} requests.
func (h *TrendHandler) HandleGetTrend(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	drug, ok := drugFromPath(r, "/trend/")
	if !ok {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	summary, err := h.deps.Summary(r.Context(), drug)
	if err != nil {
		writeQueryError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, trendResponse{
		Drug:        summary.Drug,
		SampleBasis: summary.SampleBasis,
		Years:       summary.Years,
	})
}
