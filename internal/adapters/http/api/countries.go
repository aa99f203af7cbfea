// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"

	"github.com/yasirabdullah123/FDA-Drug-Safety-Dashboard/internal/domain/aggregate"
	"github.com/yasirabdullah123/FDA-Drug-Safety-Dashboard/internal/domain/model"
)

// CountriesHandler handles per-country report-volume requests.
type CountriesHandler struct {
	deps Dependencies
}

// NewCountriesHandler creates a new countries handler.
func NewCountriesHandler(deps Dependencies) *CountriesHandler {
	return &CountriesHandler{deps: deps}
}

type countriesResponse struct {
	Drug        string               `json:"drug"`
	SampleBasis string               `json:"sample_basis"`
	Countries   []model.CountryCount `json:"countries"`
}

// HandleGetCountries handles GET /countries/{drug} requests. With
// ?mapped=true only the coordinate-bearing subset is returned, for map
// rendering; the default response keeps unmapped codes in the count table.
func (h *CountriesHandler) HandleGetCountries(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	drug, ok := drugFromPath(r, "/countries/")
	if !ok {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}

	summary, err := h.deps.Summary(r.Context(), drug)
	if err != nil {
		writeQueryError(w, err)
		return
	}

	countries := summary.Countries
	if r.URL.Query().Get("mapped") == "true" {
		countries = aggregate.MappedOnly(countries)
	}
	writeJSON(w, http.StatusOK, countriesResponse{
		Drug:        summary.Drug,
		SampleBasis: summary.SampleBasis,
		Countries:   countries,
	})
}
