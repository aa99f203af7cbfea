// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
	"strconv"

	"github.com/yasirabdullah123/FDA-Drug-Safety-Dashboard/internal/domain/model"
)

// ReactionsHandler handles ranked side-effect requests.
type ReactionsHandler struct {
	deps Dependencies
}

// NewReactionsHandler creates a new reactions handler.
func NewReactionsHandler(deps Dependencies) *ReactionsHandler {
	return &ReactionsHandler{deps: deps}
}

type reactionsResponse struct {
	Drug        string                `json:"drug"`
	SampleBasis string                `json:"sample_basis"`
	Reactions   []model.ReactionCount `json:"reactions"`
}

// HandleGetReactions handles GET /reactions/{drug}?limit=N requests. The
// table is already administrative-term-free; limit only trims it further.
func (h *ReactionsHandler) HandleGetReactions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	drug, ok := drugFromPath(r, "/reactions/")
	if !ok {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
			return
		}
		limit = n
	}

	summary, err := h.deps.Summary(r.Context(), drug)
	if err != nil {
		writeQueryError(w, err)
		return
	}

	reactions := summary.Reactions
	if limit > 0 && limit < len(reactions) {
		reactions = reactions[:limit]
	}
	writeJSON(w, http.StatusOK, reactionsResponse{
		Drug:        summary.Drug,
		SampleBasis: summary.SampleBasis,
		Reactions:   reactions,
	})
}
