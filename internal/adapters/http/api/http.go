// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/yasirabdullah123/FDA-Drug-Safety-Dashboard/internal/adapters/openfda"
	service "github.com/yasirabdullah123/FDA-Drug-Safety-Dashboard/internal/app"
	"github.com/yasirabdullah123/FDA-Drug-Safety-Dashboard/internal/domain/model"
)

// Dependencies required by HTTP handlers. An interface bundle keeps the
// handler layer loosely coupled to the service implementation.
type Dependencies interface {
	// Summary runs (or serves from cache) one drug query.
	Summary(ctx context.Context, drug string) (model.SafetySummary, error)
}

// Server wires HTTP routes for the dashboard API.
type Server struct {
	summaryHandler   *SummaryHandler
	trendHandler     *TrendHandler
	reactionsHandler *ReactionsHandler
	countriesHandler *CountriesHandler
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	dashboardHandler *DashboardHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		summaryHandler:   NewSummaryHandler(deps),
		trendHandler:     NewTrendHandler(deps),
		reactionsHandler: NewReactionsHandler(deps),
		countriesHandler: NewCountriesHandler(deps),
		healthHandler:    NewHealthHandler(),
		statsHandler:     NewStatsHandler(statsProvider),
		dashboardHandler: NewDashboardHandler(),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", Middleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", Middleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/dashboard", s.dashboardHandler.HandleDashboard)
	mux.HandleFunc("/summary/", Middleware(s.summaryHandler.HandleGetSummary, "summary"))
	mux.HandleFunc("/trend/", Middleware(s.trendHandler.HandleGetTrend, "trend"))
	mux.HandleFunc("/reactions/", Middleware(s.reactionsHandler.HandleGetReactions, "reactions"))
	mux.HandleFunc("/countries/", Middleware(s.countriesHandler.HandleGetCountries, "countries"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// drugFromPath extracts the drug name path parameter after prefix.
func drugFromPath(r *http.Request, prefix string) (string, bool) {
	drug := strings.TrimPrefix(r.URL.Path, prefix)
	if drug == "" || strings.Contains(drug, "/") {
		return "", false
	}
	return drug, true
}

// writeQueryError translates pipeline errors into the API contract: upstream
// trouble surfaces as "data temporarily unavailable" rather than a stack
// trace or a partial table.
func writeQueryError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrEmptyDrug):
		writeError(w, http.StatusBadRequest, "bad_request", err)
	case errors.Is(err, openfda.ErrUpstreamUnavailable):
		writeError(w, http.StatusServiceUnavailable, "upstream_unavailable",
			errors.New("adverse event data temporarily unavailable; try again shortly"))
	case errors.Is(err, openfda.ErrUpstreamRejected):
		writeError(w, http.StatusBadGateway, "upstream_rejected", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}
