// Package api declares HTTP contracts and route registration helpers.
package api

import "net/http"

// DashboardHandler serves the embedded dashboard page.
type DashboardHandler struct{}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler() *DashboardHandler {
	return &DashboardHandler{}
}

// HandleDashboard handles GET /dashboard requests. The page is plain HTML
// plus JavaScript that queries /summary/{drug} and renders the three tables;
// all rendering logic stays client-side.
func (h *DashboardHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	http.ServeFileFS(w, r, dashboardFS, "dashboard.html")
}
