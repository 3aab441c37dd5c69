package controllers

import (
	"net/http"

	"eventfriend_server/services"
)

// DashboardController struct
type DashboardController struct {
	DashboardService *services.DashboardService
}

// NewDashboardController initializes the dashboard controller
func NewDashboardController(service *services.DashboardService) *DashboardController {
	return &DashboardController{DashboardService: service}
}

// HandleGetDashboard - Composes the user's events, matches, and
// messages into one response. Best-effort composite; no cross-
// collection consistency.
func (c *DashboardController) HandleGetDashboard(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "userId is required"})
		return
	}

	view, err := c.DashboardService.GetDashboard(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}
