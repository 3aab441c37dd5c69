package controllers

import (
	"encoding/json"
	"net/http"

	"eventfriend_server/services"
)

// MatchController struct
type MatchController struct {
	MatchService *services.MatchService
}

// NewMatchController initializes the match controller
func NewMatchController(service *services.MatchService) *MatchController {
	return &MatchController{MatchService: service}
}

// HandleFindMatches - Scores the user against all other users for an
// event and persists the pending matches. Unbounded fan-out; not a
// per-request operation at scale.
func (c *MatchController) HandleFindMatches(w http.ResponseWriter, r *http.Request) {
	var request struct {
		UserID  string `json:"userId"`
		EventID string `json:"eventId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		return
	}
	if request.UserID == "" || request.EventID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Missing required fields: userId, eventId"})
		return
	}

	matches, err := c.MatchService.FindMatchesForUser(r.Context(), request.UserID, request.EventID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"matches": matches})
}

// HandleUpdateStatus - Accept/reject transition on a match
func (c *MatchController) HandleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	var request struct {
		MatchID string `json:"matchId"`
		Status  string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		return
	}
	if request.MatchID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "matchId is required"})
		return
	}

	match, err := c.MatchService.UpdateMatchStatus(r.Context(), request.MatchID, request.Status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, match)
}

// HandleGetMatches - Lists matches with the user on either side
func (c *MatchController) HandleGetMatches(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "userId is required"})
		return
	}

	matches, err := c.MatchService.GetMatchesForUser(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"matches": matches})
}
