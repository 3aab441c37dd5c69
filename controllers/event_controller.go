package controllers

import (
	"encoding/json"
	"net/http"

	"eventfriend_server/models"
	"eventfriend_server/services"

	"github.com/gorilla/mux"
)

// EventController struct
type EventController struct {
	EventService *services.EventService
}

// NewEventController initializes the event controller
func NewEventController(service *services.EventService) *EventController {
	return &EventController{EventService: service}
}

// HandleCreateEvent - Creates a new event (organizer/admin surface)
func (c *EventController) HandleCreateEvent(w http.ResponseWriter, r *http.Request) {
	var event models.Event
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		return
	}

	created, err := c.EventService.AddEvent(r.Context(), event)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// HandleListEvents - Lists events, optionally filtered by category
func (c *EventController) HandleListEvents(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")

	events, err := c.EventService.ListEvents(r.Context(), category)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"events": events})
}

// HandleGetEvent - Fetches one event by id
func (c *EventController) HandleGetEvent(w http.ResponseWriter, r *http.Request) {
	eventID := mux.Vars(r)["eventId"]

	event, err := c.EventService.GetEventByID(r.Context(), eventID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, event)
}

// HandleToggleInterest - Marks or removes a user's interest in an event
func (c *EventController) HandleToggleInterest(w http.ResponseWriter, r *http.Request) {
	eventID := mux.Vars(r)["eventId"]

	var request struct {
		UserID     string `json:"userId"`
		Interested bool   `json:"interested"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		return
	}
	if request.UserID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "userId is required"})
		return
	}

	if request.Interested {
		if _, err := c.EventService.MarkInterested(r.Context(), request.UserID, eventID); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "Marked interested"})
		return
	}

	if err := c.EventService.UnmarkInterested(r.Context(), request.UserID, eventID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Interest removed"})
}

// HandleListInterested - Lists a user's interest snapshots
func (c *EventController) HandleListInterested(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "userId is required"})
		return
	}

	events, err := c.EventService.ListInterested(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"interestedEvents": events})
}
