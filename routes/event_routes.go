package routes

import (
	"eventfriend_server/controllers"
	"eventfriend_server/services"

	"github.com/gorilla/mux"
)

// RegisterEventRoutes sets up routes for event and interest operations under /api/events
func RegisterEventRoutes(r *mux.Router, eventService *services.EventService) {
	controller := controllers.NewEventController(eventService)

	eventRouter := r.PathPrefix("/api/events").Subrouter()

	eventRouter.HandleFunc("", controller.HandleListEvents).Methods("GET")
	eventRouter.HandleFunc("", controller.HandleCreateEvent).Methods("POST")
	eventRouter.HandleFunc("/interested", controller.HandleListInterested).Methods("GET")
	eventRouter.HandleFunc("/{eventId}", controller.HandleGetEvent).Methods("GET")
	eventRouter.HandleFunc("/{eventId}/interest", controller.HandleToggleInterest).Methods("POST")
}
