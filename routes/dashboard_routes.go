package routes

import (
	"eventfriend_server/controllers"
	"eventfriend_server/services"

	"github.com/gorilla/mux"
)

// RegisterDashboardRoutes sets up the composite dashboard route under /api/dashboard
func RegisterDashboardRoutes(r *mux.Router, dashboardService *services.DashboardService) {
	controller := controllers.NewDashboardController(dashboardService)

	dashboardRouter := r.PathPrefix("/api/dashboard").Subrouter()

	dashboardRouter.HandleFunc("", controller.HandleGetDashboard).Methods("GET")
}
