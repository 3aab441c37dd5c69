package routes

import (
	"eventfriend_server/controllers"
	"eventfriend_server/services"

	"github.com/gorilla/mux"
)

// RegisterPhotoRoutes sets up presigned photo URL routes under /api/photos
func RegisterPhotoRoutes(r *mux.Router, photoService *services.PhotoService) {
	controller := controllers.NewPhotoController(photoService)

	photoRouter := r.PathPrefix("/api/photos").Subrouter()

	photoRouter.HandleFunc("/upload-url", controller.HandleGetUploadURL).Methods("GET")
	photoRouter.HandleFunc("/read-url", controller.HandleGetReadURL).Methods("GET")
}
