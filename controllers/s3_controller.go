package controllers

import (
	"net/http"

	"eventfriend_server/services"
)

// PhotoController struct
type PhotoController struct {
	PhotoService *services.PhotoService
}

// NewPhotoController initializes the photo controller
func NewPhotoController(service *services.PhotoService) *PhotoController {
	return &PhotoController{PhotoService: service}
}

// HandleGetUploadURL - Presigns a PUT URL; the returned key is what a
// profile stores as profilePhotoRef
func (c *PhotoController) HandleGetUploadURL(w http.ResponseWriter, r *http.Request) {
	fileName := r.URL.Query().Get("fileName")
	fileType := r.URL.Query().Get("fileType")
	if fileName == "" || fileType == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "fileName and fileType are required"})
		return
	}

	url, key, err := c.PhotoService.GenerateUploadURL(fileName, fileType)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to presign upload URL"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"uploadUrl": url, "key": key})
}

// HandleGetReadURL - Presigns a GET URL for a stored photo
func (c *PhotoController) HandleGetReadURL(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "key is required"})
		return
	}

	url, err := c.PhotoService.GenerateReadURL(key)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to presign read URL"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"readUrl": url})
}
