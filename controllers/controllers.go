package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"eventfriend_server/services"
)

// writeJSON writes a JSON response with the given status code
func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// writeError maps service errors onto distinguishable HTTP outcomes,
// so clients can tell "nothing to show" from "operation failed".
func writeError(w http.ResponseWriter, err error) {
	var partial *services.PartialFailureError
	switch {
	case errors.Is(err, services.ErrInvalidArgument):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, services.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.As(err, &partial):
		// Part of the fan-out succeeded; report both halves so the
		// caller can retry only the failed candidates.
		writeJSON(w, http.StatusBadGateway, map[string]interface{}{
			"error":            "some matches could not be persisted",
			"matches":          partial.Created,
			"failedCandidates": partial.FailedCandidates(),
		})
	default:
		log.Printf("Internal error: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}
