package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"syntra_server/services"
)

// WriteJSONResponse writes payload as JSON with the given status
func WriteJSONResponse(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// StatusForError maps the service error taxonomy to HTTP status codes:
// validation and business-rule violations are 400, authorization failures
// 403, missing entities 404, everything else 500.
func StatusForError(err error) int {
	switch {
	case errors.Is(err, services.ErrValidation),
		errors.Is(err, services.ErrConflict),
		errors.Is(err, services.ErrAlreadyMember),
		errors.Is(err, services.ErrCapacityExceeded),
		errors.Is(err, services.ErrInvalidState):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrAccessDenied):
		return http.StatusForbidden
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// WriteError writes the standard failure envelope for err
func WriteError(w http.ResponseWriter, err error) {
	WriteJSONResponse(w, StatusForError(err), map[string]interface{}{
		"success": false,
		"error":   err.Error(),
	})
}

// WriteSuccess writes the standard success envelope with extra fields merged in
func WriteSuccess(w http.ResponseWriter, status int, fields map[string]interface{}) {
	payload := map[string]interface{}{"success": true}
	for k, v := range fields {
		payload[k] = v
	}
	WriteJSONResponse(w, status, payload)
}

// HealthCheckHandler provides a basic health check
func HealthCheckHandler(w http.ResponseWriter, r *http.Request) {
	WriteJSONResponse(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// WelcomeHandler provides a welcome message
func WelcomeHandler(w http.ResponseWriter, r *http.Request) {
	WriteJSONResponse(w, http.StatusOK, map[string]string{"message": "Welcome to the Syntra API."})
}
