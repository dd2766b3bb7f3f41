package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"jalali-planner/internal/logger"
	"jalali-planner/internal/service"
)

func respondJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

func respondError(w http.ResponseWriter, code int, message string) {
	respondJSON(w, code, map[string]string{"error": message})
}

// respondServiceError maps the service error taxonomy onto HTTP statuses:
// validation 422, missing 404, foreign owner 403, bad credentials 401.
func respondServiceError(w http.ResponseWriter, err error) {
	var verrs service.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		respondJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{"errors": verrs})
	case errors.Is(err, service.ErrNotFound):
		respondError(w, http.StatusNotFound, "Not found")
	case errors.Is(err, service.ErrForbidden):
		respondError(w, http.StatusForbidden, "Unauthorized")
	case errors.Is(err, service.ErrInvalidCredentials):
		respondError(w, http.StatusUnauthorized, "Invalid credentials")
	default:
		logger.Error("unhandled service error", err)
		respondError(w, http.StatusInternalServerError, "Server error")
	}
}
