package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"evrental-backend/internal/logger"
	"evrental-backend/internal/repository"
	"evrental-backend/internal/service"
)

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("failed to encode response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondServiceError maps service and repository errors to HTTP statuses.
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		respondError(w, http.StatusNotFound, "not found")
	case errors.Is(err, service.ErrForbidden):
		respondError(w, http.StatusForbidden, "forbidden")
	case errors.Is(err, service.ErrAlreadyFinal):
		respondError(w, http.StatusConflict, "transaction is already in a terminal state")
	case errors.Is(err, service.ErrInvalidCredentials):
		respondError(w, http.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, service.ErrInvalidSignup):
		respondError(w, http.StatusBadRequest, service.ErrInvalidSignup.Error())
	case errors.Is(err, service.ErrUsernameTaken):
		respondError(w, http.StatusConflict, "username is already taken")
	case errors.Is(err, service.ErrEmailTaken):
		respondError(w, http.StatusConflict, "email is already registered")
	default:
		logger.Error("request failed", "error", err)
		respondError(w, http.StatusInternalServerError, "internal error")
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}
