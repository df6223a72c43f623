package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"prekeyd/internal/model"
)

type errorResponse struct {
	Error string `json:"error"`
}

// handleError maps the three domain outcomes to their status codes. Anything
// else is an infrastructure fault and must not masquerade as not-found.
func handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrUnauthorized):
		respondError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, model.ErrRateLimited):
		respondError(w, http.StatusTooManyRequests, "rate limited")
	case errors.Is(err, model.ErrNotFound):
		respondError(w, http.StatusNotFound, "not found")
	default:
		respondError(w, http.StatusInternalServerError, "internal server error")
	}
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, errorResponse{Error: msg})
}

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
