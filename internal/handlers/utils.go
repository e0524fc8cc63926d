package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/identity-hub/apiserver/internal/services"
	"github.com/identity-hub/apiserver/internal/store"
	"github.com/rs/zerolog/log"
)

// ErrorResponse is the JSON body for every failed request: a stable tag
// and a human-readable message.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

func writeError(w http.ResponseWriter, status int, tag, message string) {
	writeJSON(w, status, ErrorResponse{Error: tag, Message: message})
}

// respondError maps the closed error set to its status code. Anything
// outside the set is a 500 with the cause logged server-side only.
func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", "User not found")
	case errors.Is(err, store.ErrEmailTaken):
		writeError(w, http.StatusConflict, "conflict", "Email already exists")
	case errors.Is(err, services.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "unauthorized", "Invalid credentials")
	default:
		log.Error().Err(err).Msg("request failed")
		writeError(w, http.StatusInternalServerError, "internal", "Internal server error")
	}
}
