package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/vncsmyrnk/schoolvote/internal/core/domain"
)

const retryAfterSeconds = "1"

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// writeError maps domain errors to a status and a stable error code.
func writeError(w http.ResponseWriter, err error) {
	status, code := http.StatusInternalServerError, "internal"
	switch {
	case errors.Is(err, domain.ErrNotFound):
		status, code = http.StatusNotFound, "not_found"
	case errors.Is(err, domain.ErrValidation):
		status, code = http.StatusBadRequest, "validation"
	case errors.Is(err, domain.ErrAlreadyVoted):
		status, code = http.StatusConflict, "already_voted"
	case errors.Is(err, domain.ErrInvalidTransition):
		status, code = http.StatusConflict, "invalid_transition"
	case errors.Is(err, domain.ErrElectionNotActive):
		status, code = http.StatusConflict, "election_not_active"
	case errors.Is(err, domain.ErrElectionNotDraft):
		status, code = http.StatusConflict, "election_not_draft"
	case errors.Is(err, domain.ErrInvalidCandidate):
		status, code = http.StatusUnprocessableEntity, "invalid_candidate"
	case domain.IsRetryable(err):
		status, code = http.StatusServiceUnavailable, "unavailable"
		w.Header().Set("Retry-After", retryAfterSeconds)
	}

	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "internal server error"
	}
	writeJSON(w, status, errorResponse{Error: message, Code: code})
}

func writeErrorMessage(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Error: message, Code: code})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}
