package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"quizlyst-backend/internal/ai"
	"quizlyst-backend/internal/models"
)

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeAIError maps a completion-chain failure to an HTTP response. The
// chain already folded provider details into a user-facing message.
func writeAIError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusBadGateway
	if ai.IsTimeout(err) {
		status = http.StatusGatewayTimeout
	}
	var provErr *ai.ProviderError
	if errors.As(err, &provErr) && provErr.StatusHint == http.StatusTooManyRequests {
		status = http.StatusTooManyRequests
	}
	writeJSON(w, status, errorResp("UPSTREAM_UNAVAILABLE", err.Error(), r))
}

func errorResp(code, message string, r *http.Request) models.ErrorResponse {
	return models.ErrorResponse{
		Error: models.APIError{
			Code:      code,
			Message:   message,
			RequestID: r.Header.Get("X-Request-ID"),
		},
	}
}
