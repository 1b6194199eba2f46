package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/osse101/CineLoot_Go/internal/domain"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// DailyLimitResponse is returned with 429 so clients can show a countdown
type DailyLimitResponse struct {
	Error     string    `json:"error"`
	ResetAt   time.Time `json:"reset_at"`
	Remaining int       `json:"remaining"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	buf := getBuffer()
	defer putBuffer(buf)

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error("Failed to encode JSON response", "error", err)
		http.Error(w, ErrMsgGenericServerError, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondServiceError maps err to a status code. A daily limit error also
// carries the reset instant.
func respondServiceError(w http.ResponseWriter, err error) {
	var limitErr domain.DailyLimitError
	if errors.As(err, &limitErr) {
		respondJSON(w, http.StatusTooManyRequests, DailyLimitResponse{
			Error:     ErrMsgDailyLimitError,
			ResetAt:   limitErr.ResetAt,
			Remaining: limitErr.Remaining(),
		})
		return
	}

	status, msg := mapServiceErrorToUserMessage(err)
	respondError(w, status, msg)
}

// mapServiceErrorToUserMessage maps domain errors to HTTP status codes and
// messages users can act on
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrInvalidType):
		return http.StatusBadRequest, ErrMsgInvalidTypeError
	case errors.Is(err, domain.ErrInvalidAmount):
		return http.StatusBadRequest, ErrMsgInvalidAmountError
	case errors.Is(err, domain.ErrInvalidTimezone):
		return http.StatusBadRequest, ErrMsgInvalidTimezoneErr
	case errors.Is(err, domain.ErrInvalidContentData):
		return http.StatusUnprocessableEntity, ErrMsgInvalidContentError
	case errors.Is(err, domain.ErrDailyLimitReached):
		return http.StatusTooManyRequests, ErrMsgDailyLimitError
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, ErrMsgUserNotFoundError
	case errors.Is(err, domain.ErrNoContentAvailable):
		return http.StatusServiceUnavailable, ErrMsgNoContentError
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}
