package handler

import (
	"net/http"

	"github.com/osse101/CineLoot_Go/internal/logger"
	"github.com/osse101/CineLoot_Go/internal/spin"
)

// SpinRequest opens one loot box for a registered user
type SpinRequest struct {
	UserID string `json:"user_id" validate:"required,max=128"`
	Type   string `json:"type" validate:"required,content_type"`
}

// GuestSpinRequest opens a loot box without an account
type GuestSpinRequest struct {
	Type string `json:"type" validate:"required,content_type"`
}

// GrantRequest banks override spins for a user
type GrantRequest struct {
	UserID string `json:"user_id" validate:"required,max=128"`
	Amount int    `json:"amount" validate:"gte=1"`
}

// TimezoneRequest sets the zone that decides a user's day
type TimezoneRequest struct {
	UserID   string `json:"user_id" validate:"required,max=128"`
	Timezone string `json:"timezone" validate:"timezone"`
}

// SpinHandler exposes the spin service over HTTP
type SpinHandler struct {
	service spin.Service
}

// NewSpinHandler creates a new SpinHandler
func NewSpinHandler(service spin.Service) *SpinHandler {
	return &SpinHandler{service: service}
}

// HandleSpin opens a loot box and records the result
func (h *SpinHandler) HandleSpin(w http.ResponseWriter, r *http.Request) {
	var req SpinRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Spin"); err != nil {
		return
	}

	outcome, err := h.service.OpenLootbox(r.Context(), req.UserID, req.Type)
	if err != nil {
		logger.FromContext(r.Context()).Warn(LogMsgSpinFailed, "user_id", req.UserID, "error", err)
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, outcome)
}

// HandleGuestSpin opens a loot box without touching any user state
func (h *SpinHandler) HandleGuestSpin(w http.ResponseWriter, r *http.Request) {
	var req GuestSpinRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Guest spin"); err != nil {
		return
	}

	outcome, err := h.service.OpenGuestLootbox(r.Context(), req.Type)
	if err != nil {
		logger.FromContext(r.Context()).Warn(LogMsgGuestSpinFailed, "error", err)
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, outcome)
}

// HandleStatus returns today's spin budget
func (h *SpinHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetQueryParam(r, w, "user_id")
	if !ok {
		return
	}

	status, err := h.service.GetStatus(r.Context(), userID)
	if err != nil {
		logger.FromContext(r.Context()).Warn(LogMsgStatusFailed, "user_id", userID, "error", err)
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, status)
}

// HandleGrant is the admin route for override spins
func (h *SpinHandler) HandleGrant(w http.ResponseWriter, r *http.Request) {
	var req GrantRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Grant"); err != nil {
		return
	}

	status, err := h.service.GrantOverrideSpins(r.Context(), req.UserID, req.Amount)
	if err != nil {
		logger.FromContext(r.Context()).Warn(LogMsgGrantFailed, "user_id", req.UserID, "error", err)
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, status)
}

// HandleSetTimezone stores the user's timezone
func (h *SpinHandler) HandleSetTimezone(w http.ResponseWriter, r *http.Request) {
	var req TimezoneRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Set timezone"); err != nil {
		return
	}

	status, err := h.service.SetTimezone(r.Context(), req.UserID, req.Timezone)
	if err != nil {
		logger.FromContext(r.Context()).Warn(LogMsgSetTimezoneFailed, "user_id", req.UserID, "error", err)
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, status)
}
