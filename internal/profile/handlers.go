// internal/profile/handlers.go

package profile

import (
	"errors"
	"net/http"

	"github.com/imadgeboyega/dating-insights-backend/internal/auth"
	"github.com/imadgeboyega/dating-insights-backend/internal/common/logger"
	"github.com/imadgeboyega/dating-insights-backend/internal/common/utils"
)

// Handler handles profile-related HTTP requests
type Handler struct {
	service Service
	log     *logger.Logger
}

// NewHandler creates a new profile handler
func NewHandler(service Service, log *logger.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log,
	}
}

// GetMyProfile returns the current user's profile
func (h *Handler) GetMyProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ErrorResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	profile, err := h.service.GetProfile(r.Context(), userID)
	if err != nil {
		h.respondError(w, err, "Failed to get profile")
		return
	}

	utils.SuccessResponse(w, profile, http.StatusOK)
}

// UpdateProfile updates the current user's profile
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ErrorResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req UpdateProfileRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.ErrorResponse(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		utils.ErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	profile, err := h.service.UpdateProfile(r.Context(), userID, &req)
	if err != nil {
		h.respondError(w, err, "Failed to update profile")
		return
	}

	utils.SuccessResponse(w, profile, http.StatusOK)
}

// SetBurnout sets the current user's burnout level
func (h *Handler) SetBurnout(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ErrorResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req BurnoutRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.ErrorResponse(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		utils.ErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	level, err := h.service.SetBurnout(r.Context(), userID, *req.BurnoutLevel)
	if err != nil {
		h.respondError(w, err, "Failed to update burnout level")
		return
	}

	utils.SuccessResponse(w, map[string]int{"burnoutLevel": level}, http.StatusOK)
}

// GetLeaderboard returns the anonymised leaderboards
func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	boards, err := h.service.Leaderboard(r.Context())
	if err != nil {
		h.respondError(w, err, "Failed to get leaderboard")
		return
	}

	utils.SuccessResponse(w, boards, http.StatusOK)
}

func (h *Handler) respondError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, ErrProfileNotFound):
		utils.ErrorResponse(w, "User not found", http.StatusNotFound)
		return
	case errors.Is(err, ErrDisplayNameRequired):
		utils.ErrorResponse(w, "Display name is required", http.StatusBadRequest)
		return
	}
	h.log.Error(fallback, "error", err)
	utils.ErrorResponse(w, fallback, http.StatusInternalServerError)
}
