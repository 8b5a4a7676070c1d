// internal/assessment/handlers.go

package assessment

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/imadgeboyega/dating-insights-backend/internal/auth"
	"github.com/imadgeboyega/dating-insights-backend/internal/common/logger"
	"github.com/imadgeboyega/dating-insights-backend/internal/common/utils"
)

// Handler handles assessment HTTP requests
type Handler struct {
	service Service
	log     *logger.Logger
}

// NewHandler creates a new assessment handler
func NewHandler(service Service, log *logger.Logger) *Handler {
	return &Handler{service: service, log: log}
}

// CreateAssessment records a self-assessment and returns its analysis
func (h *Handler) CreateAssessment(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ErrorResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req CreateAssessmentRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.ErrorResponse(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		utils.ErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	analyzed, err := h.service.Create(r.Context(), userID, &req)
	if err != nil {
		h.log.Error("Failed to create assessment", "error", err, "user_id", userID)
		utils.ErrorResponse(w, "Failed to create assessment", http.StatusInternalServerError)
		return
	}

	utils.SuccessResponse(w, analyzed, http.StatusCreated)
}

// ListAssessments returns the user's assessments, newest first
func (h *Handler) ListAssessments(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ErrorResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	list, err := h.service.List(r.Context(), userID)
	if err != nil {
		h.log.Error("Failed to list assessments", "error", err, "user_id", userID)
		utils.ErrorResponse(w, "Failed to get assessments", http.StatusInternalServerError)
		return
	}

	utils.SuccessResponse(w, list, http.StatusOK)
}

// GetAssessment returns one assessment
func (h *Handler) GetAssessment(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ErrorResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		utils.ErrorResponse(w, "Invalid assessment ID", http.StatusBadRequest)
		return
	}

	analyzed, err := h.service.Get(r.Context(), userID, id)
	if err != nil {
		if errors.Is(err, ErrAssessmentNotFound) {
			utils.ErrorResponse(w, "Assessment not found", http.StatusNotFound)
			return
		}
		h.log.Error("Failed to get assessment", "error", err, "assessment_id", id)
		utils.ErrorResponse(w, "Failed to get assessment", http.StatusInternalServerError)
		return
	}

	utils.SuccessResponse(w, analyzed, http.StatusOK)
}
