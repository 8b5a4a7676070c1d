// internal/export/handlers.go

package export

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/imadgeboyega/dating-insights-backend/internal/auth"
	"github.com/imadgeboyega/dating-insights-backend/internal/common/logger"
	"github.com/imadgeboyega/dating-insights-backend/internal/common/utils"
)

// Handler handles export HTTP requests
type Handler struct {
	service Service
	log     *logger.Logger
}

// NewHandler creates a new export handler
func NewHandler(service Service, log *logger.Logger) *Handler {
	return &Handler{service: service, log: log}
}

// RegisterRoutes registers the export routes
func (h *Handler) RegisterRoutes(router *mux.Router, authMiddleware *auth.Middleware) {
	router.Handle("/api/export", authMiddleware.Authenticate(http.HandlerFunc(h.Export))).Methods("POST")
	router.Handle("/api/export/{name}", authMiddleware.Authenticate(http.HandlerFunc(h.Download))).Methods("GET")
	router.Handle("/api/export/{name}", authMiddleware.Authenticate(http.HandlerFunc(h.Discard))).Methods("DELETE")
}

// Export writes the caller's journal and returns where to fetch it
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ErrorResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	result, err := h.service.Export(r.Context(), userID)
	if err != nil {
		h.log.Error("Failed to export journal", "error", err, "user_id", userID)
		utils.ErrorResponse(w, "Failed to export journal", http.StatusInternalServerError)
		return
	}

	utils.SuccessResponse(w, result, http.StatusCreated)
}

// Download streams one of the caller's exports
func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ErrorResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	name := mux.Vars(r)["name"]
	body, err := h.service.Open(r.Context(), userID, name)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidExportName):
			utils.ErrorResponse(w, "Invalid export name", http.StatusBadRequest)
		case errors.Is(err, ErrExportNotFound):
			utils.ErrorResponse(w, "Export not found", http.StatusNotFound)
		default:
			h.log.Error("Failed to open export", "error", err, "user_id", userID)
			utils.ErrorResponse(w, "Failed to read export", http.StatusInternalServerError)
		}
		return
	}
	defer body.Close()

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, body); err != nil {
		h.log.Warn("export download interrupted", "error", err, "user_id", userID)
	}
}

// Discard deletes one of the caller's exports
func (h *Handler) Discard(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ErrorResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if err := h.service.Discard(r.Context(), userID, mux.Vars(r)["name"]); err != nil {
		if errors.Is(err, ErrInvalidExportName) {
			utils.ErrorResponse(w, "Invalid export name", http.StatusBadRequest)
			return
		}
		h.log.Error("Failed to delete export", "error", err, "user_id", userID)
		utils.ErrorResponse(w, "Failed to delete export", http.StatusInternalServerError)
		return
	}

	utils.MessageResponse(w, "Export deleted", http.StatusOK)
}
