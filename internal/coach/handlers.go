// internal/coach/handlers.go

package coach

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/imadgeboyega/dating-insights-backend/internal/auth"
	"github.com/imadgeboyega/dating-insights-backend/internal/common/logger"
	"github.com/imadgeboyega/dating-insights-backend/internal/common/utils"
	"github.com/imadgeboyega/dating-insights-backend/internal/insights"
)

// StartersRequest is the payload for conversation starters
type StartersRequest struct {
	Interests []string `json:"interests" validate:"max=20,dive,max=50"`
}

type Handler struct {
	service Service
	log     *logger.Logger
}

func NewHandler(service Service, log *logger.Logger) *Handler {
	return &Handler{service: service, log: log}
}

func RegisterRoutes(router *mux.Router, handler *Handler, authMiddleware *auth.Middleware) {
	api := router.PathPrefix("/api").Subrouter()
	api.Use(authMiddleware.Authenticate)

	api.HandleFunc("/dates/insights", handler.GetInsights).Methods("GET")
	api.HandleFunc("/dates/patterns", handler.GetPatterns).Methods("GET")
	api.HandleFunc("/decisions/evaluate", handler.EvaluateDecision).Methods("POST")
	api.HandleFunc("/suggestions/conversation-starters", handler.ConversationStarters).Methods("POST")
	api.HandleFunc("/suggestions/date-ideas", handler.DateIdeas).Methods("POST")
}

func (h *Handler) GetInsights(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ErrorResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	report, err := h.service.Insights(r.Context(), userID)
	if err != nil {
		h.log.Error("insights failed", "user_id", userID, "error", err)
		utils.ErrorResponse(w, "Failed to generate insights", http.StatusInternalServerError)
		return
	}

	utils.SuccessResponse(w, report, http.StatusOK)
}

func (h *Handler) GetPatterns(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ErrorResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	resp, err := h.service.Patterns(r.Context(), userID)
	if err != nil {
		h.log.Error("patterns failed", "user_id", userID, "error", err)
		utils.ErrorResponse(w, "Failed to analyze patterns", http.StatusInternalServerError)
		return
	}

	utils.SuccessResponse(w, resp, http.StatusOK)
}

func (h *Handler) EvaluateDecision(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ErrorResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var in insights.DecisionInput
	if err := utils.DecodeJSON(r, &in); err != nil {
		utils.ErrorResponse(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if err := utils.ValidateStruct(in); err != nil {
		utils.ErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	decision, err := h.service.EvaluateDecision(r.Context(), userID, in)
	if err != nil {
		h.log.Error("decision failed", "user_id", userID, "error", err)
		utils.ErrorResponse(w, "Failed to evaluate decision", http.StatusInternalServerError)
		return
	}

	utils.SuccessResponse(w, decision, http.StatusOK)
}

func (h *Handler) ConversationStarters(w http.ResponseWriter, r *http.Request) {
	var req StartersRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.ErrorResponse(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		utils.ErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	utils.SuccessResponse(w, map[string][]string{
		"starters": h.service.ConversationStarters(req.Interests),
	}, http.StatusOK)
}

func (h *Handler) DateIdeas(w http.ResponseWriter, r *http.Request) {
	var prefs insights.DatePreferences
	if err := utils.DecodeJSON(r, &prefs); err != nil {
		utils.ErrorResponse(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if err := utils.ValidateStruct(prefs); err != nil {
		utils.ErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	utils.SuccessResponse(w, map[string][]string{
		"ideas": h.service.DateIdeas(prefs),
	}, http.StatusOK)
}
