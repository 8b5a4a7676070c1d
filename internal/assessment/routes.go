// internal/assessment/routes.go

package assessment

import (
	"github.com/gorilla/mux"

	"github.com/imadgeboyega/dating-insights-backend/internal/auth"
)

// RegisterRoutes registers all assessment routes
func RegisterRoutes(router *mux.Router, handler *Handler, authMiddleware *auth.Middleware) {
	api := router.PathPrefix("/api/assessments").Subrouter()
	api.Use(authMiddleware.Authenticate)

	api.HandleFunc("", handler.CreateAssessment).Methods("POST")
	api.HandleFunc("", handler.ListAssessments).Methods("GET")
	api.HandleFunc("/{id}", handler.GetAssessment).Methods("GET")
}
