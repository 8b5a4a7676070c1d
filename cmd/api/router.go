// cmd/api/router.go

package main

import (
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/imadgeboyega/dating-insights-backend/internal/assessment"
	"github.com/imadgeboyega/dating-insights-backend/internal/auth"
	"github.com/imadgeboyega/dating-insights-backend/internal/coach"
	"github.com/imadgeboyega/dating-insights-backend/internal/common/logger"
	"github.com/imadgeboyega/dating-insights-backend/internal/common/middleware"
	"github.com/imadgeboyega/dating-insights-backend/internal/config"
	"github.com/imadgeboyega/dating-insights-backend/internal/export"
	"github.com/imadgeboyega/dating-insights-backend/internal/journal"
	"github.com/imadgeboyega/dating-insights-backend/internal/profile"
)

// handlers are the wired HTTP handlers the router mounts
type handlers struct {
	health         http.HandlerFunc
	authMiddleware *auth.Middleware
	auth           *auth.Handler
	profile        *profile.Handler
	journal        *journal.Handler
	coach          *coach.Handler
	assessment     *assessment.Handler
	export         *export.Handler
}

// newRouter mounts every route and wraps the result in the shared middleware
func newRouter(cfg *config.Config, log *logger.Logger, h handlers) http.Handler {
	router := mux.NewRouter()
	router.Use(middleware.RequestLogger(log), middleware.Metrics)

	router.HandleFunc("/health", h.health).Methods("GET")
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	h.auth.RegisterRoutes(router, h.authMiddleware)
	profile.RegisterRoutes(router, h.profile, h.authMiddleware)
	journal.RegisterRoutes(router, h.journal, h.authMiddleware)
	coach.RegisterRoutes(router, h.coach, h.authMiddleware)
	assessment.RegisterRoutes(router, h.assessment, h.authMiddleware)
	h.export.RegisterRoutes(router, h.authMiddleware)

	// Preflight requests never match a route, so CORS and the chi
	// middleware wrap the router instead of being registered on it.
	var handler http.Handler = router
	handler = middleware.CORS(cfg.AllowedOrigins)(handler)
	handler = chimw.Timeout(cfg.RequestTimeout)(handler)
	handler = chimw.Recoverer(handler)
	handler = chimw.RealIP(handler)
	handler = chimw.RequestID(handler)
	return handler
}
