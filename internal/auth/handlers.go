// internal/auth/handlers.go

package auth

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/imadgeboyega/dating-insights-backend/internal/common/logger"
	"github.com/imadgeboyega/dating-insights-backend/internal/common/utils"
)

// Handler holds dependencies for auth endpoints
type Handler struct {
	service      Service
	log          *logger.Logger
	secureCookie bool
}

// NewHandler creates a new auth handler. secureCookie should be false only
// in local development over plain HTTP.
func NewHandler(service Service, log *logger.Logger, secureCookie bool) *Handler {
	return &Handler{
		service:      service,
		log:          log,
		secureCookie: secureCookie,
	}
}

// RegisterRoutes registers all auth routes with the router
func (h *Handler) RegisterRoutes(router *mux.Router, authMiddleware *Middleware) {
	users := router.PathPrefix("/api/users").Subrouter()

	// Public routes
	users.HandleFunc("", h.Register).Methods("POST")
	users.HandleFunc("/login", h.Login).Methods("POST")
	users.HandleFunc("/google", h.GoogleLogin).Methods("POST")

	// Protected routes
	users.Handle("/logout", authMiddleware.Authenticate(http.HandlerFunc(h.Logout))).Methods("POST")
}

// Register handles account creation
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.ErrorResponse(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		utils.ErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	resp, err := h.service.Register(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmailAlreadyExists):
			utils.ErrorResponse(w, "User already exists", http.StatusConflict)
		default:
			h.log.Error("Failed to create account", "error", err)
			utils.ErrorResponse(w, "Failed to create account", http.StatusInternalServerError)
		}
		return
	}

	h.setSessionCookie(w, resp)
	utils.SuccessResponse(w, resp, http.StatusCreated)
}

// Login handles email/password authentication
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.ErrorResponse(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		utils.ErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	resp, err := h.service.Login(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			utils.ErrorResponse(w, "Invalid email or password", http.StatusUnauthorized)
		case errors.Is(err, ErrTooManyAttempts):
			utils.ErrorResponse(w, "Too many failed attempts. Please try again later.", http.StatusTooManyRequests)
		default:
			h.log.Error("Login failed", "error", err)
			utils.ErrorResponse(w, "Login failed", http.StatusInternalServerError)
		}
		return
	}

	h.setSessionCookie(w, resp)
	utils.SuccessResponse(w, resp, http.StatusOK)
}

// GoogleLogin handles sign-in with a Google ID token
func (h *Handler) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	var req GoogleLoginRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.ErrorResponse(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		utils.ErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	resp, err := h.service.GoogleLogin(r.Context(), &req)
	if err != nil {
		if errors.Is(err, ErrGoogleAuthFailed) {
			utils.ErrorResponse(w, "Google authentication failed", http.StatusUnauthorized)
			return
		}
		h.log.Error("Google login failed", "error", err)
		utils.ErrorResponse(w, "Login failed", http.StatusInternalServerError)
		return
	}

	h.setSessionCookie(w, resp)
	utils.SuccessResponse(w, resp, http.StatusOK)
}

// Logout revokes the current token and clears the cookie
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Logout(r.Context(), getTokenFromContext(r.Context())); err != nil && !errors.Is(err, ErrInvalidToken) {
		h.log.Error("Logout failed", "error", err)
		utils.ErrorResponse(w, "Logout failed", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteStrictMode,
	})
	utils.MessageResponse(w, "Logged out successfully", http.StatusOK)
}

func (h *Handler) setSessionCookie(w http.ResponseWriter, resp *AuthResponse) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    resp.Token,
		Path:     "/",
		Expires:  resp.ExpiresAt,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteStrictMode,
	})
}
