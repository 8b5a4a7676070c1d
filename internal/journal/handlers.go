// internal/journal/handlers.go

package journal

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/imadgeboyega/dating-insights-backend/internal/auth"
	"github.com/imadgeboyega/dating-insights-backend/internal/common/logger"
	"github.com/imadgeboyega/dating-insights-backend/internal/common/utils"
	"github.com/imadgeboyega/dating-insights-backend/internal/insights"
)

type Handler struct {
	service Service
	log     *logger.Logger
}

func NewHandler(service Service, log *logger.Logger) *Handler {
	return &Handler{service: service, log: log}
}

// Dates

func (h *Handler) CreateDate(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ErrorResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req CreateDateRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.ErrorResponse(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		utils.ErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	date, err := h.service.CreateDate(r.Context(), userID, &req)
	if err != nil {
		h.respondError(w, err, "Failed to log date")
		return
	}

	utils.SuccessResponse(w, date, http.StatusCreated)
}

func (h *Handler) ListDates(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ErrorResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	q := r.URL.Query()
	filter := DateFilter{Status: q.Get("status")}
	switch filter.Status {
	case "", insights.StatusUpcoming, insights.StatusCompleted, insights.StatusCancelled:
	default:
		utils.ErrorResponse(w, "Invalid status filter", http.StatusBadRequest)
		return
	}

	var err error
	if filter.StartDate, err = parseTimeParam(q.Get("startDate")); err != nil {
		utils.ErrorResponse(w, "Invalid startDate", http.StatusBadRequest)
		return
	}
	if filter.EndDate, err = parseTimeParam(q.Get("endDate")); err != nil {
		utils.ErrorResponse(w, "Invalid endDate", http.StatusBadRequest)
		return
	}

	dates, err := h.service.ListDates(r.Context(), userID, filter)
	if err != nil {
		h.respondError(w, err, "Failed to get dates")
		return
	}

	utils.SuccessResponse(w, dates, http.StatusOK)
}

func (h *Handler) GetDate(w http.ResponseWriter, r *http.Request) {
	userID, id, ok := h.ids(w, r)
	if !ok {
		return
	}

	date, err := h.service.GetDate(r.Context(), userID, id)
	if err != nil {
		h.respondError(w, err, "Failed to get date")
		return
	}

	utils.SuccessResponse(w, date, http.StatusOK)
}

func (h *Handler) UpdateDate(w http.ResponseWriter, r *http.Request) {
	userID, id, ok := h.ids(w, r)
	if !ok {
		return
	}

	var req UpdateDateRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.ErrorResponse(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		utils.ErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	date, err := h.service.UpdateDate(r.Context(), userID, id, &req)
	if err != nil {
		h.respondError(w, err, "Failed to update date")
		return
	}

	utils.SuccessResponse(w, date, http.StatusOK)
}

func (h *Handler) DeleteDate(w http.ResponseWriter, r *http.Request) {
	userID, id, ok := h.ids(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteDate(r.Context(), userID, id); err != nil {
		h.respondError(w, err, "Failed to delete date")
		return
	}

	utils.MessageResponse(w, "Date removed", http.StatusOK)
}

// Contacts

func (h *Handler) CreateContact(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ErrorResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req CreateContactRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.ErrorResponse(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		utils.ErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	contact, err := h.service.CreateContact(r.Context(), userID, &req)
	if err != nil {
		h.respondError(w, err, "Failed to create contact")
		return
	}

	utils.SuccessResponse(w, contact, http.StatusCreated)
}

func (h *Handler) ListContacts(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ErrorResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	q := r.URL.Query()
	filter := ContactFilter{
		Status: q.Get("status"),
		Tag:    q.Get("tag"),
		Search: q.Get("search"),
	}

	contacts, err := h.service.ListContacts(r.Context(), userID, filter)
	if err != nil {
		h.respondError(w, err, "Failed to get contacts")
		return
	}

	utils.SuccessResponse(w, contacts, http.StatusOK)
}

func (h *Handler) GetContact(w http.ResponseWriter, r *http.Request) {
	userID, id, ok := h.ids(w, r)
	if !ok {
		return
	}

	contact, err := h.service.GetContact(r.Context(), userID, id)
	if err != nil {
		h.respondError(w, err, "Failed to get contact")
		return
	}

	utils.SuccessResponse(w, contact, http.StatusOK)
}

func (h *Handler) UpdateContact(w http.ResponseWriter, r *http.Request) {
	userID, id, ok := h.ids(w, r)
	if !ok {
		return
	}

	var req UpdateContactRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.ErrorResponse(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		utils.ErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	contact, err := h.service.UpdateContact(r.Context(), userID, id, &req)
	if err != nil {
		h.respondError(w, err, "Failed to update contact")
		return
	}

	utils.SuccessResponse(w, contact, http.StatusOK)
}

func (h *Handler) DeleteContact(w http.ResponseWriter, r *http.Request) {
	userID, id, ok := h.ids(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteContact(r.Context(), userID, id); err != nil {
		h.respondError(w, err, "Failed to delete contact")
		return
	}

	utils.MessageResponse(w, "Contact removed", http.StatusOK)
}

// Helpers

func (h *Handler) ids(w http.ResponseWriter, r *http.Request) (uuid.UUID, uuid.UUID, bool) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ErrorResponse(w, "Unauthorized", http.StatusUnauthorized)
		return uuid.Nil, uuid.Nil, false
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		utils.ErrorResponse(w, "Invalid ID", http.StatusBadRequest)
		return uuid.Nil, uuid.Nil, false
	}
	return userID, id, true
}

func (h *Handler) respondError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, ErrDateNotFound):
		utils.ErrorResponse(w, "Date not found", http.StatusNotFound)
	case errors.Is(err, ErrContactNotFound):
		utils.ErrorResponse(w, "Contact not found", http.StatusNotFound)
	case errors.Is(err, ErrContactRequired):
		utils.ErrorResponse(w, "Contact name or ID is required", http.StatusBadRequest)
	case errors.Is(err, ErrContactExists):
		utils.ErrorResponse(w, "Contact with this name already exists", http.StatusConflict)
	case errors.Is(err, ErrContactHasDates):
		utils.ErrorResponse(w, "Cannot delete contact with associated dates. Delete the dates first or update the contact instead.", http.StatusConflict)
	default:
		h.log.Error(fallback, "error", err)
		utils.ErrorResponse(w, fallback, http.StatusInternalServerError)
	}
}

// parseTimeParam accepts RFC 3339 timestamps or plain YYYY-MM-DD dates.
func parseTimeParam(v string) (*time.Time, error) {
	if v == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
