package journal

import (
	"github.com/gorilla/mux"

	"github.com/imadgeboyega/dating-insights-backend/internal/auth"
)

// IDPattern restricts {id} to UUIDs so fixed paths such as /api/dates/insights
// can share the prefix.
const IDPattern = "{id:[0-9a-fA-F-]{36}}"

func RegisterRoutes(router *mux.Router, handler *Handler, authMiddleware *auth.Middleware) {
	dates := router.PathPrefix("/api/dates").Subrouter()
	dates.Use(authMiddleware.Authenticate)

	dates.HandleFunc("", handler.CreateDate).Methods("POST")
	dates.HandleFunc("", handler.ListDates).Methods("GET")
	dates.HandleFunc("/"+IDPattern, handler.GetDate).Methods("GET")
	dates.HandleFunc("/"+IDPattern, handler.UpdateDate).Methods("PUT")
	dates.HandleFunc("/"+IDPattern, handler.DeleteDate).Methods("DELETE")

	contacts := router.PathPrefix("/api/contacts").Subrouter()
	contacts.Use(authMiddleware.Authenticate)

	contacts.HandleFunc("", handler.CreateContact).Methods("POST")
	contacts.HandleFunc("", handler.ListContacts).Methods("GET")
	contacts.HandleFunc("/"+IDPattern, handler.GetContact).Methods("GET")
	contacts.HandleFunc("/"+IDPattern, handler.UpdateContact).Methods("PUT")
	contacts.HandleFunc("/"+IDPattern, handler.DeleteContact).Methods("DELETE")
}
