// Package server implements the local development stub of the fee backend.
// It exists so the client and ledger can run end to end without the real
// school-management backend; it is not a production service.
package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/krushnaz/teachove-fees/internal/auth"
	"github.com/krushnaz/teachove-fees/internal/middleware"
	"github.com/krushnaz/teachove-fees/internal/storage"
)

// Server serves the stub fee API over a storage.Store.
type Server struct {
	store  storage.Store
	tokens *auth.TokenManager
}

// New creates a stub server. tokens may be nil, in which case all routes are
// open (the common local-dev setup).
func New(store storage.Store, tokens *auth.TokenManager) *Server {
	return &Server{store: store, tokens: tokens}
}

// Router builds the HTTP routing table.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logging)
	r.Use(middleware.CORS)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1/schools/{schoolId}", func(r chi.Router) {
		if s.tokens != nil {
			r.Use(middleware.RequireAuth(s.tokens))
		}
		r.Get("/fees/summary", s.handleSummary)
		r.Get("/classes", s.handleClasses)
		r.Get("/students/{studentId}/payments", s.handleStudentPayments)
		r.Post("/payments", s.handleAddPayment)
		r.Put("/payments/{paymentId}", s.handleUpdatePayment)
		r.Delete("/payments", s.handleDeletePayments)
		r.Post("/classes/{classId}/payments/report", s.handleClassReport)
		r.Post("/students/{studentId}/payments/report", s.handleStudentReport)
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func decodeJSON(r *http.Request, v interface{}) error {
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
