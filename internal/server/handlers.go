package server

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/krushnaz/teachove-fees/internal/models"
	"github.com/krushnaz/teachove-fees/internal/storage"
)

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	schoolID := chi.URLParam(r, "schoolId")

	summary, err := s.store.SummaryBySchool(r.Context(), schoolID)
	if err != nil {
		slog.Error("summary failed", "school_id", schoolID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to build summary")
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleClasses(w http.ResponseWriter, r *http.Request) {
	schoolID := chi.URLParam(r, "schoolId")

	classes, err := s.store.ClassesBySchool(r.Context(), schoolID)
	if err != nil {
		slog.Error("list classes failed", "school_id", schoolID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list classes")
		return
	}
	if classes == nil {
		classes = []models.Classroom{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"classes": classes})
}

func (s *Server) handleStudentPayments(w http.ResponseWriter, r *http.Request) {
	schoolID := chi.URLParam(r, "schoolId")
	studentID := chi.URLParam(r, "studentId")
	classID := r.URL.Query().Get("classId")
	if classID == "" {
		writeError(w, http.StatusBadRequest, "classId query parameter required")
		return
	}

	payments, err := s.store.PaymentsByStudent(r.Context(), schoolID, studentID, classID)
	if err != nil {
		slog.Error("list payments failed", "student_id", studentID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list payments")
		return
	}
	writeJSON(w, http.StatusOK, payments)
}

func (s *Server) handleAddPayment(w http.ResponseWriter, r *http.Request) {
	schoolID := chi.URLParam(r, "schoolId")

	var form models.PaymentForm
	if err := decodeJSON(r, &form); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if form.SchoolID == "" {
		form.SchoolID = schoolID
	}
	if form.SchoolID != schoolID {
		writeError(w, http.StatusBadRequest, "schoolId mismatch")
		return
	}
	if err := models.Validate(form); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	payment := &models.Payment{
		SchoolID:      form.SchoolID,
		StudentID:     form.StudentID,
		ClassID:       form.ClassID,
		Amount:        form.Amount,
		Mode:          form.Mode,
		TransactionID: form.TransactionID,
		Remarks:       form.Remarks,
		Date:          form.Date,
	}
	if err := s.store.CreatePayment(r.Context(), payment); err != nil {
		slog.Error("create payment failed", "student_id", form.StudentID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create payment")
		return
	}
	writeJSON(w, http.StatusCreated, payment)
}

func (s *Server) handleUpdatePayment(w http.ResponseWriter, r *http.Request) {
	schoolID := chi.URLParam(r, "schoolId")
	paymentID := chi.URLParam(r, "paymentId")

	var update models.PaymentUpdate
	if err := decodeJSON(r, &update); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := models.Validate(update); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := s.store.UpdatePayment(r.Context(), schoolID, paymentID, update)
	if errors.Is(err, storage.ErrNotFound) {
		writeError(w, http.StatusNotFound, "payment not found")
		return
	}
	if err != nil {
		slog.Error("update payment failed", "payment_id", paymentID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update payment")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeletePayments(w http.ResponseWriter, r *http.Request) {
	schoolID := chi.URLParam(r, "schoolId")

	var body struct {
		PaymentIDs []string `json:"paymentIds"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(body.PaymentIDs) == 0 {
		writeError(w, http.StatusBadRequest, "paymentIds required")
		return
	}

	n, err := s.store.DeletePayments(r.Context(), schoolID, body.PaymentIDs)
	if err != nil {
		slog.Error("delete payments failed", "school_id", schoolID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete payments")
		return
	}
	if n == 0 {
		writeError(w, http.StatusNotFound, "payments not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("deleted %d payment(s)", n),
	})
}
