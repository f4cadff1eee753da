package server

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/krushnaz/teachove-fees/internal/models"
)

// Report endpoints emit generated CSV as an opaque attachment. The real
// backend produces spreadsheets and PDFs; clients treat the body as binary
// either way.

func (s *Server) handleClassReport(w http.ResponseWriter, r *http.Request) {
	schoolID := chi.URLParam(r, "schoolId")
	classID := chi.URLParam(r, "classId")

	payments, err := s.store.PaymentsByClass(r.Context(), schoolID, classID)
	if err != nil {
		slog.Error("class report failed", "class_id", classID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to build report")
		return
	}
	sendReport(w, fmt.Sprintf("class-%s-payments.csv", classID), payments)
}

func (s *Server) handleStudentReport(w http.ResponseWriter, r *http.Request) {
	schoolID := chi.URLParam(r, "schoolId")
	studentID := chi.URLParam(r, "studentId")
	classID := r.URL.Query().Get("classId")

	var (
		payments []models.Payment
		err      error
	)
	if classID != "" {
		payments, err = s.store.PaymentsByStudent(r.Context(), schoolID, studentID, classID)
	} else {
		payments, err = s.allStudentPayments(r, schoolID, studentID)
	}
	if err != nil {
		slog.Error("student report failed", "student_id", studentID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to build report")
		return
	}
	sendReport(w, fmt.Sprintf("student-%s-payments.csv", studentID), payments)
}

// allStudentPayments collects a student's payments across every classroom,
// for reports requested without a classId.
func (s *Server) allStudentPayments(r *http.Request, schoolID, studentID string) ([]models.Payment, error) {
	classes, err := s.store.ClassesBySchool(r.Context(), schoolID)
	if err != nil {
		return nil, err
	}
	var payments []models.Payment
	for _, c := range classes {
		p, err := s.store.PaymentsByStudent(r.Context(), schoolID, studentID, c.ID)
		if err != nil {
			return nil, err
		}
		payments = append(payments, p...)
	}
	return payments, nil
}

func sendReport(w http.ResponseWriter, filename string, payments []models.Payment) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)
	cw.Write([]string{"paymentId", "studentId", "classId", "amount", "mode", "transactionId", "remarks", "date"})
	for _, p := range payments {
		cw.Write([]string{
			p.ID, p.StudentID, p.ClassID, p.Amount.String(), string(p.Mode),
			p.TransactionID, p.Remarks, p.Date.Format(time.RFC3339),
		})
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to write report")
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
