package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/krushnaz/teachove-fees/internal/models"
)

func TestSummaryBySchool(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		if r.URL.Path != "/api/v1/schools/school-1/fees/summary" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"totalFees": "13000",
			"totalPaid": "2000",
			"remainingAmount": "11000",
			"students": [
				{"studentId": "s1", "studentName": "Aarav Sharma", "className": "Grade 5",
				 "division": "A", "rollNo": "1", "totalFees": "5000", "paidFees": "2000"}
			]
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	summary, err := client.SummaryBySchool(context.Background(), "school-1")
	if err != nil {
		t.Fatalf("SummaryBySchool failed: %v", err)
	}
	if !summary.Total.Equal(decimal.NewFromInt(13000)) {
		t.Errorf("total = %s, want 13000", summary.Total)
	}
	if len(summary.Students) != 1 {
		t.Fatalf("expected 1 student, got %d", len(summary.Students))
	}
	row := summary.Students[0]
	if row.StudentID != "s1" || !row.PaidFees.Equal(decimal.NewFromInt(2000)) {
		t.Errorf("unexpected row: %+v", row)
	}
	if row.Status() != models.StatusPartiallyPaid {
		t.Errorf("status = %s, want partially paid", row.Status())
	}
}

func TestStudentPayments_EmptyIsNotNil(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/schools/school-1/students/s1/payments" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("classId"); got != "c1" {
			t.Errorf("classId = %q, want c1", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	payments, err := client.StudentPayments(context.Background(), "school-1", "s1", "c1")
	if err != nil {
		t.Fatalf("StudentPayments failed: %v", err)
	}
	if payments == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(payments) != 0 {
		t.Errorf("expected no payments, got %d", len(payments))
	}
}

func TestAddPayment(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/api/v1/schools/school-1/payments" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok-123" {
			t.Errorf("Authorization = %q", got)
		}
		var body map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if body["paymentMode"] != "UPI" || body["studentId"] != "s1" {
			t.Errorf("unexpected body: %v", body)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"paymentId": "p1", "studentId": "s1", "classId": "c1",
			"schoolId": "school-1", "amount": "2000", "paymentMode": "UPI"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, WithToken("tok-123"))
	created, err := client.AddPayment(context.Background(), models.PaymentForm{
		SchoolID:  "school-1",
		StudentID: "s1",
		ClassID:   "c1",
		Amount:    decimal.NewFromInt(2000),
		Mode:      models.ModeUPI,
	})
	if err != nil {
		t.Fatalf("AddPayment failed: %v", err)
	}
	if created.ID != "p1" || !created.Amount.Equal(decimal.NewFromInt(2000)) {
		t.Errorf("unexpected created payment: %+v", created)
	}
}

func TestAddPayment_InvalidFormNeverSends(t *testing.T) {
	var hits int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.AddPayment(context.Background(), models.PaymentForm{
		SchoolID:  "school-1",
		StudentID: "s1",
		ClassID:   "c1",
		Amount:    decimal.NewFromInt(-5),
		Mode:      models.ModeCash,
	})
	if !errors.Is(err, models.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if hits != 0 {
		t.Errorf("server must not be hit for invalid forms, got %d requests", hits)
	}
}

func TestDeletePayments(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("expected DELETE, got %s", r.Method)
		}
		var body struct {
			PaymentIDs []string `json:"paymentIds"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if len(body.PaymentIDs) != 2 || body.PaymentIDs[0] != "p1" || body.PaymentIDs[1] != "p2" {
			t.Errorf("unexpected ids: %v", body.PaymentIDs)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message": "deleted 2 payment(s)"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	if err := client.DeletePayments(context.Background(), "school-1", []string{"p1", "p2"}); err != nil {
		t.Fatalf("DeletePayments failed: %v", err)
	}
}

func TestDeletePayments_RejectsEmptyList(t *testing.T) {
	client := NewClient("http://unused.invalid")
	if err := client.DeletePayments(context.Background(), "school-1", nil); err == nil {
		t.Fatal("expected error for empty id list")
	}
}

func TestErrorEnvelope(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{"error field", http.StatusNotFound, `{"error": "payment not found"}`, "payment not found"},
		{"message field", http.StatusBadRequest, `{"message": "classId is required"}`, "classId is required"},
		{"no body", http.StatusInternalServerError, ``, ""},
		{"non-json body", http.StatusBadGateway, `upstream down`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := NewClient(server.URL)
			_, err := client.SummaryBySchool(context.Background(), "school-1")
			var apiErr *Error
			if !errors.As(err, &apiErr) {
				t.Fatalf("expected *Error, got %v", err)
			}
			if apiErr.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", apiErr.StatusCode, tt.status)
			}
			if apiErr.Message != tt.wantMsg {
				t.Errorf("message = %q, want %q", apiErr.Message, tt.wantMsg)
			}
		})
	}
}

func TestClassReport_StreamsBody(t *testing.T) {
	payload := []byte("PK\x03\x04 spreadsheet bytes")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/api/v1/schools/school-1/classes/c1/payments/report" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/octet-stream")
		w.Write(payload)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	var buf bytes.Buffer
	if err := client.ClassReport(context.Background(), "school-1", "c1", &buf); err != nil {
		t.Fatalf("ClassReport failed: %v", err)
	}
	if !bytes.Equal(buf.Bytes(), payload) {
		t.Errorf("report bytes differ: got %q", buf.Bytes())
	}
}

func TestClassesBySchool(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/schools/school-1/classes" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"classes": [
			{"classId": "c1", "schoolId": "school-1", "className": "Grade 5", "division": "A"},
			{"classId": "c2", "schoolId": "school-1", "className": "Grade 5", "division": "B"}
		]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	classes, err := client.ClassesBySchool(context.Background(), "school-1")
	if err != nil {
		t.Fatalf("ClassesBySchool failed: %v", err)
	}
	if len(classes) != 2 {
		t.Fatalf("expected 2 classes, got %d", len(classes))
	}
	if classes[1].ID != "c2" || classes[1].Division != "B" {
		t.Errorf("unexpected class: %+v", classes[1])
	}
}
