package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/krushnaz/teachove-fees/internal/models"
)

// SummaryBySchool fetches the school-wide fee summary: aggregate totals plus
// one row per student.
func (c *Client) SummaryBySchool(ctx context.Context, schoolID string) (*models.FeeSummary, error) {
	var summary models.FeeSummary
	path := fmt.Sprintf("/api/v1/schools/%s/fees/summary", url.PathEscape(schoolID))
	if err := c.do(ctx, http.MethodGet, path, nil, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// StudentPayments fetches a student's payment list. Returns an empty slice
// when no payments exist, never nil.
func (c *Client) StudentPayments(ctx context.Context, schoolID, studentID, classID string) ([]models.Payment, error) {
	path := fmt.Sprintf("/api/v1/schools/%s/students/%s/payments?classId=%s",
		url.PathEscape(schoolID), url.PathEscape(studentID), url.QueryEscape(classID))
	var payments []models.Payment
	if err := c.do(ctx, http.MethodGet, path, nil, &payments); err != nil {
		return nil, err
	}
	if payments == nil {
		payments = []models.Payment{}
	}
	return payments, nil
}

// AddPayment records a new payment and returns it with its assigned id.
// The form is validated before any request is sent.
func (c *Client) AddPayment(ctx context.Context, form models.PaymentForm) (*models.Payment, error) {
	if err := models.Validate(form); err != nil {
		return nil, err
	}
	var created models.Payment
	path := fmt.Sprintf("/api/v1/schools/%s/payments", url.PathEscape(form.SchoolID))
	if err := c.do(ctx, http.MethodPost, path, form, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdatePayment overwrites the editable fields of exactly one payment and
// returns the updated record. The API does not return a delta; the caller
// computes it from the previously fetched amount.
func (c *Client) UpdatePayment(ctx context.Context, schoolID, paymentID string, update models.PaymentUpdate) (*models.Payment, error) {
	if err := models.Validate(update); err != nil {
		return nil, err
	}
	var updated models.Payment
	path := fmt.Sprintf("/api/v1/schools/%s/payments/%s", url.PathEscape(schoolID), url.PathEscape(paymentID))
	if err := c.do(ctx, http.MethodPut, path, update, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeletePayments bulk-deletes the given payment ids. Atomicity across ids is
// a backend concern; any non-success response is treated as total failure.
func (c *Client) DeletePayments(ctx context.Context, schoolID string, paymentIDs []string) error {
	if len(paymentIDs) == 0 {
		return fmt.Errorf("api: no payment ids to delete")
	}
	body := struct {
		PaymentIDs []string `json:"paymentIds"`
	}{PaymentIDs: paymentIDs}
	path := fmt.Sprintf("/api/v1/schools/%s/payments", url.PathEscape(schoolID))
	return c.do(ctx, http.MethodDelete, path, body, nil)
}

// ClassReport streams the class-level payment report (opaque binary,
// typically a spreadsheet) to w.
func (c *Client) ClassReport(ctx context.Context, schoolID, classID string, w io.Writer) error {
	path := fmt.Sprintf("/api/v1/schools/%s/classes/%s/payments/report",
		url.PathEscape(schoolID), url.PathEscape(classID))
	return c.download(ctx, http.MethodPost, path, w)
}

// StudentReport streams the student-level payment report (opaque binary,
// typically a PDF) to w.
func (c *Client) StudentReport(ctx context.Context, schoolID, studentID string, w io.Writer) error {
	path := fmt.Sprintf("/api/v1/schools/%s/students/%s/payments/report",
		url.PathEscape(schoolID), url.PathEscape(studentID))
	return c.download(ctx, http.MethodPost, path, w)
}
