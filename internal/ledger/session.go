package ledger

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/krushnaz/teachove-fees/internal/models"
)

// Session is one open payment dialog for a single student. It holds the
// payment list fetched when the dialog opened and the operator's selection,
// and carries the generation token that invalidates late responses.
//
// A Session is not safe for concurrent use; one dialog has one operator.
type Session struct {
	ledger    *Ledger
	studentID string
	classID   string
	gen       uint64
	payments  []models.Payment
	selected  map[string]bool
	closed    bool
}

// OpenPayments fetches a student's payment history and opens a dialog
// session over it. Re-opening without any mutation yields an identical list;
// there is no retry transition other than re-opening, which re-fetches from
// scratch.
func (l *Ledger) OpenPayments(ctx context.Context, studentID string) (*Session, error) {
	l.mu.Lock()
	if !l.loaded {
		l.mu.Unlock()
		return nil, ErrNotLoaded
	}
	row, ok := l.index[studentID]
	if !ok {
		l.mu.Unlock()
		return nil, ErrUnknownStudent
	}
	if row.ClassID == "" {
		l.mu.Unlock()
		return nil, ErrClassUnresolved
	}
	classID := row.ClassID
	gen := l.gen
	l.mu.Unlock()

	payments, err := l.fees.StudentPayments(ctx, l.schoolID, studentID, classID)
	if err != nil {
		l.notifyError("Failed to load payments")
		return nil, fmt.Errorf("load payments: %w", err)
	}

	return &Session{
		ledger:    l,
		studentID: studentID,
		classID:   classID,
		gen:       gen,
		payments:  payments,
		selected:  make(map[string]bool),
	}, nil
}

// Payments returns a snapshot of the session's payment list.
func (s *Session) Payments() []models.Payment {
	out := make([]models.Payment, len(s.payments))
	copy(out, s.payments)
	return out
}

// Select marks one installment. Returns ErrUnknownPayment for ids not in the
// session's list.
func (s *Session) Select(paymentID string) error {
	if s.find(paymentID) < 0 {
		return ErrUnknownPayment
	}
	s.selected[paymentID] = true
	return nil
}

// Deselect unmarks one installment.
func (s *Session) Deselect(paymentID string) {
	delete(s.selected, paymentID)
}

// SelectAll marks every installment in the session.
func (s *Session) SelectAll() {
	for _, p := range s.payments {
		s.selected[p.ID] = true
	}
}

// ClearSelection unmarks everything.
func (s *Session) ClearSelection() {
	s.selected = make(map[string]bool)
}

// Selected returns the selected payments in list order.
func (s *Session) Selected() []models.Payment {
	var out []models.Payment
	for _, p := range s.payments {
		if s.selected[p.ID] {
			out = append(out, p)
		}
	}
	return out
}

// Add records a new payment from within the dialog. The optimistic patch is
// dropped if the dialog closed while the request was in flight.
func (s *Session) Add(ctx context.Context, in PaymentInput) error {
	if err := s.guard(); err != nil {
		return err
	}
	if err := s.ledger.AddPayment(ctx, s.studentID, in); err != nil {
		return err
	}
	// Refresh the dialog list so a follow-up edit/delete sees the new
	// installment.
	payments, err := s.ledger.fees.StudentPayments(ctx, s.ledger.schoolID, s.studentID, s.classID)
	if err != nil {
		slog.Warn("payment list refresh failed after add", "student_id", s.studentID, "error", err)
		return nil
	}
	s.payments = payments
	return nil
}

// Edit overwrites the single selected installment with the form values and
// applies delta = newAmount - oldAmount to the row and totals, sign-correct
// in both directions. Rejected before any request when no installment (or
// more than one) is selected.
func (s *Session) Edit(ctx context.Context, in PaymentInput) error {
	if err := s.guard(); err != nil {
		return err
	}
	selected := s.Selected()
	switch {
	case len(selected) == 0:
		return ErrNoSelection
	case len(selected) > 1:
		return ErrMultipleSelected
	}
	old := selected[0]

	update := models.PaymentUpdate{
		Amount:        in.Amount,
		Mode:          in.Mode,
		TransactionID: in.TransactionID,
		Remarks:       in.Remarks,
		Date:          in.Date,
	}
	if err := models.Validate(update); err != nil {
		return err
	}

	updated, err := s.ledger.fees.UpdatePayment(ctx, s.ledger.schoolID, old.ID, update)
	if err != nil {
		s.ledger.notifyError("Failed to update payment")
		return fmt.Errorf("update payment: %w", err)
	}

	delta := updated.Amount.Sub(old.Amount)
	if !s.ledger.applyDelta(s.studentID, delta, s.gen) {
		slog.Warn("discarding late edit-payment response", "student_id", s.studentID, "payment_id", old.ID)
		return ErrStaleSession
	}
	if i := s.find(old.ID); i >= 0 {
		s.payments[i] = *updated
	}
	s.ledger.notifySuccess("Payment updated")
	s.ledger.maybeReconcile(ctx)
	return nil
}

// Delete bulk-deletes the selected installments and subtracts the sum of
// their amounts from the row and totals. Rejected before any request when
// nothing is selected. Any non-success response leaves local state untouched.
func (s *Session) Delete(ctx context.Context) error {
	if err := s.guard(); err != nil {
		return err
	}
	selected := s.Selected()
	if len(selected) == 0 {
		return ErrNoSelection
	}

	ids := make([]string, len(selected))
	sum := decimal.Zero
	for i, p := range selected {
		ids[i] = p.ID
		sum = sum.Add(p.Amount)
	}

	if err := s.ledger.fees.DeletePayments(ctx, s.ledger.schoolID, ids); err != nil {
		s.ledger.notifyError("Failed to delete payments")
		return fmt.Errorf("delete payments: %w", err)
	}

	if !s.ledger.applyDelta(s.studentID, sum.Neg(), s.gen) {
		slog.Warn("discarding late delete-payments response", "student_id", s.studentID, "count", len(ids))
		return ErrStaleSession
	}

	remaining := s.payments[:0]
	for _, p := range s.payments {
		if !s.selected[p.ID] {
			remaining = append(remaining, p)
		}
	}
	s.payments = remaining
	s.ClearSelection()
	s.ledger.notifySuccess("Payments deleted")
	s.ledger.maybeReconcile(ctx)
	return nil
}

// Close ends the dialog. Any mutation still in flight has its patch
// discarded when it completes.
func (s *Session) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.ledger.InvalidatePending()
}

// guard rejects operations on a closed or superseded session before any
// request is sent.
func (s *Session) guard() error {
	if s.closed {
		return ErrStaleSession
	}
	s.ledger.mu.Lock()
	defer s.ledger.mu.Unlock()
	if s.gen != s.ledger.gen {
		return ErrStaleSession
	}
	return nil
}

func (s *Session) find(paymentID string) int {
	for i, p := range s.payments {
		if p.ID == paymentID {
			return i
		}
	}
	return -1
}
