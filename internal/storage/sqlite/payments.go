package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/krushnaz/teachove-fees/internal/models"
	"github.com/krushnaz/teachove-fees/internal/storage"
)

const paymentColumns = "id, school_id, student_id, class_id, amount, mode, transaction_id, remarks, date"

// CreatePayment persists a payment, assigning id and date when unset.
func (s *SQLiteStore) CreatePayment(ctx context.Context, p *models.Payment) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.Date.IsZero() {
		p.Date = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO payments ("+paymentColumns+", created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		p.ID, p.SchoolID, p.StudentID, p.ClassID, p.Amount.String(), string(p.Mode),
		p.TransactionID, p.Remarks, p.Date.Format(time.RFC3339), time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert payment: %w", err)
	}
	return nil
}

// PaymentsByStudent lists one student's payments, newest first. The classId
// filter mirrors the API contract; payments are keyed by classId.
func (s *SQLiteStore) PaymentsByStudent(ctx context.Context, schoolID, studentID, classID string) ([]models.Payment, error) {
	return s.queryPayments(ctx,
		"SELECT "+paymentColumns+" FROM payments WHERE school_id = ? AND student_id = ? AND class_id = ? ORDER BY date DESC, created_at DESC",
		schoolID, studentID, classID,
	)
}

// PaymentsByClass lists all payments recorded for a classroom, newest first.
func (s *SQLiteStore) PaymentsByClass(ctx context.Context, schoolID, classID string) ([]models.Payment, error) {
	return s.queryPayments(ctx,
		"SELECT "+paymentColumns+" FROM payments WHERE school_id = ? AND class_id = ? ORDER BY date DESC, created_at DESC",
		schoolID, classID,
	)
}

func (s *SQLiteStore) queryPayments(ctx context.Context, query string, args ...interface{}) ([]models.Payment, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get payments: %w", err)
	}
	defer rows.Close()

	payments := []models.Payment{}
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payments: %w", err)
	}
	return payments, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPayment(r rowScanner) (*models.Payment, error) {
	var (
		p            models.Payment
		amount, date string
	)
	if err := r.Scan(&p.ID, &p.SchoolID, &p.StudentID, &p.ClassID, &amount,
		&p.Mode, &p.TransactionID, &p.Remarks, &date); err != nil {
		if err == sql.ErrNoRows {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan payment: %w", err)
	}
	var err error
	p.Amount, err = decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("failed to parse amount: %w", err)
	}
	p.Date, err = time.Parse(time.RFC3339, date)
	if err != nil {
		return nil, fmt.Errorf("failed to parse date: %w", err)
	}
	return &p, nil
}

// UpdatePayment overwrites the editable fields of one payment and returns
// the updated record. Returns storage.ErrNotFound for unknown ids.
func (s *SQLiteStore) UpdatePayment(ctx context.Context, schoolID, paymentID string, update models.PaymentUpdate) (*models.Payment, error) {
	date := update.Date
	if date.IsZero() {
		date = time.Now().UTC()
	}
	res, err := s.db.ExecContext(ctx,
		"UPDATE payments SET amount = ?, mode = ?, transaction_id = ?, remarks = ?, date = ? WHERE school_id = ? AND id = ?",
		update.Amount.String(), string(update.Mode), update.TransactionID, update.Remarks,
		date.Format(time.RFC3339), schoolID, paymentID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update payment: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to update payment: %w", err)
	}
	if n == 0 {
		return nil, storage.ErrNotFound
	}

	row := s.db.QueryRowContext(ctx,
		"SELECT "+paymentColumns+" FROM payments WHERE school_id = ? AND id = ?",
		schoolID, paymentID,
	)
	return scanPayment(row)
}

// DeletePayments removes the given payments in one transaction and returns
// how many existed.
func (s *SQLiteStore) DeletePayments(ctx context.Context, schoolID string, paymentIDs []string) (int, error) {
	if len(paymentIDs) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(paymentIDs)), ",")
	args := make([]interface{}, 0, len(paymentIDs)+1)
	args = append(args, schoolID)
	for _, id := range paymentIDs {
		args = append(args, id)
	}

	res, err := tx.ExecContext(ctx,
		"DELETE FROM payments WHERE school_id = ? AND id IN ("+placeholders+")",
		args...,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to delete payments: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to delete payments: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return int(n), nil
}
