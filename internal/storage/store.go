// Package storage provides abstractions for the dev stub's persistent data.
package storage

import (
	"context"
	"errors"

	"github.com/krushnaz/teachove-fees/internal/models"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("record not found")

// Store defines the persistence surface of the stub fee backend.
// This abstraction allows swapping backends without changing the handlers.
type Store interface {
	// CreateClassroom persists a classroom, assigning an id when empty.
	CreateClassroom(ctx context.Context, c *models.Classroom) error

	// ClassesBySchool lists all classrooms of a school.
	ClassesBySchool(ctx context.Context, schoolID string) ([]models.Classroom, error)

	// CreateStudent persists a roster entry, assigning an id when empty.
	CreateStudent(ctx context.Context, s *models.Student) error

	// SummaryBySchool aggregates the school-wide fee summary: per-student
	// totals plus the school aggregates.
	SummaryBySchool(ctx context.Context, schoolID string) (*models.FeeSummary, error)

	// PaymentsByStudent lists one student's payments, newest first.
	PaymentsByStudent(ctx context.Context, schoolID, studentID, classID string) ([]models.Payment, error)

	// PaymentsByClass lists all payments recorded for a classroom.
	PaymentsByClass(ctx context.Context, schoolID, classID string) ([]models.Payment, error)

	// CreatePayment persists a payment, assigning id and date when unset.
	CreatePayment(ctx context.Context, p *models.Payment) error

	// UpdatePayment overwrites the editable fields of one payment.
	// Returns ErrNotFound when the payment does not exist.
	UpdatePayment(ctx context.Context, schoolID, paymentID string, update models.PaymentUpdate) (*models.Payment, error)

	// DeletePayments removes the given payments in one transaction and
	// returns how many existed.
	DeletePayments(ctx context.Context, schoolID string, paymentIDs []string) (int, error)

	// Close releases any resources held by the store.
	Close() error
}
