package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMode enumerates the accepted payment channels.
type PaymentMode string

const (
	ModeCash       PaymentMode = "Cash"
	ModeUPI        PaymentMode = "UPI"
	ModeCard       PaymentMode = "Card"
	ModeNetBanking PaymentMode = "Net Banking"
	ModeCheque     PaymentMode = "Cheque"
)

// Valid reports whether the mode is one of the accepted channels.
func (m PaymentMode) Valid() bool {
	switch m {
	case ModeCash, ModeUPI, ModeCard, ModeNetBanking, ModeCheque:
		return true
	}
	return false
}

// Payment represents one recorded fee transaction.
type Payment struct {
	// ID is the backend-assigned unique identifier (UUID format).
	ID string `json:"paymentId"`

	// StudentID is the student this payment belongs to.
	StudentID string `json:"studentId"`

	// ClassID is the classroom the student was enrolled in when paying.
	// Payments are keyed by classId, not by class name.
	ClassID string `json:"classId"`

	// SchoolID scopes the payment to a school.
	SchoolID string `json:"schoolId"`

	// Amount is the positive amount paid.
	Amount decimal.Decimal `json:"amount"`

	// Mode is the payment channel (Cash, UPI, Card, Net Banking, Cheque).
	Mode PaymentMode `json:"paymentMode"`

	// TransactionID is an optional free-text reference (e.g. a UPI ref).
	TransactionID string `json:"transactionId,omitempty"`

	// Remarks is optional free-text.
	Remarks string `json:"remarks,omitempty"`

	// Date is when the payment was made. Defaults to creation time, editable.
	Date time.Time `json:"date"`
}

// PaymentForm is the input for recording a new payment.
type PaymentForm struct {
	SchoolID      string          `json:"schoolId" validate:"required"`
	StudentID     string          `json:"studentId" validate:"required"`
	ClassID       string          `json:"classId" validate:"required"`
	Amount        decimal.Decimal `json:"amount" validate:"required,gt=0"`
	Mode          PaymentMode     `json:"paymentMode" validate:"required,paymode"`
	TransactionID string          `json:"transactionId,omitempty"`
	Remarks       string          `json:"remarks,omitempty"`
	Date          time.Time       `json:"date,omitzero"`
}

// PaymentUpdate carries the editable fields of an existing payment.
// Identity fields (student, class, school) are not editable.
type PaymentUpdate struct {
	Amount        decimal.Decimal `json:"amount" validate:"required,gt=0"`
	Mode          PaymentMode     `json:"paymentMode" validate:"required,paymode"`
	TransactionID string          `json:"transactionId,omitempty"`
	Remarks       string          `json:"remarks,omitempty"`
	Date          time.Time       `json:"date,omitzero"`
}
