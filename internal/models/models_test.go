package models

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func d(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

func TestDeriveStatus(t *testing.T) {
	tests := []struct {
		name  string
		paid  decimal.Decimal
		total decimal.Decimal
		want  FeeStatus
	}{
		{"nothing paid", d(0), d(5000), StatusUnpaid},
		{"negative correction", d(-100), d(5000), StatusUnpaid},
		{"partial", d(2000), d(5000), StatusPartiallyPaid},
		{"one unit short", d(4999), d(5000), StatusPartiallyPaid},
		{"exact", d(5000), d(5000), StatusPaid},
		{"overpaid", d(6000), d(5000), StatusPaid},
		{"zero total zero paid", d(0), d(0), StatusUnpaid},
		{"fractional partial", decimal.RequireFromString("0.01"), d(5000), StatusPartiallyPaid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DeriveStatus(tt.paid, tt.total); got != tt.want {
				t.Errorf("DeriveStatus(%s, %s) = %s, want %s", tt.paid, tt.total, got, tt.want)
			}
		})
	}
}

func TestStudentFeeRow_Remaining(t *testing.T) {
	row := StudentFeeRow{TotalFees: d(5000), PaidFees: d(6000)}
	// Overpayment yields a negative remainder, not zero.
	if got := row.Remaining(); !got.Equal(d(-1000)) {
		t.Errorf("Remaining() = %s, want -1000", got)
	}
}

func TestPaymentMode_Valid(t *testing.T) {
	for _, m := range []PaymentMode{ModeCash, ModeUPI, ModeCard, ModeNetBanking, ModeCheque} {
		if !m.Valid() {
			t.Errorf("%q must be valid", m)
		}
	}
	for _, m := range []PaymentMode{"", "cash", "Barter", "NetBanking"} {
		if m.Valid() {
			t.Errorf("%q must be invalid", m)
		}
	}
}

func TestValidate_PaymentForm(t *testing.T) {
	valid := PaymentForm{
		SchoolID:  "school-1",
		StudentID: "s1",
		ClassID:   "c1",
		Amount:    decimal.RequireFromString("1500.50"),
		Mode:      ModeNetBanking,
	}
	if err := Validate(valid); err != nil {
		t.Fatalf("valid form rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*PaymentForm)
	}{
		{"missing school", func(f *PaymentForm) { f.SchoolID = "" }},
		{"missing student", func(f *PaymentForm) { f.StudentID = "" }},
		{"missing class", func(f *PaymentForm) { f.ClassID = "" }},
		{"zero amount", func(f *PaymentForm) { f.Amount = decimal.Zero }},
		{"negative amount", func(f *PaymentForm) { f.Amount = d(-1) }},
		{"missing mode", func(f *PaymentForm) { f.Mode = "" }},
		{"unknown mode", func(f *PaymentForm) { f.Mode = "Barter" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := valid
			tt.mutate(&form)
			err := Validate(form)
			if !errors.Is(err, ErrValidation) {
				t.Errorf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestValidate_PaymentUpdate(t *testing.T) {
	if err := Validate(PaymentUpdate{Amount: d(100), Mode: ModeCash}); err != nil {
		t.Fatalf("valid update rejected: %v", err)
	}
	if err := Validate(PaymentUpdate{Amount: d(0), Mode: ModeCash}); !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation for zero amount, got %v", err)
	}
	if err := Validate(PaymentUpdate{Amount: d(100), Mode: "swap"}); !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation for bad mode, got %v", err)
	}
}
