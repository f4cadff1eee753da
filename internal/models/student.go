package models

import "github.com/shopspring/decimal"

// FeeStatus is the derived payment status of a student row.
type FeeStatus string

const (
	StatusUnpaid        FeeStatus = "unpaid"
	StatusPartiallyPaid FeeStatus = "partially paid"
	StatusPaid          FeeStatus = "paid"
)

// DeriveStatus computes the status from the paid and total amounts:
// unpaid when nothing (or a negative correction) has been paid, paid when
// the total is covered, partially paid in between.
func DeriveStatus(paid, total decimal.Decimal) FeeStatus {
	switch {
	case paid.LessThanOrEqual(decimal.Zero):
		return StatusUnpaid
	case paid.GreaterThanOrEqual(total):
		return StatusPaid
	default:
		return StatusPartiallyPaid
	}
}

// StudentFeeRow is one ledger row per student.
type StudentFeeRow struct {
	// StudentID is the stable identifier, primary key for the row.
	StudentID string `json:"studentId"`

	// StudentName, ClassName, Division and RollNo are display fields.
	StudentName string `json:"studentName"`
	ClassName   string `json:"className"`
	Division    string `json:"division"`
	RollNo      string `json:"rollNo"`

	// ClassID is the resolved classroom foreign key. Payments are keyed by
	// it; a row with an empty ClassID cannot accept payment mutations.
	ClassID string `json:"classId,omitempty"`

	// TotalFees is the school-assigned amount, authoritative from the backend.
	TotalFees decimal.Decimal `json:"totalFees"`

	// PaidFees is the sum of this student's payments as known to the client.
	PaidFees decimal.Decimal `json:"paidFees"`
}

// Status derives the row's payment status. Never stored, so it is always
// consistent with the latest PaidFees value.
func (r *StudentFeeRow) Status() FeeStatus {
	return DeriveStatus(r.PaidFees, r.TotalFees)
}

// Remaining is TotalFees - PaidFees. May be negative on overpayment;
// no clamping is performed.
func (r *StudentFeeRow) Remaining() decimal.Decimal {
	return r.TotalFees.Sub(r.PaidFees)
}

// Totals are the school-wide aggregates shown next to the table.
type Totals struct {
	// Total is the sum of all students' TotalFees.
	Total decimal.Decimal `json:"totalFees"`

	// Received is the sum of all recorded payments.
	Received decimal.Decimal `json:"totalPaid"`

	// Remaining is Total - Received.
	Remaining decimal.Decimal `json:"remainingAmount"`
}

// FeeSummary is the school-wide summary endpoint response: aggregate totals
// plus one summary row per student.
type FeeSummary struct {
	Totals
	Students []StudentFeeRow `json:"students"`
}

// Student is a roster entry: the persisted entity the stub backend derives
// summary rows from.
type Student struct {
	ID        string          `json:"studentId"`
	SchoolID  string          `json:"schoolId"`
	ClassID   string          `json:"classId"`
	Name      string          `json:"studentName"`
	RollNo    string          `json:"rollNo"`
	TotalFees decimal.Decimal `json:"totalFees"`
}

// Classroom is a directory entry for one class of a school.
type Classroom struct {
	// ID is the classroom identifier payments are keyed by.
	ID string `json:"classId"`

	// SchoolID scopes the classroom to a school.
	SchoolID string `json:"schoolId"`

	// Name is the class name shown on student rows (e.g. "Grade 5").
	Name string `json:"className"`

	// Division distinguishes parallel classes of the same name (e.g. "A").
	Division string `json:"division"`
}
