// Package models defines the core domain models for the fee ledger.
//
// # Models
//
//   - Payment: a single recorded fee transaction for a student
//   - PaymentForm / PaymentUpdate: validated mutation inputs
//   - StudentFeeRow: one ledger row per student with derived status
//   - FeeSummary / Totals: school-wide aggregates
//   - Classroom: directory entry used to resolve a student's classId
//
// # Design Principles
//
//  1. Money is decimal.Decimal, never float: deltas applied to the ledger
//     must be exact so add/edit/delete round-trips cancel out precisely.
//  2. Status is always derived from paidFees vs totalFees, never stored.
//  3. Relationships use ID strings, no pointers between models.
package models
