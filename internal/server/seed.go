package server

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/krushnaz/teachove-fees/internal/models"
	"github.com/krushnaz/teachove-fees/internal/storage"
)

// DemoSchoolID is the school the demo seed populates.
const DemoSchoolID = "demo-school"

// Seed populates the store with a small demo roster so the ledger has
// something to show on a fresh database.
func Seed(ctx context.Context, store storage.Store) error {
	classes := []models.Classroom{
		{SchoolID: DemoSchoolID, Name: "Grade 5", Division: "A"},
		{SchoolID: DemoSchoolID, Name: "Grade 5", Division: "B"},
		{SchoolID: DemoSchoolID, Name: "Grade 6", Division: "A"},
	}
	for i := range classes {
		if err := store.CreateClassroom(ctx, &classes[i]); err != nil {
			return fmt.Errorf("seed classroom: %w", err)
		}
	}

	students := []models.Student{
		{SchoolID: DemoSchoolID, ClassID: classes[0].ID, Name: "Aarav Sharma", RollNo: "1", TotalFees: decimal.NewFromInt(5000)},
		{SchoolID: DemoSchoolID, ClassID: classes[0].ID, Name: "Diya Patel", RollNo: "2", TotalFees: decimal.NewFromInt(5000)},
		{SchoolID: DemoSchoolID, ClassID: classes[1].ID, Name: "Ishaan Verma", RollNo: "1", TotalFees: decimal.NewFromInt(5500)},
		{SchoolID: DemoSchoolID, ClassID: classes[2].ID, Name: "Meera Nair", RollNo: "1", TotalFees: decimal.NewFromInt(6000)},
	}
	for i := range students {
		if err := store.CreateStudent(ctx, &students[i]); err != nil {
			return fmt.Errorf("seed student: %w", err)
		}
	}

	payments := []models.Payment{
		{SchoolID: DemoSchoolID, StudentID: students[0].ID, ClassID: students[0].ClassID, Amount: decimal.NewFromInt(2000), Mode: models.ModeUPI, TransactionID: "UPI-1001"},
		{SchoolID: DemoSchoolID, StudentID: students[2].ID, ClassID: students[2].ClassID, Amount: decimal.NewFromInt(5500), Mode: models.ModeCash},
	}
	for i := range payments {
		if err := store.CreatePayment(ctx, &payments[i]); err != nil {
			return fmt.Errorf("seed payment: %w", err)
		}
	}

	return nil
}
