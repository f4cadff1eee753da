// Package sqlite provides a SQLite-backed implementation of the
// storage.Store interface for the dev stub backend.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/krushnaz/teachove-fees/internal/models"
	"github.com/krushnaz/teachove-fees/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// CreateClassroom persists a classroom, assigning an id when empty.
func (s *SQLiteStore) CreateClassroom(ctx context.Context, c *models.Classroom) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO classrooms (id, school_id, name, division) VALUES (?, ?, ?, ?)",
		c.ID, c.SchoolID, c.Name, c.Division,
	)
	if err != nil {
		return fmt.Errorf("failed to insert classroom: %w", err)
	}
	return nil
}

// ClassesBySchool lists all classrooms of a school, ordered by name then
// division.
func (s *SQLiteStore) ClassesBySchool(ctx context.Context, schoolID string) ([]models.Classroom, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, school_id, name, division FROM classrooms WHERE school_id = ? ORDER BY name, division",
		schoolID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get classrooms: %w", err)
	}
	defer rows.Close()

	var classrooms []models.Classroom
	for rows.Next() {
		var c models.Classroom
		if err := rows.Scan(&c.ID, &c.SchoolID, &c.Name, &c.Division); err != nil {
			return nil, fmt.Errorf("failed to scan classroom: %w", err)
		}
		classrooms = append(classrooms, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate classrooms: %w", err)
	}
	return classrooms, nil
}

// CreateStudent persists a roster entry, assigning an id when empty.
func (s *SQLiteStore) CreateStudent(ctx context.Context, st *models.Student) error {
	if st.ID == "" {
		st.ID = uuid.New().String()
	}
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO students (id, school_id, class_id, name, roll_no, total_fees) VALUES (?, ?, ?, ?, ?, ?)",
		st.ID, st.SchoolID, st.ClassID, st.Name, st.RollNo, st.TotalFees.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert student: %w", err)
	}
	return nil
}

// SummaryBySchool aggregates the school-wide fee summary. Per-student paid
// amounts are summed in Go over decimal values so the aggregates stay exact.
func (s *SQLiteStore) SummaryBySchool(ctx context.Context, schoolID string) (*models.FeeSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT st.id, st.name, st.roll_no, st.total_fees, st.class_id, c.name, c.division
		FROM students st
		JOIN classrooms c ON c.id = st.class_id
		WHERE st.school_id = ?
		ORDER BY c.name, c.division, st.roll_no`,
		schoolID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get students: %w", err)
	}
	defer rows.Close()

	summary := &models.FeeSummary{Students: []models.StudentFeeRow{}}
	for rows.Next() {
		var (
			row       models.StudentFeeRow
			totalFees string
		)
		if err := rows.Scan(&row.StudentID, &row.StudentName, &row.RollNo, &totalFees,
			&row.ClassID, &row.ClassName, &row.Division); err != nil {
			return nil, fmt.Errorf("failed to scan student: %w", err)
		}
		row.TotalFees, err = decimal.NewFromString(totalFees)
		if err != nil {
			return nil, fmt.Errorf("failed to parse total fees: %w", err)
		}
		summary.Students = append(summary.Students, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate students: %w", err)
	}

	paid, err := s.paidByStudent(ctx, schoolID)
	if err != nil {
		return nil, err
	}

	for i := range summary.Students {
		row := &summary.Students[i]
		row.PaidFees = paid[row.StudentID]
		summary.Total = summary.Total.Add(row.TotalFees)
		summary.Received = summary.Received.Add(row.PaidFees)
	}
	summary.Remaining = summary.Total.Sub(summary.Received)
	return summary, nil
}

// paidByStudent sums every student's payments for a school.
func (s *SQLiteStore) paidByStudent(ctx context.Context, schoolID string) (map[string]decimal.Decimal, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT student_id, amount FROM payments WHERE school_id = ?",
		schoolID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get payments: %w", err)
	}
	defer rows.Close()

	paid := make(map[string]decimal.Decimal)
	for rows.Next() {
		var studentID, amount string
		if err := rows.Scan(&studentID, &amount); err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		d, err := decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("failed to parse amount: %w", err)
		}
		paid[studentID] = paid[studentID].Add(d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payments: %w", err)
	}
	return paid, nil
}
