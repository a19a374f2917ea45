package repository

import (
	"context"
	"database/sql"

	"github.com/shiftlyhq/shiftly/internal/model"
)

// AvailabilityRepo provides persistence for weekly availability records.
// The unique employee_id index plus the upsert keeps at most one row per
// employee regardless of concurrent writers.
type AvailabilityRepo struct{ db *sql.DB }

func NewAvailabilityRepo(db *sql.DB) *AvailabilityRepo { return &AvailabilityRepo{db: db} }

// Upsert writes the employee's availability, replacing any previous record.
func (r *AvailabilityRepo) Upsert(ctx context.Context, employeeID uint64, daysJSON string, note *string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO availabilities (employee_id, days, note) VALUES (?,?,?)
		 ON DUPLICATE KEY UPDATE days = VALUES(days), note = VALUES(note)`,
		employeeID, daysJSON, note)
	return err
}

// GetByEmployee fetches the employee's availability record.
func (r *AvailabilityRepo) GetByEmployee(ctx context.Context, employeeID uint64) (model.Availability, error) {
	var a model.Availability
	err := r.db.QueryRowContext(ctx,
		"SELECT id,employee_id,days,note,created_at,updated_at FROM availabilities WHERE employee_id=? LIMIT 1",
		employeeID).
		Scan(&a.ID, &a.EmployeeID, &a.Days, &a.Note, &a.CreatedAt, &a.UpdatedAt)
	if err == sql.ErrNoRows {
		return a, ErrNotFound
	}
	return a, err
}
