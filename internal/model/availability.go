package model

import "time"

// Availability describes an employee's weekly day/time preferences in the
// `availabilities` table.  At most one row exists per employee; writes go
// through an upsert keyed on the unique employee_id index.  Days is a JSON
// document mapping weekday names to time windows, stored opaque to SQL.
type Availability struct {
	ID         uint64    // availabilities.id
	EmployeeID uint64    // availabilities.employee_id (unique)
	Days       string    // availabilities.days (JSON)
	Note       *string   // availabilities.note (nullable)
	CreatedAt  time.Time // availabilities.created_at
	UpdatedAt  time.Time // availabilities.updated_at
}
