package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/shiftlyhq/shiftly/internal/model"
)

// EventRepo provides persistence for events.  Ownership is enforced by
// company id in every query; the upcoming/past status is derived from the
// event date against the current UTC date and never stored.
type EventRepo struct{ db *sql.DB }

func NewEventRepo(db *sql.DB) *EventRepo { return &EventRepo{db: db} }

const eventCols = "id,company_id,title,description,event_date,start_time,end_time,timezone,location,created_at,updated_at"

// Create inserts an event and populates the generated ID.
func (r *EventRepo) Create(ctx context.Context, e *model.Event) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO events (company_id, title, description, event_date, start_time, end_time, timezone, location) VALUES (?,?,?,?,?,?,?,?)",
		e.CompanyID, e.Title, e.Description, e.Date.UTC(), e.StartTime, e.EndTime, e.Timezone, e.Location)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	e.ID = uint64(id)
	return nil
}

// statusClause appends the derived-status date filter for an optional
// upcoming/past filter. Unknown values are ignored.
func statusClause(status string) string {
	switch status {
	case model.EventUpcoming:
		return " AND event_date >= UTC_DATE()"
	case model.EventPast:
		return " AND event_date < UTC_DATE()"
	}
	return ""
}

// ListByCompany returns the company's own events, soonest first, optionally
// filtered to upcoming or past.
func (r *EventRepo) ListByCompany(ctx context.Context, companyID uint64, status string) ([]model.Event, error) {
	q := "SELECT " + eventCols + " FROM events WHERE company_id=?" + statusClause(status) + " ORDER BY event_date ASC, start_time ASC"
	rows, err := r.db.QueryContext(ctx, q, companyID)
	if err != nil {
		return nil, err
	}
	return scanEvents(rows)
}

// ListForInvitee returns events the given email is invited to, soonest
// first.  This is the employee-facing query shape: scope by attendee email,
// never global.
func (r *EventRepo) ListForInvitee(ctx context.Context, email, status string) ([]model.Event, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	q := `SELECT e.id,e.company_id,e.title,e.description,e.event_date,e.start_time,e.end_time,e.timezone,e.location,e.created_at,e.updated_at
	      FROM events e
	      JOIN event_attendees ea ON ea.event_id = e.id
	      WHERE ea.email=?` + strings.ReplaceAll(statusClause(status), "event_date", "e.event_date") +
		" ORDER BY e.event_date ASC, e.start_time ASC"
	rows, err := r.db.QueryContext(ctx, q, email)
	if err != nil {
		return nil, err
	}
	return scanEvents(rows)
}

func scanEvents(rows *sql.Rows) ([]model.Event, error) {
	defer rows.Close()
	out := make([]model.Event, 0)
	for rows.Next() {
		var e model.Event
		if err := rows.Scan(&e.ID, &e.CompanyID, &e.Title, &e.Description, &e.Date, &e.StartTime, &e.EndTime, &e.Timezone, &e.Location, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// GetByIDAndCompany fetches one event under the company's scope.
func (r *EventRepo) GetByIDAndCompany(ctx context.Context, id, companyID uint64) (model.Event, error) {
	var e model.Event
	err := r.db.QueryRowContext(ctx,
		"SELECT "+eventCols+" FROM events WHERE id=? AND company_id=? LIMIT 1", id, companyID).
		Scan(&e.ID, &e.CompanyID, &e.Title, &e.Description, &e.Date, &e.StartTime, &e.EndTime, &e.Timezone, &e.Location, &e.CreatedAt, &e.UpdatedAt)
	if err == sql.ErrNoRows {
		return e, ErrNotFound
	}
	return e, err
}

// Update edits the schedule fields under the company's scope.
func (r *EventRepo) Update(ctx context.Context, e *model.Event) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE events SET title=?, description=?, event_date=?, start_time=?, end_time=?, timezone=?, location=? WHERE id=? AND company_id=?",
		e.Title, e.Description, e.Date.UTC(), e.StartTime, e.EndTime, e.Timezone, e.Location, e.ID, e.CompanyID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		if _, err := r.GetByIDAndCompany(ctx, e.ID, e.CompanyID); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes an event under the company's scope.  Attendee rows go with
// it via the foreign key cascade.
func (r *EventRepo) Delete(ctx context.Context, id, companyID uint64) error {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM events WHERE id=? AND company_id=?", id, companyID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
