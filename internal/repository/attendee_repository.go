package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/shiftlyhq/shiftly/internal/model"
)

// AttendeeRepo provides persistence for event attendee rows.  The
// (event_id, email) unique index carries the no-duplicate-invite invariant:
// concurrent upserts for the same pair collapse to one row.
type AttendeeRepo struct{ db *sql.DB }

func NewAttendeeRepo(db *sql.DB) *AttendeeRepo { return &AttendeeRepo{db: db} }

// Upsert invites an email to an event.  Re-inviting an existing pair keeps
// the row's status and fills in the account link when one is known now but
// was not at first invite.
func (r *AttendeeRepo) Upsert(ctx context.Context, eventID uint64, email string, accountID *uint64) error {
	email = strings.ToLower(strings.TrimSpace(email))
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO event_attendees (event_id, email, account_id, status) VALUES (?,?,?,?)
		 ON DUPLICATE KEY UPDATE account_id = COALESCE(account_id, VALUES(account_id))`,
		eventID, email, accountID, model.AttendeeInvited)
	return err
}

// ListByEvent returns all attendee rows of an event.  Caller has already
// checked event ownership.
func (r *AttendeeRepo) ListByEvent(ctx context.Context, eventID uint64) ([]model.EventAttendee, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id,event_id,email,account_id,status,created_at,updated_at FROM event_attendees WHERE event_id=? ORDER BY email",
		eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.EventAttendee, 0)
	for rows.Next() {
		var a model.EventAttendee
		if err := rows.Scan(&a.ID, &a.EventID, &a.Email, &a.AccountID, &a.Status, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// Respond records an accept/reject by the invited email and links the
// responding account.  Only an invited row can transition; responding twice
// returns ErrConflict, responding to a missing invite ErrNotFound.
func (r *AttendeeRepo) Respond(ctx context.Context, eventID uint64, email string, accountID uint64, status string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	res, err := r.db.ExecContext(ctx,
		"UPDATE event_attendees SET status=?, account_id=? WHERE event_id=? AND email=? AND status=?",
		status, accountID, eventID, email, model.AttendeeInvited)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		var cur string
		err := r.db.QueryRowContext(ctx,
			"SELECT status FROM event_attendees WHERE event_id=? AND email=? LIMIT 1",
			eventID, email).Scan(&cur)
		if err == sql.ErrNoRows {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		return ErrConflict
	}
	return nil
}
