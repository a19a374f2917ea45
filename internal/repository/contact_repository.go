package repository

import (
	"context"
	"database/sql"

	"github.com/shiftlyhq/shiftly/internal/model"
)

// ContactRepo provides persistence for address-book entries.  All queries
// are scoped to the owning account and exclude soft-deleted rows.
type ContactRepo struct{ db *sql.DB }

func NewContactRepo(db *sql.DB) *ContactRepo { return &ContactRepo{db: db} }

const contactCols = "id,owner_id,name,email,phone,status,created_at,updated_at"

// Create inserts a contact and populates the generated ID.
func (r *ContactRepo) Create(ctx context.Context, c *model.Contact) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO contacts (owner_id, name, email, phone, status) VALUES (?,?,?,?,?)",
		c.OwnerID, c.Name, c.Email, c.Phone, model.ContactActive)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = uint64(id)
	c.Status = model.ContactActive
	return nil
}

// ListByOwner returns the owner's contacts, optionally filtered by a
// name/email substring.
func (r *ContactRepo) ListByOwner(ctx context.Context, ownerID uint64, q string) ([]model.Contact, error) {
	query := "SELECT " + contactCols + " FROM contacts WHERE owner_id=? AND status<>?"
	args := []any{ownerID, model.ContactDeleted}
	if q != "" {
		query += " AND (name LIKE ? OR email LIKE ?)"
		like := "%" + q + "%"
		args = append(args, like, like)
	}
	query += " ORDER BY name"
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Contact, 0)
	for rows.Next() {
		var c model.Contact
		if err := rows.Scan(&c.ID, &c.OwnerID, &c.Name, &c.Email, &c.Phone, &c.Status, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Update edits a contact under the owner's scope.
func (r *ContactRepo) Update(ctx context.Context, id, ownerID uint64, name string, email, phone *string) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE contacts SET name=?, email=?, phone=? WHERE id=? AND owner_id=? AND status<>?",
		name, email, phone, id, ownerID, model.ContactDeleted)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		var exists uint64
		err := r.db.QueryRowContext(ctx,
			"SELECT id FROM contacts WHERE id=? AND owner_id=? AND status<>? LIMIT 1",
			id, ownerID, model.ContactDeleted).Scan(&exists)
		if err == sql.ErrNoRows {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// SoftDelete marks a contact deleted without removing it.
func (r *ContactRepo) SoftDelete(ctx context.Context, id, ownerID uint64) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE contacts SET status=? WHERE id=? AND owner_id=? AND status<>?",
		model.ContactDeleted, id, ownerID, model.ContactDeleted)
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
