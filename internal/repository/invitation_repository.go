package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/shiftlyhq/shiftly/internal/model"
)

// InvitationRepo provides persistence for invite tokens.  Expiry is
// logical: a pending row past its expires_at is reported as expired at read
// time and never rewritten in storage.
type InvitationRepo struct{ db *sql.DB }

func NewInvitationRepo(db *sql.DB) *InvitationRepo { return &InvitationRepo{db: db} }

// CreateTx inserts an invitation within an existing transaction, paired
// with the roster row insert.
func (r *InvitationRepo) CreateTx(ctx context.Context, tx *sql.Tx, inv *model.Invitation) error {
	res, err := tx.ExecContext(ctx,
		"INSERT INTO invitations (employee_id, company_id, email, token, status, expires_at) VALUES (?,?,?,?,?,?)",
		inv.EmployeeID, inv.CompanyID, inv.Email, inv.Token, model.InvitePending, inv.ExpiresAt.UTC())
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	inv.ID = uint64(id)
	inv.Status = model.InvitePending
	return nil
}

// GetByToken fetches an invitation by its opaque token.
func (r *InvitationRepo) GetByToken(ctx context.Context, token string) (model.Invitation, error) {
	var inv model.Invitation
	err := r.db.QueryRowContext(ctx,
		"SELECT id,employee_id,company_id,email,token,status,expires_at,created_at FROM invitations WHERE token=? LIMIT 1",
		token).
		Scan(&inv.ID, &inv.EmployeeID, &inv.CompanyID, &inv.Email, &inv.Token, &inv.Status, &inv.ExpiresAt, &inv.CreatedAt)
	if err == sql.ErrNoRows {
		return inv, ErrNotFound
	}
	return inv, err
}

// AcceptTx flips a pending, unexpired invitation to accepted within an
// existing transaction.  The status and expiry guards in the WHERE clause
// make a second acceptance, or a late one, affect zero rows.
func (r *InvitationRepo) AcceptTx(ctx context.Context, tx *sql.Tx, id uint64, now time.Time) error {
	res, err := tx.ExecContext(ctx,
		"UPDATE invitations SET status=? WHERE id=? AND status=? AND expires_at > ?",
		model.InviteAccepted, id, model.InvitePending, now.UTC())
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrInviteInvalid
	}
	return nil
}
