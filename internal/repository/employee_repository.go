package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/shiftlyhq/shiftly/internal/model"
)

// EmployeeRepo provides persistence for roster rows.  Every query is scoped
// to the owning company and soft-deleted rows are excluded by default; a
// deleted row stays in storage for audit but is invisible to listings and
// lookups.
type EmployeeRepo struct{ db *sql.DB }

func NewEmployeeRepo(db *sql.DB) *EmployeeRepo { return &EmployeeRepo{db: db} }

const employeeCols = "id,company_id,account_id,email,name,position,status,created_at,updated_at"

// CreateTx inserts an invited roster row within an existing transaction and
// populates the generated ID.  The caller commits or rolls back; invite
// creation pairs this with an invitation insert.
func (r *EmployeeRepo) CreateTx(ctx context.Context, tx *sql.Tx, e *model.Employee) error {
	res, err := tx.ExecContext(ctx,
		"INSERT INTO employees (company_id, email, name, position, status) VALUES (?,?,?,?,?)",
		e.CompanyID, strings.ToLower(strings.TrimSpace(e.Email)), e.Name, e.Position, model.EmployeeInvited)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	e.ID = uint64(id)
	e.Status = model.EmployeeInvited
	return nil
}

// ListByCompany returns the company's roster, newest first, excluding
// soft-deleted rows.
func (r *EmployeeRepo) ListByCompany(ctx context.Context, companyID uint64) ([]model.Employee, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+employeeCols+" FROM employees WHERE company_id=? AND status<>? ORDER BY created_at DESC",
		companyID, model.EmployeeDeleted)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Employee, 0)
	for rows.Next() {
		var e model.Employee
		if err := rows.Scan(&e.ID, &e.CompanyID, &e.AccountID, &e.Email, &e.Name, &e.Position, &e.Status, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// GetByIDAndCompany fetches one non-deleted roster row under the company's
// scope.  Returns ErrNotFound when the row does not exist, is deleted, or
// belongs to another company.
func (r *EmployeeRepo) GetByIDAndCompany(ctx context.Context, id, companyID uint64) (model.Employee, error) {
	var e model.Employee
	err := r.db.QueryRowContext(ctx,
		"SELECT "+employeeCols+" FROM employees WHERE id=? AND company_id=? AND status<>? LIMIT 1",
		id, companyID, model.EmployeeDeleted).
		Scan(&e.ID, &e.CompanyID, &e.AccountID, &e.Email, &e.Name, &e.Position, &e.Status, &e.CreatedAt, &e.UpdatedAt)
	if err == sql.ErrNoRows {
		return e, ErrNotFound
	}
	return e, err
}

// Update edits the mutable roster fields under the company's scope.
func (r *EmployeeRepo) Update(ctx context.Context, id, companyID uint64, name string, position *string, status string) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE employees SET name=?, position=?, status=? WHERE id=? AND company_id=? AND status<>?",
		name, position, status, id, companyID, model.EmployeeDeleted)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// Distinguish a true miss from a no-change update.
		if _, err := r.GetByIDAndCompany(ctx, id, companyID); err != nil {
			return err
		}
	}
	return nil
}

// SoftDelete marks a roster row deleted without removing it.
func (r *EmployeeRepo) SoftDelete(ctx context.Context, id, companyID uint64) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE employees SET status=? WHERE id=? AND company_id=? AND status<>?",
		model.EmployeeDeleted, id, companyID, model.EmployeeDeleted)
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

// ActivateTx transitions an invited roster row to active and links the
// accepting account, within an existing transaction.  The status guard in
// the WHERE clause makes a second acceptance affect zero rows.
func (r *EmployeeRepo) ActivateTx(ctx context.Context, tx *sql.Tx, employeeID, accountID uint64) error {
	res, err := tx.ExecContext(ctx,
		"UPDATE employees SET account_id=?, status=? WHERE id=? AND status=?",
		accountID, model.EmployeeActive, employeeID, model.EmployeeInvited)
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

// CompanySummary is one company an account belongs to, for the company
// switcher.
type CompanySummary struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// ListCompaniesForAccount returns the companies where the account has an
// active employment, for the company switcher.
func (r *EmployeeRepo) ListCompaniesForAccount(ctx context.Context, accountID uint64) ([]CompanySummary, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT a.id, COALESCE(a.company_name, a.full_name)
		 FROM employees e
		 JOIN accounts a ON a.id = e.company_id
		 WHERE e.account_id=? AND e.status=?
		 ORDER BY a.company_name`,
		accountID, model.EmployeeActive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]CompanySummary, 0)
	for rows.Next() {
		var c CompanySummary
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// GetActiveByAccountAndCompany returns the account's active roster row at
// the given company.  ErrNotFound doubles as the "invalid company
// selection" signal for the company switcher.
func (r *EmployeeRepo) GetActiveByAccountAndCompany(ctx context.Context, accountID, companyID uint64) (model.Employee, error) {
	var e model.Employee
	err := r.db.QueryRowContext(ctx,
		"SELECT "+employeeCols+" FROM employees WHERE account_id=? AND company_id=? AND status=? LIMIT 1",
		accountID, companyID, model.EmployeeActive).
		Scan(&e.ID, &e.CompanyID, &e.AccountID, &e.Email, &e.Name, &e.Position, &e.Status, &e.CreatedAt, &e.UpdatedAt)
	if err == sql.ErrNoRows {
		return e, ErrNotFound
	}
	return e, err
}
