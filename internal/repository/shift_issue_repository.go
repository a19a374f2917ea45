package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/shiftlyhq/shiftly/internal/model"
)

// ShiftIssueRepo provides persistence for reported shift issues.  Companies
// see every issue under their company id; employees only their own rows.
type ShiftIssueRepo struct{ db *sql.DB }

func NewShiftIssueRepo(db *sql.DB) *ShiftIssueRepo { return &ShiftIssueRepo{db: db} }

const issueCols = "id,company_id,employee_id,shift_date,description,status,resolved_by,resolved_at,created_at,updated_at"

// Create inserts a pending issue and populates the generated ID.
func (r *ShiftIssueRepo) Create(ctx context.Context, i *model.ShiftIssue) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO shift_issues (company_id, employee_id, shift_date, description, status) VALUES (?,?,?,?,?)",
		i.CompanyID, i.EmployeeID, i.ShiftDate.UTC(), i.Description, model.IssuePending)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	i.ID = uint64(id)
	i.Status = model.IssuePending
	return nil
}

// ListByCompany returns every issue reported under the company, pending
// first, newest within each group.
func (r *ShiftIssueRepo) ListByCompany(ctx context.Context, companyID uint64) ([]model.ShiftIssue, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+issueCols+" FROM shift_issues WHERE company_id=? ORDER BY status DESC, created_at DESC",
		companyID)
	if err != nil {
		return nil, err
	}
	return scanIssues(rows)
}

// ListByAccount returns the issues reported by the account's own roster
// rows across companies.
func (r *ShiftIssueRepo) ListByAccount(ctx context.Context, accountID uint64) ([]model.ShiftIssue, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT si.id,si.company_id,si.employee_id,si.shift_date,si.description,si.status,si.resolved_by,si.resolved_at,si.created_at,si.updated_at
		 FROM shift_issues si
		 JOIN employees e ON e.id = si.employee_id
		 WHERE e.account_id=?
		 ORDER BY si.created_at DESC`,
		accountID)
	if err != nil {
		return nil, err
	}
	return scanIssues(rows)
}

func scanIssues(rows *sql.Rows) ([]model.ShiftIssue, error) {
	defer rows.Close()
	out := make([]model.ShiftIssue, 0)
	for rows.Next() {
		var i model.ShiftIssue
		if err := rows.Scan(&i.ID, &i.CompanyID, &i.EmployeeID, &i.ShiftDate, &i.Description, &i.Status, &i.ResolvedBy, &i.ResolvedAt, &i.CreatedAt, &i.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, i)
	}
	return out, rows.Err()
}

// Resolve transitions a pending issue to resolved under the company's
// scope, recording the resolver and timestamp.  Resolving an already
// resolved issue returns ErrConflict; a miss under the scope ErrNotFound.
func (r *ShiftIssueRepo) Resolve(ctx context.Context, id, companyID, resolverID uint64, now time.Time) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE shift_issues SET status=?, resolved_by=?, resolved_at=? WHERE id=? AND company_id=? AND status=?",
		model.IssueResolved, resolverID, now.UTC(), id, companyID, model.IssuePending)
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
			"SELECT status FROM shift_issues WHERE id=? AND company_id=? LIMIT 1",
			id, companyID).Scan(&cur)
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
