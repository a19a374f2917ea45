package model

import "time"

// ShiftIssue statuses.
const (
	IssuePending  = "pending"
	IssueResolved = "resolved"
)

// ShiftIssue records a problem an employee reports against a shift, in the
// `shift_issues` table.  Resolution is one-way: pending -> resolved, with
// the resolver account and timestamp recorded.
//
// Fields:
//
//	ID          – primary key identifier.
//	CompanyID   – company the shift belongs to.
//	EmployeeID  – roster row of the reporter.
//	ShiftDate   – date of the affected shift.
//	Description – what went wrong.
//	Status      – pending or resolved.
//	ResolvedBy  – account that resolved the issue (nullable).
//	ResolvedAt  – when it was resolved (nullable).
//	CreatedAt   – timestamp of creation.
//	UpdatedAt   – timestamp of last update.
type ShiftIssue struct {
	ID          uint64     // shift_issues.id
	CompanyID   uint64     // shift_issues.company_id
	EmployeeID  uint64     // shift_issues.employee_id
	ShiftDate   time.Time  // shift_issues.shift_date
	Description string     // shift_issues.description
	Status      string     // shift_issues.status
	ResolvedBy  *uint64    // shift_issues.resolved_by (nullable)
	ResolvedAt  *time.Time // shift_issues.resolved_at (nullable)
	CreatedAt   time.Time  // shift_issues.created_at
	UpdatedAt   time.Time  // shift_issues.updated_at
}
