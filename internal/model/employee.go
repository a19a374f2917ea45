package model

import "time"

// Employee statuses.  Deleted is a soft delete; the row stays in storage
// and is excluded from standard queries.
const (
	EmployeeInvited  = "invited"
	EmployeeActive   = "active"
	EmployeeInactive = "inactive"
	EmployeeDeleted  = "deleted"
)

// Employee represents a roster membership row in the `employees` table.
// It links a person to a company account.  AccountID is nullable because a
// roster row is created when the invite goes out, before the invitee has an
// account of their own; it is filled in when the invitation is accepted.
// An Employee may exist without a linked account, never the reverse.
//
// Fields:
//
//	ID        – primary key identifier.
//	CompanyID – owning company account.
//	AccountID – linked member account once the invite is accepted (nullable).
//	Email     – invitee email, stored lower-cased.
//	Name      – display name on the roster.
//	Position  – free-form role/position label (nullable).
//	Status    – invited, active, inactive or deleted.
//	CreatedAt – timestamp of creation.
//	UpdatedAt – timestamp of last update.
type Employee struct {
	ID        uint64    // employees.id
	CompanyID uint64    // employees.company_id
	AccountID *uint64   // employees.account_id (nullable)
	Email     string    // employees.email
	Name      string    // employees.name
	Position  *string   // employees.position (nullable)
	Status    string    // employees.status
	CreatedAt time.Time // employees.created_at
	UpdatedAt time.Time // employees.updated_at
}
