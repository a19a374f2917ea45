package model

import "time"

// Invitation statuses.  Expiry is logical: a pending invitation whose
// ExpiresAt has passed is treated as expired at read time without a write.
const (
	InvitePending  = "pending"
	InviteAccepted = "accepted"
	InviteExpired  = "expired"
)

// Invitation is a token-based invite row in the `invitations` table.  One
// invitation belongs to one Employee roster row; the token travels in the
// invite link and is unique.
type Invitation struct {
	ID         uint64    // invitations.id
	EmployeeID uint64    // invitations.employee_id
	CompanyID  uint64    // invitations.company_id
	Email      string    // invitations.email
	Token      string    // invitations.token (uuid, unique)
	Status     string    // invitations.status
	ExpiresAt  time.Time // invitations.expires_at
	CreatedAt  time.Time // invitations.created_at
}

// Expired reports whether a pending invitation is past its validity window
// at the given instant.
func (i Invitation) Expired(now time.Time) bool {
	return i.Status == InvitePending && now.After(i.ExpiresAt)
}
