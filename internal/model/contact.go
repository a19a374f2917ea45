package model

import "time"

// Contact statuses.
const (
	ContactActive  = "active"
	ContactDeleted = "deleted"
)

// Contact is an address-book row in the `contacts` table, owned by one
// account and independent of the roster.  Soft-deleted via Status.
type Contact struct {
	ID        uint64    // contacts.id
	OwnerID   uint64    // contacts.owner_id
	Name      string    // contacts.name
	Email     *string   // contacts.email (nullable)
	Phone     *string   // contacts.phone (nullable)
	Status    string    // contacts.status
	CreatedAt time.Time // contacts.created_at
	UpdatedAt time.Time // contacts.updated_at
}
