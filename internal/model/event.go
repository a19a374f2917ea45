package model

import "time"

// EventAttendee statuses.
const (
	AttendeeInvited  = "invited"
	AttendeeAccepted = "accepted"
	AttendeeRejected = "rejected"
)

// Derived event statuses.  Never stored; computed from the event date
// against the current UTC time.
const (
	EventUpcoming = "upcoming"
	EventPast     = "past"
)

// Event represents a row in the `events` table.  Every event is owned by a
// company account.  Times are stored as strings in HH:MM form together with
// an IANA timezone name because the source system schedules by local wall
// clock, not absolute instants.
//
// Fields:
//
//	ID          – primary key identifier.
//	CompanyID   – owning company account.
//	Title       – event title.
//	Description – free-form description (nullable).
//	Date        – calendar date of the event.
//	StartTime   – local start time, "HH:MM".
//	EndTime     – local end time, "HH:MM".
//	Timezone    – IANA timezone name for the times above.
//	Location    – free-form venue text (nullable).
//	CreatedAt   – timestamp of creation.
//	UpdatedAt   – timestamp of last update.
type Event struct {
	ID          uint64    // events.id
	CompanyID   uint64    // events.company_id
	Title       string    // events.title
	Description *string   // events.description (nullable)
	Date        time.Time // events.event_date
	StartTime   string    // events.start_time
	EndTime     string    // events.end_time
	Timezone    string    // events.timezone
	Location    *string   // events.location (nullable)
	CreatedAt   time.Time // events.created_at
	UpdatedAt   time.Time // events.updated_at
}

// Status derives upcoming/past from the event date.  An event counts as
// upcoming through the end of its calendar day.
func (e Event) Status(now time.Time) string {
	if now.UTC().Truncate(24 * time.Hour).After(e.Date.UTC().Truncate(24 * time.Hour)) {
		return EventPast
	}
	return EventUpcoming
}

// EventAttendee is the join row between an event and an invited person in
// the `event_attendees` table.  Invites are keyed by email so people can be
// invited before they register; AccountID is linked once the email matches
// a registered account.  The (event_id, email) pair is unique.
type EventAttendee struct {
	ID        uint64    // event_attendees.id
	EventID   uint64    // event_attendees.event_id
	Email     string    // event_attendees.email
	AccountID *uint64   // event_attendees.account_id (nullable)
	Status    string    // event_attendees.status
	CreatedAt time.Time // event_attendees.created_at
	UpdatedAt time.Time // event_attendees.updated_at
}
