// Package queue defines message payloads exchanged over the message broker.
package queue

// Notification kinds published to the shiftly.notifications queue.
const (
	KindEmployeeInvited    = "employee.invited"
	KindEventInvitation    = "event.invitation"
	KindShiftIssueResolved = "shift_issue.resolved"
	KindMessageSent        = "message.sent"
)

// NotificationEvent is published whenever something a person should hear
// about happens: an invite goes out, an event invitation is issued, a shift
// issue gets resolved, a chat message arrives.  It carries enough for
// downstream consumers (mailer, notification log) without querying the
// primary database.  Fields irrelevant to a kind stay zero.
type NotificationEvent struct {
	Kind        string `json:"kind"`
	CompanyID   uint64 `json:"company_id,omitempty"`
	CompanyName string `json:"company_name,omitempty"`
	Email       string `json:"email,omitempty"` // recipient email
	InviteToken string `json:"invite_token,omitempty"`
	EventID     uint64 `json:"event_id,omitempty"`
	EventTitle  string `json:"event_title,omitempty"`
	IssueID     uint64 `json:"issue_id,omitempty"`
	AccountID   uint64 `json:"account_id,omitempty"` // recipient account
	Summary     string `json:"summary,omitempty"`
	OccurredAt  string `json:"occurred_at"`
}
