package model

import "time"

// Conversation is a two-party thread in the `conversations` table.  The
// participant pair is stored ordered (ParticipantA < ParticipantB) so the
// unique index collapses both directions to one row.  Each side keeps its
// own unread counter; LastMessage/LastMessageAt summarize the newest
// message for list views without joining the messages table.
type Conversation struct {
	ID            string     // conversations.id (uuid)
	ParticipantA  uint64     // conversations.participant_a
	ParticipantB  uint64     // conversations.participant_b
	LastMessage   *string    // conversations.last_message (nullable)
	LastMessageAt *time.Time // conversations.last_message_at (nullable)
	UnreadA       uint32     // conversations.unread_a
	UnreadB       uint32     // conversations.unread_b
	CreatedAt     time.Time  // conversations.created_at
	UpdatedAt     time.Time  // conversations.updated_at
}

// Message belongs to exactly one conversation.
type Message struct {
	ID             string    // messages.id (uuid)
	ConversationID string    // messages.conversation_id
	SenderID       uint64    // messages.sender_id
	Body           string    // messages.body
	CreatedAt      time.Time // messages.created_at
}
