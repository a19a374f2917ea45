package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/shiftlyhq/shiftly/internal/model"
)

// ConversationRepo provides persistence for two-party message threads.
// The participant pair is stored ordered so the (participant_a,
// participant_b) unique index collapses both directions to one row.
type ConversationRepo struct{ db *sql.DB }

func NewConversationRepo(db *sql.DB) *ConversationRepo { return &ConversationRepo{db: db} }

const convCols = "id,participant_a,participant_b,last_message,last_message_at,unread_a,unread_b,created_at,updated_at"

func orderPair(x, y uint64) (uint64, uint64) {
	if x > y {
		return y, x
	}
	return x, y
}

// FindOrCreate returns the conversation between two accounts, creating it
// when absent.  A concurrent create losing the unique-index race falls back
// to reading the winner's row.
func (r *ConversationRepo) FindOrCreate(ctx context.Context, accountID, peerID uint64) (model.Conversation, error) {
	a, b := orderPair(accountID, peerID)
	conv, err := r.getByPair(ctx, a, b)
	if err == nil {
		return conv, nil
	}
	if err != ErrNotFound {
		return conv, err
	}
	id := uuid.NewString()
	_, err = r.db.ExecContext(ctx,
		"INSERT INTO conversations (id, participant_a, participant_b) VALUES (?,?,?)",
		id, a, b)
	if err != nil && !isDupKey(err) {
		return model.Conversation{}, err
	}
	return r.getByPair(ctx, a, b)
}

func (r *ConversationRepo) getByPair(ctx context.Context, a, b uint64) (model.Conversation, error) {
	var c model.Conversation
	err := r.db.QueryRowContext(ctx,
		"SELECT "+convCols+" FROM conversations WHERE participant_a=? AND participant_b=? LIMIT 1", a, b).
		Scan(&c.ID, &c.ParticipantA, &c.ParticipantB, &c.LastMessage, &c.LastMessageAt, &c.UnreadA, &c.UnreadB, &c.CreatedAt, &c.UpdatedAt)
	if err == sql.ErrNoRows {
		return c, ErrNotFound
	}
	return c, err
}

// GetForParticipant fetches a conversation and verifies the caller is one
// of its two participants, returning ErrForbidden otherwise.
func (r *ConversationRepo) GetForParticipant(ctx context.Context, id string, accountID uint64) (model.Conversation, error) {
	var c model.Conversation
	err := r.db.QueryRowContext(ctx,
		"SELECT "+convCols+" FROM conversations WHERE id=? LIMIT 1", id).
		Scan(&c.ID, &c.ParticipantA, &c.ParticipantB, &c.LastMessage, &c.LastMessageAt, &c.UnreadA, &c.UnreadB, &c.CreatedAt, &c.UpdatedAt)
	if err == sql.ErrNoRows {
		return c, ErrNotFound
	}
	if err != nil {
		return c, err
	}
	if c.ParticipantA != accountID && c.ParticipantB != accountID {
		return model.Conversation{}, ErrForbidden
	}
	return c, nil
}

// ListForAccount returns the account's conversations, most recently active
// first.
func (r *ConversationRepo) ListForAccount(ctx context.Context, accountID uint64) ([]model.Conversation, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+convCols+" FROM conversations WHERE participant_a=? OR participant_b=? ORDER BY COALESCE(last_message_at, created_at) DESC",
		accountID, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Conversation, 0)
	for rows.Next() {
		var c model.Conversation
		if err := rows.Scan(&c.ID, &c.ParticipantA, &c.ParticipantB, &c.LastMessage, &c.LastMessageAt, &c.UnreadA, &c.UnreadB, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// AppendMessage inserts a message and updates the conversation summary and
// the receiving side's unread counter in one transaction.  The caller has
// already verified participation via GetForParticipant.
func (r *ConversationRepo) AppendMessage(ctx context.Context, conv model.Conversation, senderID uint64, body string, now time.Time) (model.Message, error) {
	msg := model.Message{
		ID:             uuid.NewString(),
		ConversationID: conv.ID,
		SenderID:       senderID,
		Body:           body,
		CreatedAt:      now.UTC(),
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Message{}, err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO messages (id, conversation_id, sender_id, body, created_at) VALUES (?,?,?,?,?)",
		msg.ID, msg.ConversationID, msg.SenderID, msg.Body, msg.CreatedAt); err != nil {
		return model.Message{}, err
	}

	// The sender's side stays read; the peer's counter goes up.
	counter := "unread_a"
	if senderID == conv.ParticipantA {
		counter = "unread_b"
	}
	if _, err := tx.ExecContext(ctx,
		"UPDATE conversations SET last_message=?, last_message_at=?, "+counter+" = "+counter+" + 1 WHERE id=?",
		body, msg.CreatedAt, conv.ID); err != nil {
		return model.Message{}, err
	}
	if err := tx.Commit(); err != nil {
		return model.Message{}, err
	}
	return msg, nil
}

// ListMessages returns a conversation's messages in ascending order.
func (r *ConversationRepo) ListMessages(ctx context.Context, conversationID string) ([]model.Message, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id,conversation_id,sender_id,body,created_at FROM messages WHERE conversation_id=? ORDER BY created_at ASC, id ASC",
		conversationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Message, 0)
	for rows.Next() {
		var m model.Message
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.SenderID, &m.Body, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// MarkRead resets the caller's unread counter on a conversation.
func (r *ConversationRepo) MarkRead(ctx context.Context, conv model.Conversation, accountID uint64) error {
	counter := "unread_b"
	if accountID == conv.ParticipantA {
		counter = "unread_a"
	}
	_, err := r.db.ExecContext(ctx,
		"UPDATE conversations SET "+counter+" = 0 WHERE id=?", conv.ID)
	return err
}
