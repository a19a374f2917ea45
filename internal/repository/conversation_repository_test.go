package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/shiftlyhq/shiftly/internal/model"
)

func errDup1062() error {
	return errors.New("Error 1062: Duplicate entry '3-9' for key 'uq_conversations_pair'")
}

func convRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "participant_a", "participant_b", "last_message", "last_message_at", "unread_a", "unread_b", "created_at", "updated_at"})
}

func TestFindOrCreateOrdersPair(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	now := time.Now()
	// Caller id higher than peer id: the lookup still uses the ordered
	// pair, so both directions find the same row.
	mock.ExpectQuery("SELECT .+ FROM conversations WHERE participant_a=\\? AND participant_b=\\?").
		WithArgs(uint64(3), uint64(9)).
		WillReturnRows(convRows().AddRow("abc", 3, 9, nil, nil, 0, 0, now, now))

	repo := NewConversationRepo(db)
	conv, err := repo.FindOrCreate(context.Background(), 9, 3)
	if err != nil {
		t.Fatalf("FindOrCreate: %v", err)
	}
	if conv.ParticipantA != 3 || conv.ParticipantB != 9 {
		t.Fatalf("pair not ordered: %+v", conv)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestFindOrCreateLosesInsertRace(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery("SELECT .+ FROM conversations WHERE participant_a=\\? AND participant_b=\\?").
		WithArgs(uint64(3), uint64(9)).
		WillReturnRows(convRows())
	mock.ExpectExec("INSERT INTO conversations").
		WithArgs(sqlmock.AnyArg(), uint64(3), uint64(9)).
		WillReturnError(errDup1062())
	mock.ExpectQuery("SELECT .+ FROM conversations WHERE participant_a=\\? AND participant_b=\\?").
		WithArgs(uint64(3), uint64(9)).
		WillReturnRows(convRows().AddRow("winner", 3, 9, nil, nil, 0, 0, now, now))

	repo := NewConversationRepo(db)
	conv, err := repo.FindOrCreate(context.Background(), 3, 9)
	if err != nil {
		t.Fatalf("FindOrCreate: %v", err)
	}
	if conv.ID != "winner" {
		t.Fatalf("expected the winner's row, got %+v", conv)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAppendMessageBumpsPeerUnread(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	conv := model.Conversation{ID: "abc", ParticipantA: 3, ParticipantB: 9}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO messages").
		WithArgs(sqlmock.AnyArg(), "abc", uint64(3), "hello", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	// Sender is participant A, so B's counter goes up.
	mock.ExpectExec("UPDATE conversations SET last_message=\\?, last_message_at=\\?, unread_b = unread_b \\+ 1").
		WithArgs("hello", sqlmock.AnyArg(), "abc").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	repo := NewConversationRepo(db)
	msg, err := repo.AppendMessage(context.Background(), conv, 3, "hello", time.Now())
	if err != nil {
		t.Fatalf("AppendMessage: %v", err)
	}
	if msg.ID == "" || msg.ConversationID != "abc" || msg.SenderID != 3 {
		t.Fatalf("unexpected message: %+v", msg)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGetForParticipantForbidden(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery("SELECT .+ FROM conversations WHERE id=\\?").
		WithArgs("abc").
		WillReturnRows(convRows().AddRow("abc", 3, 9, nil, nil, 0, 0, now, now))

	repo := NewConversationRepo(db)
	if _, err := repo.GetForParticipant(context.Background(), "abc", 42); err != ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
