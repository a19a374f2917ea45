package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/shiftlyhq/shiftly/internal/model"
)

func TestAcceptTxGuards(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	// Pending and unexpired: one row flips.
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE invitations SET status=\\? WHERE id=\\? AND status=\\? AND expires_at > \\?").
		WithArgs(model.InviteAccepted, uint64(8), model.InvitePending, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	repo := NewInvitationRepo(db)
	tx, err := db.Begin()
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if err := repo.AcceptTx(context.Background(), tx, 8, time.Now()); err != nil {
		t.Fatalf("AcceptTx: %v", err)
	}
	if err := tx.Commit(); err != nil {
		t.Fatalf("Commit: %v", err)
	}

	// Already accepted (or expired): the guard matches nothing.
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE invitations SET status=\\?").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	tx, err = db.Begin()
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if err := repo.AcceptTx(context.Background(), tx, 8, time.Now()); err != ErrInviteInvalid {
		t.Fatalf("expected ErrInviteInvalid, got %v", err)
	}
	_ = tx.Rollback()

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestInvitationExpiry(t *testing.T) {
	now := time.Now()
	inv := model.Invitation{Status: model.InvitePending, ExpiresAt: now.Add(-time.Hour)}
	if !inv.Expired(now) {
		t.Fatal("pending invitation past its deadline should read expired")
	}
	inv.ExpiresAt = now.Add(time.Hour)
	if inv.Expired(now) {
		t.Fatal("pending invitation before its deadline should not read expired")
	}
	inv.Status = model.InviteAccepted
	inv.ExpiresAt = now.Add(-time.Hour)
	if inv.Expired(now) {
		t.Fatal("accepted invitation never reads expired")
	}
}
