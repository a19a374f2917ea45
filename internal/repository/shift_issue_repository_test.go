package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/shiftlyhq/shiftly/internal/model"
)

func TestResolveAlreadyResolved(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("UPDATE shift_issues SET status=\\?, resolved_by=\\?, resolved_at=\\? WHERE id=\\? AND company_id=\\? AND status=\\?").
		WithArgs(model.IssueResolved, uint64(7), sqlmock.AnyArg(), uint64(2), uint64(7), model.IssuePending).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT status FROM shift_issues").
		WithArgs(uint64(2), uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow(model.IssueResolved))

	repo := NewShiftIssueRepo(db)
	if err := repo.Resolve(context.Background(), 2, 7, 7, time.Now()); err != ErrConflict {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestResolveOtherCompanyIssue(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("UPDATE shift_issues SET status=\\?").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT status FROM shift_issues").
		WillReturnRows(sqlmock.NewRows([]string{"status"}))

	repo := NewShiftIssueRepo(db)
	if err := repo.Resolve(context.Background(), 2, 99, 99, time.Now()); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
