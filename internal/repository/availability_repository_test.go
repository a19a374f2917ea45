package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestAvailabilityUpsertReplaces(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	days := `{"monday":["09:00-17:00"]}`
	mock.ExpectExec("INSERT INTO availabilities .+ ON DUPLICATE KEY UPDATE days = VALUES\\(days\\), note = VALUES\\(note\\)").
		WithArgs(uint64(12), days, nil).
		WillReturnResult(sqlmock.NewResult(0, 2))

	repo := NewAvailabilityRepo(db)
	if err := repo.Upsert(context.Background(), 12, days, nil); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAvailabilityGetMiss(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT .+ FROM availabilities WHERE employee_id=\\?").
		WithArgs(uint64(12)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "employee_id", "days", "note", "created_at", "updated_at"}))

	repo := NewAvailabilityRepo(db)
	if _, err := repo.GetByEmployee(context.Background(), 12); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
