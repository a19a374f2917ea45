package handler

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"

	"github.com/shiftlyhq/shiftly/internal/model"
	"github.com/shiftlyhq/shiftly/internal/repository"
)

func rosterHandlerOver(db *sql.DB) *RosterHandler {
	return NewRosterHandler(testConfig(), db,
		repository.NewEmployeeRepo(db),
		repository.NewInvitationRepo(db),
		repository.NewAccountRepo(db),
		nil)
}

func TestUpdateEmployeeBadIDFailsBeforeLookup(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	h := rosterHandlerOver(db)

	for _, id := range []string{"", "abc", "0"} {
		req := httptest.NewRequest(http.MethodPut, "/v1/employees/"+id, strings.NewReader(`{"name":"X"}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := echo.New().NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues(id)
		c.Set("account_id", uint64(7))
		c.Set("role", model.RoleCompany)

		if err := h.Update(c); err != nil {
			t.Fatalf("Update(%q): %v", id, err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("Update(%q): expected 400, got %d", id, rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "invalid id") {
			t.Fatalf("Update(%q): unexpected body %s", id, rec.Body.String())
		}
	}
	// The malformed ids never reach storage.
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("storage was touched: %v", err)
	}
}

func TestInviteEmployeeValidation(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	h := rosterHandlerOver(db)

	req := httptest.NewRequest(http.MethodPost, "/v1/employees", strings.NewReader(`{"email":"not-an-address"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)
	c.Set("account_id", uint64(7))
	c.Set("role", model.RoleCompany)

	if err := h.Invite(c); err != nil {
		t.Fatalf("Invite: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("storage was touched: %v", err)
	}
}
