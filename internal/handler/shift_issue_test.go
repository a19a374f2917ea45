package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"

	"github.com/shiftlyhq/shiftly/internal/model"
	"github.com/shiftlyhq/shiftly/internal/repository"
)

func TestResolveAsEmployeeMutatesNothing(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	h := NewShiftIssueHandler(
		repository.NewShiftIssueRepo(db),
		repository.NewEmployeeRepo(db),
		nil)

	req := httptest.NewRequest(http.MethodPost, "/v1/shift-issues/2/resolve", nil)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("2")
	c.Set("account_id", uint64(5))
	c.Set("role", model.RoleEmployee)

	if err := h.Resolve(c); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "forbidden") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
	// The refused caller must leave the issue untouched.
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("storage was touched: %v", err)
	}
}
