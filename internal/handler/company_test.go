package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"

	"github.com/shiftlyhq/shiftly/internal/middleware"
	"github.com/shiftlyhq/shiftly/internal/model"
	"github.com/shiftlyhq/shiftly/internal/repository"
)

func employeeTestRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "company_id", "account_id", "email", "name", "position", "status", "created_at", "updated_at"})
}

func TestSelectCompanyWithoutEmployment(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	// No active roster row for account 5 at company 9.
	mock.ExpectQuery("SELECT .+ FROM employees WHERE account_id=\\? AND company_id=\\? AND status=\\?").
		WithArgs(uint64(5), uint64(9), model.EmployeeActive).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	h := NewCompanyHandler(testConfig(), repository.NewEmployeeRepo(db))

	req := httptest.NewRequest(http.MethodPost, "/v1/companies/select", strings.NewReader(`{"company_id":9}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)
	c.Set("account_id", uint64(5))
	c.Set("role", model.RoleEmployee)

	if err := h.Select(c); err != nil {
		t.Fatalf("Select: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Invalid company selection") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == middleware.ActiveCompanyCookie {
			t.Fatalf("company cookie must not be set on rejection, got %v", ck)
		}
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSelectCompanySetsCookie(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT .+ FROM employees WHERE account_id=\\? AND company_id=\\? AND status=\\?").
		WithArgs(uint64(5), uint64(9), model.EmployeeActive).
		WillReturnRows(employeeTestRows().
			AddRow(3, 9, 5, "me@example.com", "Me", nil, model.EmployeeActive, time.Now(), time.Now()))

	h := NewCompanyHandler(testConfig(), repository.NewEmployeeRepo(db))

	req := httptest.NewRequest(http.MethodPost, "/v1/companies/select", strings.NewReader(`{"company_id":9}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)
	c.Set("account_id", uint64(5))
	c.Set("role", model.RoleEmployee)

	if err := h.Select(c); err != nil {
		t.Fatalf("Select: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var found bool
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == middleware.ActiveCompanyCookie && ck.Value == "9" {
			found = true
		}
	}
	if !found {
		t.Fatal("expected the company cookie to be set")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
