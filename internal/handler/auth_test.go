package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"

	"github.com/shiftlyhq/shiftly/internal/config"
	"github.com/shiftlyhq/shiftly/internal/repository"
)

func testConfig() config.Config {
	return config.Config{
		Env:           "test",
		JWTSecret:     "test-secret",
		SessionTTLMin: 30,
		InviteTTLDays: 7,
		BcryptCost:    4,
	}
}

type fieldErrorResp struct {
	Error       string              `json:"error"`
	FieldErrors map[string][]string `json:"field_errors"`
}

func TestRegisterWeakPasswordTouchesNothing(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	h := NewAuthHandler(testConfig(), repository.NewAccountRepo(db))

	body := `{"email":"new@example.com","full_name":"New Person","password":"weak"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/register", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)

	if err := h.Register(c); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var resp fieldErrorResp
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	msgs := resp.FieldErrors["password"]
	if len(msgs) != 1 || msgs[0] != "password must be between 6 and 32 characters" {
		t.Fatalf("expected the complexity field error, got %v", msgs)
	}
	// No account row may be created for a rejected form.
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("storage was touched: %v", err)
	}
}

func TestRegisterMissingFields(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	h := NewAuthHandler(testConfig(), repository.NewAccountRepo(db))

	req := httptest.NewRequest(http.MethodPost, "/v1/auth/register", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)

	if err := h.Register(c); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var resp fieldErrorResp
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	for _, field := range []string{"email", "full_name", "password"} {
		if len(resp.FieldErrors[field]) == 0 {
			t.Fatalf("expected an error for %s, got %v", field, resp.FieldErrors)
		}
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("storage was touched: %v", err)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT .+ FROM accounts WHERE email=\\?").
		WithArgs("ghost@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	h := NewAuthHandler(testConfig(), repository.NewAccountRepo(db))

	body := `{"email":"ghost@example.com","password":"Secret1!"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/login", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)

	if err := h.Login(c); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
