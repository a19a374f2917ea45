package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"

	"github.com/shiftlyhq/shiftly/internal/repository"
)

func startContext(t *testing.T, body string, accountID uint64) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/v1/conversations", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)
	c.Set("account_id", accountID)
	return c, rec
}

func TestStartWithUnknownPeerCreatesNothing(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	h := NewConversationHandler(repository.NewConversationRepo(db), repository.NewAccountRepo(db))

	// Peer lookup comes back empty; no conversation insert may follow.
	mock.ExpectQuery("SELECT .+ FROM accounts WHERE id=\\?").
		WithArgs(uint64(999)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	c, rec := startContext(t, `{"peer_id":999}`, 4)
	if err := h.Start(c); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var resp fieldErrorResp
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if msgs := resp.FieldErrors["peer_id"]; len(msgs) != 1 || msgs[0] != "peer account does not exist" {
		t.Fatalf("expected peer_id field error, got %v", resp.FieldErrors)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("conversation storage was touched: %v", err)
	}
}

func TestStartWithSelfPeer(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	h := NewConversationHandler(repository.NewConversationRepo(db), repository.NewAccountRepo(db))

	c, rec := startContext(t, `{"peer_id":4}`, 4)
	if err := h.Start(c); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("storage was touched: %v", err)
	}
}
