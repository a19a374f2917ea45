package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/shiftlyhq/shiftly/internal/utils"
)

func TestSessionAuthFromCookie(t *testing.T) {
	tok, err := utils.NewSessionToken("secret", 5, "EMPLOYEE", "me@example.com", 30)
	if err != nil {
		t.Fatalf("NewSessionToken: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: tok.Token})
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)

	var gotID uint64
	var gotRole, gotEmail string
	next := func(c echo.Context) error {
		gotID, _ = c.Get("account_id").(uint64)
		gotRole, _ = c.Get("role").(string)
		gotEmail, _ = c.Get("email").(string)
		return c.NoContent(http.StatusOK)
	}
	if err := SessionAuth("secret")(next)(c); err != nil {
		t.Fatalf("SessionAuth: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotID != 5 || gotRole != "EMPLOYEE" || gotEmail != "me@example.com" {
		t.Fatalf("claims not propagated: id=%d role=%q email=%q", gotID, gotRole, gotEmail)
	}
}

func TestSessionAuthRejectsBadToken(t *testing.T) {
	for name, decorate := range map[string]func(*http.Request){
		"no credentials": func(_ *http.Request) {},
		"garbage cookie": func(r *http.Request) {
			r.AddCookie(&http.Cookie{Name: SessionCookie, Value: "garbage"})
		},
		"wrong secret": func(r *http.Request) {
			tok, _ := utils.NewSessionToken("other-secret", 5, "EMPLOYEE", "me@example.com", 30)
			r.Header.Set("Authorization", "Bearer "+tok.Token)
		},
	} {
		req := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
		decorate(req)
		rec := httptest.NewRecorder()
		c := echo.New().NewContext(req, rec)

		next := func(c echo.Context) error {
			t.Fatalf("%s: handler must not run", name)
			return nil
		}
		if err := SessionAuth("secret")(next)(c); err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401, got %d", name, rec.Code)
		}
	}
}

func TestRequireRole(t *testing.T) {
	run := func(role string, allowed ...string) int {
		req := httptest.NewRequest(http.MethodGet, "/v1/employees", nil)
		rec := httptest.NewRecorder()
		c := echo.New().NewContext(req, rec)
		if role != "" {
			c.Set("role", role)
		}
		next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
		if err := RequireRole(allowed...)(next)(c); err != nil {
			t.Fatalf("RequireRole: %v", err)
		}
		return rec.Code
	}

	if code := run("COMPANY", "COMPANY"); code != http.StatusOK {
		t.Fatalf("allowed role rejected: %d", code)
	}
	if code := run("EMPLOYEE", "COMPANY"); code != http.StatusForbidden {
		t.Fatalf("disallowed role admitted: %d", code)
	}
	if code := run("", "COMPANY"); code != http.StatusForbidden {
		t.Fatalf("missing role admitted: %d", code)
	}
}
