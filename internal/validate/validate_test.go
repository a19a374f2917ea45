package validate

import (
	"strings"
	"testing"
)

func TestPasswordPolicy(t *testing.T) {
	cases := []struct {
		name     string
		password string
		wantMsg  string
	}{
		{"too short", "Ab1!", "password must be between 6 and 32 characters"},
		{"too short multibyte", "Aé1!é", "password must be between 6 and 32 characters"},
		{"too long", "Aa1!" + strings.Repeat("x", 40), "password must be between 6 and 32 characters"},
		{"32 multibyte chars", "Aé1!" + strings.Repeat("é", 28), ""},
		{"no uppercase", "abc123!", "password must contain an uppercase letter, a digit and a symbol"},
		{"no digit", "Abcdef!", "password must contain an uppercase letter, a digit and a symbol"},
		{"no symbol", "Abcdef1", "password must contain an uppercase letter, a digit and a symbol"},
		{"valid", "Abcde1!", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := New()
			f.Password("password", tc.password)
			msgs := f.Errors()["password"]
			if tc.wantMsg == "" {
				if len(msgs) != 0 {
					t.Fatalf("expected no errors, got %v", msgs)
				}
				return
			}
			if len(msgs) != 1 || msgs[0] != tc.wantMsg {
				t.Fatalf("expected %q, got %v", tc.wantMsg, msgs)
			}
		})
	}
}

func TestRequireAndEmail(t *testing.T) {
	f := New()
	f.Require("email", "   ")
	f.Email("email", "")
	if msgs := f.Errors()["email"]; len(msgs) != 1 || msgs[0] != "email is required" {
		t.Fatalf("expected only the required error, got %v", msgs)
	}

	f = New()
	f.Email("email", "not-an-address")
	if msgs := f.Errors()["email"]; len(msgs) != 1 || msgs[0] != "invalid email address" {
		t.Fatalf("expected invalid address error, got %v", msgs)
	}

	f = New()
	f.Email("email", "person@example.com")
	if f.Errors().Any() {
		t.Fatalf("expected no errors, got %v", f.Errors())
	}
}

func TestPhone(t *testing.T) {
	f := New()
	f.Phone("phone", "+1 (555) 010-2030")
	if f.Errors().Any() {
		t.Fatalf("expected valid phone, got %v", f.Errors())
	}
	f = New()
	f.Phone("phone", "call me")
	if !f.Errors().Any() {
		t.Fatal("expected invalid phone error")
	}
}

func TestOneOf(t *testing.T) {
	f := New()
	f.OneOf("status", "active", "invited", "active", "inactive")
	if f.Errors().Any() {
		t.Fatalf("expected allowed choice, got %v", f.Errors())
	}
	f = New()
	f.OneOf("status", "deleted", "invited", "active", "inactive")
	if msgs := f.Errors()["status"]; len(msgs) != 1 {
		t.Fatalf("expected one error, got %v", msgs)
	}
}
