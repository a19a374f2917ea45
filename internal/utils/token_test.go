package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestNewSessionTokenClaims(t *testing.T) {
	tok, err := NewSessionToken("test-secret", 42, "COMPANY", "owner@example.com", 30)
	if err != nil {
		t.Fatalf("NewSessionToken: %v", err)
	}
	if time.Until(tok.Exp) <= 0 {
		t.Fatalf("expected future expiration, got %v", tok.Exp)
	}

	parsed, err := jwt.Parse(tok.Token, func(tk *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("parse token: %v", err)
	}
	claims := parsed.Claims.(jwt.MapClaims)
	if sub, _ := claims["sub"].(float64); uint64(sub) != 42 {
		t.Fatalf("unexpected sub claim: %v", claims["sub"])
	}
	if claims["role"] != "COMPANY" {
		t.Fatalf("unexpected role claim: %v", claims["role"])
	}
	if claims["email"] != "owner@example.com" {
		t.Fatalf("unexpected email claim: %v", claims["email"])
	}
}

func TestNewInviteTokenUnique(t *testing.T) {
	a, b := NewInviteToken(), NewInviteToken()
	if a == "" || a == b {
		t.Fatalf("expected distinct non-empty tokens, got %q and %q", a, b)
	}
}
