package utils

import "testing"

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("Secret1!", 4)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "Secret1!" {
		t.Fatal("hash equals plaintext")
	}
	if !VerifyPassword(hash, "Secret1!") {
		t.Fatal("expected matching password to verify")
	}
	if VerifyPassword(hash, "wrong") {
		t.Fatal("expected wrong password to fail")
	}
}
