// Package repository defines error values shared across repositories.
// These sentinels let handlers branch on failure kind instead of parsing
// messages: ErrNotFound maps to 404, ErrForbidden to 403, ErrConflict to
// 409.  Raw driver errors never cross the repository boundary except as one
// of these values or a wrapped storage error.
package repository

import (
	"errors"
	"strings"
)

// ErrNotFound is returned when a referenced entity does not resolve under
// the caller's ownership scope.
var ErrNotFound = errors.New("not found")

// ErrForbidden is returned when the caller attempts an operation on a
// resource they do not own.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when an operation cannot proceed because of
// existing state, such as resolving a shift issue that is already resolved.
var ErrConflict = errors.New("conflict")

// ErrEmailExists is returned when registering with an email that already
// has an account.
var ErrEmailExists = errors.New("email already exists")

// ErrInviteInvalid is returned when an invitation is expired or has already
// been accepted.
var ErrInviteInvalid = errors.New("invitation is no longer valid")

// isDupKey reports whether err is a MySQL duplicate-key violation (1062).
func isDupKey(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "1062")
}
