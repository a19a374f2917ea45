package utils // package utils provides helpers for session token creation

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SessionToken is a signed JWT identifying an account, delivered to clients
// as an HttpOnly cookie (or usable as a Bearer header).  Exp records the UTC
// expiration time so callers can set a matching cookie lifetime.
type SessionToken struct {
	Token string
	Exp   time.Time
}

// NewSessionToken builds and signs an HS256 JWT for an account.  The claims
// carry the subject (account id), the account role and email, an expiration
// and an issued-at time.  Role and email ride along so the middleware can
// authorize without a database read on every request.
func NewSessionToken(secret string, accountID uint64, role, email string, ttlMin int) (SessionToken, error) {
	exp := time.Now().UTC().Add(time.Duration(ttlMin) * time.Minute)
	claims := jwt.MapClaims{
		"sub":   accountID,
		"role":  role,
		"email": email,
		"exp":   exp.Unix(),
		"iat":   time.Now().UTC().Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return SessionToken{}, err
	}
	return SessionToken{Token: signed, Exp: exp}, nil
}

// NewInviteToken returns the opaque token embedded in invitation links.
func NewInviteToken() string {
	return uuid.NewString()
}
