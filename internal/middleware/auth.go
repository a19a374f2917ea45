package middleware // middleware provides shared request processing for handlers

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// SessionCookie is the name of the cookie carrying the signed session
// token.  ActiveCompanyCookie persists an employee's selected company when
// they belong to more than one.
const (
	SessionCookie       = "shiftly_session"
	ActiveCompanyCookie = "active_company"
)

// SessionAuth returns an Echo middleware that resolves the calling account
// from the session cookie, or from a Bearer Authorization header for
// non-browser clients.  On success it stores the account id, role and email
// claims in the request context under "account_id", "role" and "email";
// otherwise the request is rejected with 401 before reaching any handler.
func SessionAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := ""
			if ck, err := c.Cookie(SessionCookie); err == nil && ck.Value != "" {
				raw = ck.Value
			} else if auth := c.Request().Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
				raw = strings.TrimPrefix(auth, "Bearer ")
			}
			if raw == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
			}

			tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, echo.ErrUnauthorized
				}
				return []byte(secret), nil
			})
			if err != nil || !tok.Valid {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid session"})
			}
			claims, ok := tok.Claims.(jwt.MapClaims)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid session"})
			}

			// JWT numbers decode as float64.
			sub, ok := claims["sub"].(float64)
			if !ok || sub <= 0 {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid session"})
			}
			role, _ := claims["role"].(string)
			email, _ := claims["email"].(string)

			c.Set("account_id", uint64(sub))
			c.Set("role", role)
			c.Set("email", email)
			return next(c)
		}
	}
}
