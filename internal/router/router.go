// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/shiftlyhq/shiftly/internal/handler"
	"github.com/shiftlyhq/shiftly/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication.
// Currently it exposes only a health check for load balancers.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers authentication and onboarding routes.
// Unauthenticated operations live under /v1/auth; everything else requires
// a session.  The optional rate limiter runs after SessionAuth so its key
// carries the account id; on /v1/auth it falls back to IP keying.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, ob *handler.OnboardingHandler, jwtSecret string, rate echo.MiddlewareFunc) {
	g := e.Group("/v1/auth", optional(rate)...)
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	// Logout only clears cookies, so it does not demand a valid session.
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1", authChain(jwtSecret, rate)...)
	auth.GET("/me", a.Me)

	// Onboarding is a forward-only step machine.  Role gating for the
	// company-side steps happens in the handlers because the selected role
	// is what the steps themselves establish.
	auth.POST("/onboarding/role", ob.SelectRole)
	auth.POST("/onboarding/company", ob.CompanyDetails)
	auth.POST("/onboarding/goals", ob.Goals)
	auth.POST("/onboarding/complete", ob.Complete)
}

// authChain builds the middleware chain for authenticated groups: session
// verification first, then the rate limiter when one is configured.
func authChain(jwtSecret string, rate echo.MiddlewareFunc) []echo.MiddlewareFunc {
	chain := []echo.MiddlewareFunc{middleware.SessionAuth(jwtSecret)}
	if rate != nil {
		chain = append(chain, rate)
	}
	return chain
}

func optional(mw echo.MiddlewareFunc) []echo.MiddlewareFunc {
	if mw == nil {
		return nil
	}
	return []echo.MiddlewareFunc{mw}
}
