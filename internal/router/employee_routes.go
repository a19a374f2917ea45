package router

import (
	"github.com/labstack/echo/v4"

	"github.com/shiftlyhq/shiftly/internal/handler"
	"github.com/shiftlyhq/shiftly/internal/middleware"
	"github.com/shiftlyhq/shiftly/internal/model"
)

// RegisterEmployee registers invitation handling, the company switcher and
// the EMPLOYEE-scoped endpoints.
func RegisterEmployee(
	e *echo.Echo,
	inv *handler.InviteHandler,
	co *handler.CompanyHandler,
	av *handler.AvailabilityHandler,
	si *handler.ShiftIssueHandler,
	ev *handler.EventHandler,
	jwtSecret string,
	rate echo.MiddlewareFunc,
) {
	// Invitation inspection is public: the invite email links here before
	// the recipient has an account.
	e.GET("/v1/invitations/:token", inv.Inspect, optional(rate)...)

	// Acceptance needs a session but not yet the EMPLOYEE role; the
	// handler checks that the invite is addressed to the caller's email.
	auth := e.Group("/v1", authChain(jwtSecret, rate)...)
	auth.POST("/invitations/:token/accept", inv.Accept)

	// The company switcher is open to any session: an account's active
	// employments decide what it may select.
	auth.GET("/companies", co.List)
	auth.POST("/companies/select", co.Select)

	mw := append(authChain(jwtSecret, rate), middleware.RequireRole(model.RoleEmployee))
	g := e.Group("/v1", mw...)
	g.PUT("/availability", av.Put)
	g.GET("/availability", av.Get)
	g.POST("/shift-issues", si.Create)
	g.POST("/events/:id/respond", ev.Respond)
}
