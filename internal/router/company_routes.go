package router

import (
	"github.com/labstack/echo/v4"

	"github.com/shiftlyhq/shiftly/internal/handler"
	"github.com/shiftlyhq/shiftly/internal/middleware"
	"github.com/shiftlyhq/shiftly/internal/model"
	"github.com/shiftlyhq/shiftly/internal/repository"
)

// RegisterCompany registers COMPANY-scoped endpoints under /v1.  All routes
// require a valid session and the COMPANY role.  The optional cache
// middleware serves repeated roster reads from Redis.
func RegisterCompany(
	e *echo.Echo,
	r *handler.RosterHandler,
	ev *handler.EventHandler,
	si *handler.ShiftIssueHandler,
	avail *repository.AvailabilityRepo,
	jwtSecret string,
	cache, rate echo.MiddlewareFunc,
) {
	mw := append(authChain(jwtSecret, rate), middleware.RequireRole(model.RoleCompany))
	g := e.Group("/v1", mw...)

	// ---- Roster ----
	g.POST("/employees", r.Invite)
	if cache != nil {
		g.GET("/employees", r.List, cache)
	} else {
		g.GET("/employees", r.List)
	}
	g.PUT("/employees/:id", r.Update)
	g.PATCH("/employees/:id", r.Update)
	g.DELETE("/employees/:id", r.Delete)
	g.GET("/employees/:id/availability", r.Availability(avail))

	// ---- Events ----
	g.POST("/events", ev.Create)
	g.GET("/events/:id", ev.Get)
	g.PUT("/events/:id", ev.Update)
	g.PATCH("/events/:id", ev.Update)
	g.DELETE("/events/:id", ev.Delete)
	g.POST("/events/:id/attendees", ev.AddAttendee)
	g.GET("/events/:id/attendees", ev.ListAttendees)

	// ---- Shift issues ----
	g.POST("/shift-issues/:id/resolve", si.Resolve)
}
