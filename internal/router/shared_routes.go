package router

import (
	"github.com/labstack/echo/v4"

	"github.com/shiftlyhq/shiftly/internal/handler"
)

// RegisterShared registers endpoints both roles use: the role-aware event
// and shift-issue lists, the address book and messaging.  The optional
// cache middleware serves repeated list reads from Redis.
func RegisterShared(
	e *echo.Echo,
	ev *handler.EventHandler,
	si *handler.ShiftIssueHandler,
	ct *handler.ContactHandler,
	cv *handler.ConversationHandler,
	jwtSecret string,
	cache, rate echo.MiddlewareFunc,
) {
	g := e.Group("/v1", authChain(jwtSecret, rate)...)

	// Role-aware list views: companies see what they own, employees what
	// they are invited to or reported.
	if cache != nil {
		g.GET("/events", ev.List, cache)
		g.GET("/shift-issues", si.List, cache)
		g.GET("/contacts", ct.List, cache)
	} else {
		g.GET("/events", ev.List)
		g.GET("/shift-issues", si.List)
		g.GET("/contacts", ct.List)
	}

	// ---- Contacts ----
	g.POST("/contacts", ct.Create)
	g.PUT("/contacts/:id", ct.Update)
	g.PATCH("/contacts/:id", ct.Update)
	g.DELETE("/contacts/:id", ct.Delete)

	// ---- Messaging ----
	g.POST("/conversations", cv.Start)
	g.GET("/conversations", cv.List)
	g.GET("/conversations/:id/messages", cv.Messages)
	g.POST("/conversations/:id/messages", cv.Send)
}
