package handler

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/shiftlyhq/shiftly/internal/model"
	"github.com/shiftlyhq/shiftly/internal/queue"
	"github.com/shiftlyhq/shiftly/internal/repository"
	notifier "github.com/shiftlyhq/shiftly/internal/service"
	"github.com/shiftlyhq/shiftly/internal/validate"
)

// EventHandler implements scheduling: company-owned events plus the
// email-keyed attendee invitations and their accept/reject responses.
type EventHandler struct {
	Events    *repository.EventRepo
	Attendees *repository.AttendeeRepo
	Accounts  *repository.AccountRepo
	Cache     *CacheBus
}

func NewEventHandler(e *repository.EventRepo, a *repository.AttendeeRepo, acc *repository.AccountRepo, cb *CacheBus) *EventHandler {
	return &EventHandler{Events: e, Attendees: a, Accounts: acc, Cache: cb}
}

type eventReq struct {
	Title       string  `json:"title" form:"title"`
	Description *string `json:"description" form:"description"`
	Date        string  `json:"date" form:"date"` // YYYY-MM-DD
	StartTime   string  `json:"start_time" form:"start_time"`
	EndTime     string  `json:"end_time" form:"end_time"`
	Timezone    string  `json:"timezone" form:"timezone"`
	Location    *string `json:"location" form:"location"`
}

const clockLayout = "15:04"

// validateEvent runs the shared field checks for create and update.
func validateEvent(req eventReq) validate.Errors {
	f := validate.New()
	f.Require("title", req.Title)
	f.Require("date", req.Date)
	f.Require("start_time", req.StartTime)
	f.Require("end_time", req.EndTime)
	f.Require("timezone", req.Timezone)
	if req.Date != "" {
		if _, err := time.Parse("2006-01-02", req.Date); err != nil {
			f.Errors().Add("date", "date must be YYYY-MM-DD")
		}
	}
	for field, v := range map[string]string{"start_time": req.StartTime, "end_time": req.EndTime} {
		if v == "" {
			continue
		}
		if _, err := time.Parse(clockLayout, v); err != nil {
			f.Errors().Add(field, field+" must be HH:MM")
		}
	}
	if req.Timezone != "" {
		if _, err := time.LoadLocation(req.Timezone); err != nil {
			f.Errors().Add("timezone", "unknown timezone")
		}
	}
	return f.Errors()
}

type eventPart struct {
	ID          uint64  `json:"id"`
	CompanyID   uint64  `json:"company_id"`
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	Date        string  `json:"date"`
	StartTime   string  `json:"start_time"`
	EndTime     string  `json:"end_time"`
	Timezone    string  `json:"timezone"`
	Location    *string `json:"location,omitempty"`
	Status      string  `json:"status"`
}

func toEventPart(e model.Event, now time.Time) eventPart {
	return eventPart{
		ID:          e.ID,
		CompanyID:   e.CompanyID,
		Title:       e.Title,
		Description: e.Description,
		Date:        e.Date.UTC().Format("2006-01-02"),
		StartTime:   e.StartTime,
		EndTime:     e.EndTime,
		Timezone:    e.Timezone,
		Location:    e.Location,
		Status:      e.Status(now),
	}
}

// Create adds an event to the company's schedule.
func (h *EventHandler) Create(c echo.Context) error {
	companyID, err := accountID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req eventReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if errs := validateEvent(req); errs.Any() {
		return fieldErrors(c, errs)
	}
	date, _ := time.Parse("2006-01-02", req.Date)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	ev := model.Event{
		CompanyID:   companyID,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Date:        date,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Timezone:    req.Timezone,
		Location:    req.Location,
	}
	if err := h.Events.Create(ctx, &ev); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	h.Cache.Invalidate(ctx, "/v1/events")
	return c.JSON(http.StatusCreated, toEventPart(ev, time.Now()))
}

// List returns the caller's schedule.  Companies see the events they own;
// employees see the events their email is invited to.  An optional
// ?status=upcoming|past filter narrows by the derived status.
func (h *EventHandler) List(c echo.Context) error {
	aid, err := accountID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	status := c.QueryParam("status")

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	var events []model.Event
	if accountRole(c) == model.RoleCompany {
		events, err = h.Events.ListByCompany(ctx, aid, status)
	} else {
		events, err = h.Events.ListForInvitee(ctx, accountEmail(c), status)
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	now := time.Now()
	items := make([]eventPart, 0, len(events))
	for _, e := range events {
		items = append(items, toEventPart(e, now))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// Get returns one event with its attendee list, company scope.
func (h *EventHandler) Get(c echo.Context) error {
	companyID, err := accountID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	ev, err := h.Events.GetByIDAndCompany(ctx, id, companyID)
	if err == repository.ErrNotFound {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	attendees, err := h.Attendees.ListByEvent(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"event":     toEventPart(ev, time.Now()),
		"attendees": attendees,
	})
}

// Update edits an event's schedule fields under the company's scope.
func (h *EventHandler) Update(c echo.Context) error {
	companyID, err := accountID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req eventReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if errs := validateEvent(req); errs.Any() {
		return fieldErrors(c, errs)
	}
	date, _ := time.Parse("2006-01-02", req.Date)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	ev := model.Event{
		ID:          id,
		CompanyID:   companyID,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Date:        date,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Timezone:    req.Timezone,
		Location:    req.Location,
	}
	if err := h.Events.Update(ctx, &ev); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	h.Cache.Invalidate(ctx, "/v1/events")
	return c.JSON(http.StatusOK, toEventPart(ev, time.Now()))
}

// Delete removes an event and, through the cascade, its attendee rows.
func (h *EventHandler) Delete(c echo.Context) error {
	companyID, err := accountID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Events.Delete(ctx, id, companyID); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	h.Cache.Invalidate(ctx, "/v1/events")
	return c.NoContent(http.StatusNoContent)
}

// ListAttendees returns an event's attendee rows under the company's scope.
func (h *EventHandler) ListAttendees(c echo.Context) error {
	companyID, err := accountID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Events.GetByIDAndCompany(ctx, id, companyID); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	items, err := h.Attendees.ListByEvent(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

type attendeeReq struct {
	Email string `json:"email" form:"email"`
}

// AddAttendee invites an email to an event.  The upsert keeps the invite
// idempotent: re-adding the same address leaves the existing row alone.
func (h *EventHandler) AddAttendee(c echo.Context) error {
	companyID, err := accountID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req attendeeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	f := validate.New()
	f.Require("email", req.Email)
	f.Email("email", req.Email)
	if f.Errors().Any() {
		return fieldErrors(c, f.Errors())
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	ev, err := h.Events.GetByIDAndCompany(ctx, id, companyID)
	if err == repository.ErrNotFound {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	// Link the account up front when the address already belongs to one.
	var linked *uint64
	if a, err := h.Accounts.GetByEmail(ctx, email); err == nil {
		linked = &a.ID
	}
	if err := h.Attendees.Upsert(ctx, id, email, linked); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	if err := notifier.Publish(ctx, queue.NotificationEvent{
		Kind:       queue.KindEventInvitation,
		CompanyID:  companyID,
		Email:      email,
		EventID:    ev.ID,
		EventTitle: ev.Title,
	}); err != nil {
		log.Printf("event: invitation notification publish failed: %v", err)
	}

	h.Cache.Invalidate(ctx, "/v1/events")
	return c.JSON(http.StatusCreated, echo.Map{"success": "attendee invited"})
}

type respondReq struct {
	Status string `json:"status" form:"status"`
}

// Respond records the caller's accept or reject for an event invitation
// addressed to their email.  Only an invited row can transition.
func (h *EventHandler) Respond(c echo.Context) error {
	aid, err := accountID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req respondReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	f := validate.New()
	f.OneOf("status", req.Status, model.AttendeeAccepted, model.AttendeeRejected)
	if f.Errors().Any() {
		return fieldErrors(c, f.Errors())
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	err = h.Attendees.Respond(ctx, id, accountEmail(c), aid, req.Status)
	switch err {
	case nil:
	case repository.ErrNotFound:
		return c.JSON(http.StatusNotFound, echo.Map{"error": "invitation not found"})
	case repository.ErrConflict:
		return c.JSON(http.StatusConflict, echo.Map{"error": "invitation already answered"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	h.Cache.Invalidate(ctx, "/v1/events")
	return c.JSON(http.StatusOK, echo.Map{"success": "response recorded"})
}
