package handler

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/shiftlyhq/shiftly/internal/config"
	"github.com/shiftlyhq/shiftly/internal/model"
	"github.com/shiftlyhq/shiftly/internal/queue"
	"github.com/shiftlyhq/shiftly/internal/repository"
	notifier "github.com/shiftlyhq/shiftly/internal/service"
	"github.com/shiftlyhq/shiftly/internal/utils"
	"github.com/shiftlyhq/shiftly/internal/validate"
)

// RosterHandler implements the company-side roster endpoints: inviting,
// listing, editing and soft-deleting employees.
type RosterHandler struct {
	Cfg       config.Config
	DB        *sql.DB
	Employees *repository.EmployeeRepo
	Invites   *repository.InvitationRepo
	Accounts  *repository.AccountRepo
	Cache     *CacheBus
}

func NewRosterHandler(cfg config.Config, db *sql.DB, e *repository.EmployeeRepo, i *repository.InvitationRepo, a *repository.AccountRepo, cb *CacheBus) *RosterHandler {
	return &RosterHandler{Cfg: cfg, DB: db, Employees: e, Invites: i, Accounts: a, Cache: cb}
}

type inviteEmployeeReq struct {
	Email    string `json:"email" form:"email"`
	Name     string `json:"name" form:"name"`
	Position string `json:"position" form:"position"`
}

// Invite creates the roster row and its invitation token in one
// transaction, then publishes the invite notification.  Nothing stops a
// company from inviting the same email twice; each submission creates a
// fresh roster row, as in listings imported in bulk.
func (h *RosterHandler) Invite(c echo.Context) error {
	companyID, err := accountID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req inviteEmployeeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	f := validate.New()
	f.Require("email", req.Email)
	f.Email("email", req.Email)
	f.Require("name", req.Name)
	if f.Errors().Any() {
		return fieldErrors(c, f.Errors())
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	var position *string
	if p := strings.TrimSpace(req.Position); p != "" {
		position = &p
	}
	emp := model.Employee{
		CompanyID: companyID,
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		Name:      strings.TrimSpace(req.Name),
		Position:  position,
	}
	inv := model.Invitation{
		CompanyID: companyID,
		Email:     emp.Email,
		Token:     utils.NewInviteToken(),
		ExpiresAt: time.Now().UTC().AddDate(0, 0, h.Cfg.InviteTTLDays),
	}

	tx, err := h.DB.BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "invite failed"})
	}
	defer func() { _ = tx.Rollback() }()

	if err := h.Employees.CreateTx(ctx, tx, &emp); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "invite failed"})
	}
	inv.EmployeeID = emp.ID
	if err := h.Invites.CreateTx(ctx, tx, &inv); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "invite failed"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "invite failed"})
	}

	companyName := ""
	if a, err := h.Accounts.GetByID(ctx, companyID); err == nil && a.CompanyName != nil {
		companyName = *a.CompanyName
	}
	if err := notifier.Publish(ctx, queue.NotificationEvent{
		Kind:        queue.KindEmployeeInvited,
		CompanyID:   companyID,
		CompanyName: companyName,
		Email:       emp.Email,
		InviteToken: inv.Token,
	}); err != nil {
		log.Printf("roster: invite notification publish failed: %v", err)
	}
	h.Cache.Invalidate(ctx, "/v1/employees")

	return c.JSON(http.StatusCreated, echo.Map{
		"success":  "employee invited",
		"employee": emp,
		"token":    inv.Token,
	})
}

// List returns the company's roster, excluding soft-deleted rows.
func (h *RosterHandler) List(c echo.Context) error {
	companyID, err := accountID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	items, err := h.Employees.ListByCompany(c.Request().Context(), companyID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

type updateEmployeeReq struct {
	Name     string `json:"name" form:"name"`
	Position string `json:"position" form:"position"`
	Status   string `json:"status" form:"status"`
}

// Update edits a roster row. An invalid or missing id fails before any
// repository call.
func (h *RosterHandler) Update(c echo.Context) error {
	companyID, err := accountID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req updateEmployeeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	cur, err := h.Employees.GetByIDAndCompany(ctx, id, companyID)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "employee not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = cur.Name
	}
	position := cur.Position
	if p := strings.TrimSpace(req.Position); p != "" {
		position = &p
	}
	status := cur.Status
	if s := strings.TrimSpace(req.Status); s != "" {
		f := validate.New()
		f.OneOf("status", s, model.EmployeeInvited, model.EmployeeActive, model.EmployeeInactive)
		if f.Errors().Any() {
			return fieldErrors(c, f.Errors())
		}
		status = s
	}

	if err := h.Employees.Update(ctx, id, companyID, name, position, status); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "employee not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	h.Cache.Invalidate(ctx, "/v1/employees")
	return c.JSON(http.StatusOK, echo.Map{"success": "employee updated"})
}

// Delete soft-deletes a roster row; the record stays in storage for audit.
func (h *RosterHandler) Delete(c echo.Context) error {
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

	if err := h.Employees.SoftDelete(ctx, id, companyID); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "employee not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	h.Cache.Invalidate(ctx, "/v1/employees")
	return c.NoContent(http.StatusNoContent)
}

// Availability returns the stored weekly availability of one roster
// member, for the company's planning view.
func (h *RosterHandler) Availability(avail *repository.AvailabilityRepo) echo.HandlerFunc {
	return func(c echo.Context) error {
		companyID, err := accountID(c)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
		}
		id, err := pathID(c)
		if err != nil || id == 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
		}
		ctx := c.Request().Context()
		if _, err := h.Employees.GetByIDAndCompany(ctx, id, companyID); err != nil {
			if err == repository.ErrNotFound {
				return c.JSON(http.StatusNotFound, echo.Map{"error": "employee not found"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
		}
		a, err := avail.GetByEmployee(ctx, id)
		if err != nil {
			if err == repository.ErrNotFound {
				return c.JSON(http.StatusNotFound, echo.Map{"error": "no availability recorded"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
		}
		return c.JSON(http.StatusOK, echo.Map{"availability": a})
	}
}
