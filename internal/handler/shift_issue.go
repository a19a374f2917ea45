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

// ShiftIssueHandler implements shift issue reporting and resolution.
// Employees report against their active employment; only company accounts
// resolve.
type ShiftIssueHandler struct {
	Issues    *repository.ShiftIssueRepo
	Employees *repository.EmployeeRepo
	Cache     *CacheBus
}

func NewShiftIssueHandler(i *repository.ShiftIssueRepo, e *repository.EmployeeRepo, cb *CacheBus) *ShiftIssueHandler {
	return &ShiftIssueHandler{Issues: i, Employees: e, Cache: cb}
}

type issueReq struct {
	ShiftDate   string `json:"shift_date" form:"shift_date"` // YYYY-MM-DD
	Description string `json:"description" form:"description"`
}

// Create reports a shift issue under the caller's active company.
func (h *ShiftIssueHandler) Create(c echo.Context) error {
	aid, err := accountID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req issueReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	f := validate.New()
	f.Require("shift_date", req.ShiftDate)
	f.Require("description", req.Description)
	var shiftDate time.Time
	if req.ShiftDate != "" {
		shiftDate, err = time.Parse("2006-01-02", req.ShiftDate)
		if err != nil {
			f.Errors().Add("shift_date", "shift_date must be YYYY-MM-DD")
		}
	}
	if f.Errors().Any() {
		return fieldErrors(c, f.Errors())
	}

	companyID, err := activeCompanyID(c, h.Employees)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	emp, err := h.Employees.GetActiveByAccountAndCompany(ctx, aid, companyID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid company selection"})
	}

	issue := model.ShiftIssue{
		CompanyID:   companyID,
		EmployeeID:  emp.ID,
		ShiftDate:   shiftDate,
		Description: strings.TrimSpace(req.Description),
	}
	if err := h.Issues.Create(ctx, &issue); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	h.Cache.Invalidate(ctx, "/v1/shift-issues")
	return c.JSON(http.StatusCreated, issue)
}

// List returns the issues the caller may see: all of the company's for a
// company account, only the caller's own reports for an employee.
func (h *ShiftIssueHandler) List(c echo.Context) error {
	aid, err := accountID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	var items []model.ShiftIssue
	if accountRole(c) == model.RoleCompany {
		items, err = h.Issues.ListByCompany(ctx, aid)
	} else {
		items, err = h.Issues.ListByAccount(ctx, aid)
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// Resolve transitions a pending issue to resolved.  Company accounts only;
// an employee caller is refused before any lookup.
func (h *ShiftIssueHandler) Resolve(c echo.Context) error {
	companyID, err := accountID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	if accountRole(c) != model.RoleCompany {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	id, err := pathID(c)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	err = h.Issues.Resolve(ctx, id, companyID, companyID, time.Now())
	switch err {
	case nil:
	case repository.ErrNotFound:
		return c.JSON(http.StatusNotFound, echo.Map{"error": "shift issue not found"})
	case repository.ErrConflict:
		return c.JSON(http.StatusConflict, echo.Map{"error": "shift issue already resolved"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	if err := notifier.Publish(ctx, queue.NotificationEvent{
		Kind:      queue.KindShiftIssueResolved,
		CompanyID: companyID,
		IssueID:   id,
	}); err != nil {
		log.Printf("shift issue: resolve notification publish failed: %v", err)
	}

	h.Cache.Invalidate(ctx, "/v1/shift-issues")
	return c.JSON(http.StatusOK, echo.Map{"success": "shift issue resolved"})
}
