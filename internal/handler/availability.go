package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/shiftlyhq/shiftly/internal/repository"
	"github.com/shiftlyhq/shiftly/internal/validate"
)

// AvailabilityHandler implements the employee-side weekly availability
// record: one upserted row per employment.
type AvailabilityHandler struct {
	Avail     *repository.AvailabilityRepo
	Employees *repository.EmployeeRepo
}

func NewAvailabilityHandler(a *repository.AvailabilityRepo, e *repository.EmployeeRepo) *AvailabilityHandler {
	return &AvailabilityHandler{Avail: a, Employees: e}
}

type availabilityReq struct {
	Days map[string][]string `json:"days"`
	Note *string             `json:"note"`
}

var weekdays = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

// Put replaces the caller's availability for their active employment.
func (h *AvailabilityHandler) Put(c echo.Context) error {
	aid, err := accountID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req availabilityReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	f := validate.New()
	if len(req.Days) == 0 {
		f.Errors().Add("days", "days is required")
	}
	for day := range req.Days {
		f.OneOf("days", day, weekdays...)
	}
	if f.Errors().Any() {
		return fieldErrors(c, f.Errors())
	}
	daysJSON, err := json.Marshal(req.Days)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
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
	if err := h.Avail.Upsert(ctx, emp.ID, string(daysJSON), req.Note); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": "availability saved"})
}

// Get returns the caller's availability for their active employment.  No
// record yet reads as an empty document rather than an error.
func (h *AvailabilityHandler) Get(c echo.Context) error {
	aid, err := accountID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
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
	a, err := h.Avail.GetByEmployee(ctx, emp.ID)
	if err == repository.ErrNotFound {
		return c.JSON(http.StatusOK, echo.Map{"days": map[string][]string{}, "note": nil})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	var days map[string][]string
	if err := json.Unmarshal([]byte(a.Days), &days); err != nil {
		days = map[string][]string{}
	}
	return c.JSON(http.StatusOK, echo.Map{"days": days, "note": a.Note, "updated_at": a.UpdatedAt})
}
