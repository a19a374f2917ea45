package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/shiftlyhq/shiftly/internal/config"
	"github.com/shiftlyhq/shiftly/internal/middleware"
	"github.com/shiftlyhq/shiftly/internal/repository"
)

// CompanyHandler implements the company switcher for employees who belong
// to more than one company.
type CompanyHandler struct {
	Cfg       config.Config
	Employees *repository.EmployeeRepo
}

func NewCompanyHandler(cfg config.Config, e *repository.EmployeeRepo) *CompanyHandler {
	return &CompanyHandler{Cfg: cfg, Employees: e}
}

// List returns the companies where the caller holds an active employment.
func (h *CompanyHandler) List(c echo.Context) error {
	aid, err := accountID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	items, err := h.Employees.ListCompaniesForAccount(c.Request().Context(), aid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// Select persists the active company choice in a cookie.  A company id
// without an active employment for the caller is rejected and no cookie is
// set.
func (h *CompanyHandler) Select(c echo.Context) error {
	aid, err := accountID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req struct {
		CompanyID uint64 `json:"company_id" form:"company_id"`
	}
	if err := c.Bind(&req); err != nil || req.CompanyID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid company selection"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Employees.GetActiveByAccountAndCompany(ctx, aid, req.CompanyID); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid company selection"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	c.SetCookie(&http.Cookie{
		Name:     middleware.ActiveCompanyCookie,
		Value:    strconv.FormatUint(req.CompanyID, 10),
		Path:     "/",
		Domain:   h.Cfg.CookieDomain,
		MaxAge:   int((30 * 24 * time.Hour).Seconds()),
		HttpOnly: true,
		Secure:   h.Cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	return c.JSON(http.StatusOK, echo.Map{"success": "company selected"})
}
