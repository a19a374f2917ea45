package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/shiftlyhq/shiftly/internal/config"
	"github.com/shiftlyhq/shiftly/internal/model"
	"github.com/shiftlyhq/shiftly/internal/repository"
	"github.com/shiftlyhq/shiftly/internal/utils"
	"github.com/shiftlyhq/shiftly/internal/validate"
)

// OnboardingHandler walks an account through the explicit onboarding steps:
// role selection, then for companies details -> goals -> roster import;
// employees wait for an invite instead.
type OnboardingHandler struct {
	Cfg      config.Config
	Accounts *repository.AccountRepo
}

func NewOnboardingHandler(cfg config.Config, a *repository.AccountRepo) *OnboardingHandler {
	return &OnboardingHandler{Cfg: cfg, Accounts: a}
}

// SelectRole records the chosen role and advances the step pointer.  The
// session cookie is reissued because the role claim rides in the token.
func (h *OnboardingHandler) SelectRole(c echo.Context) error {
	aid, err := accountID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req struct {
		Role string `json:"role" form:"role"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	role := strings.ToUpper(strings.TrimSpace(req.Role))

	f := validate.New()
	f.OneOf("role", role, model.RoleCompany, model.RoleEmployee)
	if f.Errors().Any() {
		return fieldErrors(c, f.Errors())
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Accounts.SetRole(ctx, aid, role); err != nil {
		switch err {
		case repository.ErrConflict:
			return c.JSON(http.StatusConflict, echo.Map{"error": "role already selected"})
		case repository.ErrNotFound:
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}

	tok, err := utils.NewSessionToken(h.Cfg.JWTSecret, aid, role, accountEmail(c), h.Cfg.SessionTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue session failed"})
	}
	setSessionCookie(c, h.Cfg, tok)

	return c.JSON(http.StatusOK, echo.Map{"success": "role selected", "token": tok.Token})
}

// CompanyDetails stores the company profile step.
func (h *OnboardingHandler) CompanyDetails(c echo.Context) error {
	aid, err := accountID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	if accountRole(c) != model.RoleCompany {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	var req struct {
		CompanyName string `json:"company_name" form:"company_name"`
		Niche       string `json:"niche" form:"niche"`
		TeamSize    string `json:"team_size" form:"team_size"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	f := validate.New()
	f.Require("company_name", req.CompanyName)
	if f.Errors().Any() {
		return fieldErrors(c, f.Errors())
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Accounts.SetCompanyDetails(ctx, aid,
		strings.TrimSpace(req.CompanyName), strings.TrimSpace(req.Niche), strings.TrimSpace(req.TeamSize)); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": "company details saved"})
}

// Goals stores the goals step as a JSON array.
func (h *OnboardingHandler) Goals(c echo.Context) error {
	aid, err := accountID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	if accountRole(c) != model.RoleCompany {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	var req struct {
		Goals []string `json:"goals" form:"goals"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if len(req.Goals) == 0 {
		f := validate.New()
		f.Require("goals", "")
		return fieldErrors(c, f.Errors())
	}
	goalsJSON, err := json.Marshal(req.Goals)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid goals"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Accounts.SetGoals(ctx, aid, string(goalsJSON)); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": "goals saved"})
}

// Complete marks the terminal onboarding state after the roster import
// step.
func (h *OnboardingHandler) Complete(c echo.Context) error {
	aid, err := accountID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	if accountRole(c) != model.RoleCompany {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Accounts.CompleteOnboarding(ctx, aid); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": "onboarding complete"})
}
