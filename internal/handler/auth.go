package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/shiftlyhq/shiftly/internal/config"
	"github.com/shiftlyhq/shiftly/internal/middleware"
	"github.com/shiftlyhq/shiftly/internal/model"
	"github.com/shiftlyhq/shiftly/internal/repository"
	"github.com/shiftlyhq/shiftly/internal/utils"
	"github.com/shiftlyhq/shiftly/internal/validate"
)

// AuthHandler bundles dependencies for registration, login and session
// endpoints.
type AuthHandler struct {
	Cfg      config.Config
	Accounts *repository.AccountRepo
}

func NewAuthHandler(cfg config.Config, a *repository.AccountRepo) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Accounts: a}
}

// ----- DTOs -----

type registerReq struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
	FullName string `json:"full_name" form:"full_name"`
	Phone    string `json:"phone" form:"phone"`
}
type loginReq struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

type accountPart struct {
	ID             uint64 `json:"id"`
	Email          string `json:"email"`
	FullName       string `json:"full_name"`
	Role           string `json:"role"`
	OnboardingStep string `json:"onboarding_step"`
	HasOnboarded   bool   `json:"has_onboarded"`
}

func toAccountPart(a model.Account) accountPart {
	return accountPart{
		ID:             a.ID,
		Email:          a.Email,
		FullName:       a.FullName,
		Role:           a.Role,
		OnboardingStep: a.OnboardingStep,
		HasOnboarded:   a.HasOnboarded,
	}
}

// setSessionCookie writes the signed session token as an HttpOnly cookie.
func setSessionCookie(c echo.Context, cfg config.Config, tok utils.SessionToken) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    tok.Token,
		Path:     "/",
		Domain:   cfg.CookieDomain,
		Expires:  tok.Exp,
		HttpOnly: true,
		Secure:   cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearCookie(c echo.Context, name, domain string) {
	c.SetCookie(&http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		Domain:   domain,
		MaxAge:   -1,
		HttpOnly: true,
	})
}

// Register validates the registration form, creates the account and starts
// a session.  A password failing the complexity rule returns a field error
// and creates nothing.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.FullName = strings.TrimSpace(req.FullName)

	f := validate.New()
	f.Require("email", req.Email)
	f.Email("email", req.Email)
	f.Require("full_name", req.FullName)
	f.Phone("phone", req.Phone)
	f.Require("password", req.Password)
	if req.Password != "" {
		f.Password("password", req.Password)
	}
	if f.Errors().Any() {
		return fieldErrors(c, f.Errors())
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	id, err := h.Accounts.Create(ctx, req.Email, req.Password, req.FullName, strings.TrimSpace(req.Phone), h.Cfg.BcryptCost)
	if err != nil {
		if err == repository.ErrEmailExists {
			return c.JSON(http.StatusConflict, echo.Map{"error": "email already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create account failed"})
	}

	tok, err := utils.NewSessionToken(h.Cfg.JWTSecret, id, model.RoleUnset, req.Email, h.Cfg.SessionTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue session failed"})
	}
	setSessionCookie(c, h.Cfg, tok)

	return c.JSON(http.StatusCreated, echo.Map{
		"success": "account created",
		"account": accountPart{ID: id, Email: req.Email, FullName: req.FullName, Role: model.RoleUnset, OnboardingStep: model.StepRoleSelect},
		"token":   tok.Token,
	})
}

// Login verifies credentials and starts a session.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email/password required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	a, err := h.Accounts.GetByEmail(ctx, req.Email)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !utils.VerifyPassword(a.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	tok, err := utils.NewSessionToken(h.Cfg.JWTSecret, a.ID, a.Role, a.Email, h.Cfg.SessionTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue session failed"})
	}
	setSessionCookie(c, h.Cfg, tok)

	return c.JSON(http.StatusOK, echo.Map{
		"success": "logged in",
		"account": toAccountPart(a),
		"token":   tok.Token,
	})
}

// Logout clears the session and active-company cookies.  Stateless JWT
// sessions have nothing to revoke server-side; the cookie lifetime bounds
// the exposure.
func (h *AuthHandler) Logout(c echo.Context) error {
	clearCookie(c, middleware.SessionCookie, h.Cfg.CookieDomain)
	clearCookie(c, middleware.ActiveCompanyCookie, h.Cfg.CookieDomain)
	return c.NoContent(http.StatusNoContent)
}

// Me returns the caller's own account record.
func (h *AuthHandler) Me(c echo.Context) error {
	aid, err := accountID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	a, err := h.Accounts.GetByID(ctx, aid)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"account": toAccountPart(a)})
}
