package handler // handler defines http handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/shiftlyhq/shiftly/internal/config"
	"github.com/shiftlyhq/shiftly/internal/middleware"
	"github.com/shiftlyhq/shiftly/internal/repository"
	"github.com/shiftlyhq/shiftly/internal/validate"
)

// accountID extracts the authenticated account id stored by the session
// middleware.
func accountID(c echo.Context) (uint64, error) {
	if v, ok := c.Get("account_id").(uint64); ok && v > 0 {
		return v, nil
	}
	return 0, errors.New("invalid account_id in context")
}

// accountEmail returns the authenticated account's email claim.
func accountEmail(c echo.Context) string {
	s, _ := c.Get("email").(string)
	return s
}

// accountRole returns the authenticated account's role claim.
func accountRole(c echo.Context) string {
	s, _ := c.Get("role").(string)
	return s
}

// pathID parses a numeric :id path parameter.
func pathID(c echo.Context) (uint64, error) {
	return strconv.ParseUint(c.Param("id"), 10, 64)
}

// fieldErrors renders the validation-failure envelope: a top-level error
// plus per-field message lists, without touching storage.
func fieldErrors(c echo.Context, errs validate.Errors) error {
	return c.JSON(http.StatusBadRequest, echo.Map{
		"error":        "validation failed",
		"field_errors": errs,
	})
}

// CacheBus lets mutating handlers invalidate the list views they affect.
// A nil bus (Redis disabled) is a no-op.
type CacheBus struct {
	RDB *redis.Client
	Cfg config.CacheConfig
}

// Invalidate drops the cache entries stored for the given route paths.
func (b *CacheBus) Invalidate(ctx context.Context, routes ...string) {
	if b == nil {
		return
	}
	middleware.Invalidate(ctx, b.RDB, b.Cfg, routes...)
}

// activeCompanyID resolves the company scope for an employee-role caller:
// the active_company cookie when set and valid, otherwise the caller's only
// active employment.  Ambiguity (several employments, no cookie) is an
// error the client resolves through the company switcher.
func activeCompanyID(c echo.Context, employees *repository.EmployeeRepo) (uint64, error) {
	aid, err := accountID(c)
	if err != nil {
		return 0, err
	}
	ctx := c.Request().Context()
	if ck, err := c.Cookie(middleware.ActiveCompanyCookie); err == nil && ck.Value != "" {
		companyID, err := strconv.ParseUint(ck.Value, 10, 64)
		if err != nil {
			return 0, errors.New("invalid company selection")
		}
		if _, err := employees.GetActiveByAccountAndCompany(ctx, aid, companyID); err != nil {
			return 0, errors.New("invalid company selection")
		}
		return companyID, nil
	}
	companies, err := employees.ListCompaniesForAccount(ctx, aid)
	if err != nil {
		return 0, err
	}
	if len(companies) != 1 {
		return 0, errors.New("no active company selected")
	}
	return companies[0].ID, nil
}
