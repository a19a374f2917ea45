package handler

import (
	"context"
	"database/sql"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/shiftlyhq/shiftly/internal/model"
	"github.com/shiftlyhq/shiftly/internal/repository"
)

// InviteHandler implements invitation inspection and acceptance for the
// invited person.
type InviteHandler struct {
	DB        *sql.DB
	Invites   *repository.InvitationRepo
	Employees *repository.EmployeeRepo
	Accounts  *repository.AccountRepo
	Cache     *CacheBus
}

func NewInviteHandler(db *sql.DB, i *repository.InvitationRepo, e *repository.EmployeeRepo, a *repository.AccountRepo, cb *CacheBus) *InviteHandler {
	return &InviteHandler{DB: db, Invites: i, Employees: e, Accounts: a, Cache: cb}
}

// Inspect returns an invitation's public state so the invite landing page
// can show who is being invited and whether the link still works.
func (h *InviteHandler) Inspect(c echo.Context) error {
	token := strings.TrimSpace(c.Param("token"))
	if token == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "token required"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	inv, err := h.Invites.GetByToken(ctx, token)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "invitation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	status := inv.Status
	if inv.Expired(time.Now()) {
		status = model.InviteExpired
	}
	return c.JSON(http.StatusOK, echo.Map{
		"email":      inv.Email,
		"status":     status,
		"expires_at": inv.ExpiresAt,
	})
}

// Accept activates the roster row for the calling account.  The invite
// email must match the caller's account email; an expired or already
// accepted invitation is rejected.  Activation, invitation flip and the
// account's onboarding completion happen in one transaction so a crash
// cannot leave a half-accepted invite.
func (h *InviteHandler) Accept(c echo.Context) error {
	aid, err := accountID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	token := strings.TrimSpace(c.Param("token"))
	if token == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "token required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	inv, err := h.Invites.GetByToken(ctx, token)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "invitation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	now := time.Now()
	if inv.Status != model.InvitePending || inv.Expired(now) {
		return c.JSON(http.StatusGone, echo.Map{"error": "invitation is no longer valid"})
	}
	if !strings.EqualFold(inv.Email, accountEmail(c)) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "invitation does not belong to your email account"})
	}

	tx, err := h.DB.BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "accept failed"})
	}
	defer func() { _ = tx.Rollback() }()

	// The status guards inside these updates make a concurrent double
	// acceptance lose cleanly: zero rows -> ErrInviteInvalid.
	if err := h.Invites.AcceptTx(ctx, tx, inv.ID, now); err != nil {
		if err == repository.ErrInviteInvalid {
			return c.JSON(http.StatusGone, echo.Map{"error": "invitation is no longer valid"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "accept failed"})
	}
	if err := h.Employees.ActivateTx(ctx, tx, inv.EmployeeID, aid); err != nil {
		if err == repository.ErrInviteInvalid {
			return c.JSON(http.StatusGone, echo.Map{"error": "invitation is no longer valid"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "accept failed"})
	}
	if err := h.Accounts.MarkOnboardedTx(ctx, tx, aid); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "accept failed"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "accept failed"})
	}

	h.Cache.Invalidate(ctx, "/v1/employees", "/v1/companies")
	return c.JSON(http.StatusOK, echo.Map{"success": "invitation accepted", "company_id": inv.CompanyID})
}
