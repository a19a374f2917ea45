package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/shiftlyhq/shiftly/internal/model"
	"github.com/shiftlyhq/shiftly/internal/repository"
	"github.com/shiftlyhq/shiftly/internal/validate"
)

// ContactHandler implements the per-account address book.
type ContactHandler struct {
	Contacts *repository.ContactRepo
	Cache    *CacheBus
}

func NewContactHandler(r *repository.ContactRepo, cb *CacheBus) *ContactHandler {
	return &ContactHandler{Contacts: r, Cache: cb}
}

type contactReq struct {
	Name  string  `json:"name" form:"name"`
	Email *string `json:"email" form:"email"`
	Phone *string `json:"phone" form:"phone"`
}

func validateContact(req contactReq) validate.Errors {
	f := validate.New()
	f.Require("name", req.Name)
	if req.Email != nil {
		f.Email("email", *req.Email)
	}
	if req.Phone != nil {
		f.Phone("phone", *req.Phone)
	}
	return f.Errors()
}

// Create adds a contact to the caller's address book.
func (h *ContactHandler) Create(c echo.Context) error {
	ownerID, err := accountID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req contactReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if errs := validateContact(req); errs.Any() {
		return fieldErrors(c, errs)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	ct := model.Contact{
		OwnerID: ownerID,
		Name:    strings.TrimSpace(req.Name),
		Email:   req.Email,
		Phone:   req.Phone,
	}
	if err := h.Contacts.Create(ctx, &ct); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	h.Cache.Invalidate(ctx, "/v1/contacts")
	return c.JSON(http.StatusCreated, ct)
}

// List returns the caller's contacts, optionally filtered with ?q= against
// name and email.
func (h *ContactHandler) List(c echo.Context) error {
	ownerID, err := accountID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.Contacts.ListByOwner(ctx, ownerID, strings.TrimSpace(c.QueryParam("q")))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// Update edits a contact.  A missing or malformed id fails before any
// lookup runs.
func (h *ContactHandler) Update(c echo.Context) error {
	ownerID, err := accountID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req contactReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if errs := validateContact(req); errs.Any() {
		return fieldErrors(c, errs)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	err = h.Contacts.Update(ctx, id, ownerID, strings.TrimSpace(req.Name), req.Email, req.Phone)
	if err == repository.ErrNotFound {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "contact not found"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	h.Cache.Invalidate(ctx, "/v1/contacts")
	return c.JSON(http.StatusOK, echo.Map{"success": "contact updated"})
}

// Delete soft-deletes a contact; the row stays for history.
func (h *ContactHandler) Delete(c echo.Context) error {
	ownerID, err := accountID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	err = h.Contacts.SoftDelete(ctx, id, ownerID)
	if err == repository.ErrNotFound {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "contact not found"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	h.Cache.Invalidate(ctx, "/v1/contacts")
	return c.NoContent(http.StatusNoContent)
}
