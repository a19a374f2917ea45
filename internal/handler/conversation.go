package handler

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/shiftlyhq/shiftly/internal/queue"
	"github.com/shiftlyhq/shiftly/internal/repository"
	notifier "github.com/shiftlyhq/shiftly/internal/service"
	"github.com/shiftlyhq/shiftly/internal/validate"
)

// ConversationHandler implements two-party messaging between accounts.
type ConversationHandler struct {
	Convs    *repository.ConversationRepo
	Accounts *repository.AccountRepo
}

func NewConversationHandler(r *repository.ConversationRepo, accounts *repository.AccountRepo) *ConversationHandler {
	return &ConversationHandler{Convs: r, Accounts: accounts}
}

type startConversationReq struct {
	PeerID uint64 `json:"peer_id" form:"peer_id"`
}

// Start opens (or returns the existing) conversation with another account.
func (h *ConversationHandler) Start(c echo.Context) error {
	aid, err := accountID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req startConversationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.PeerID == 0 || req.PeerID == aid {
		f := validate.New()
		f.Errors().Add("peer_id", "peer_id must be another account")
		return fieldErrors(c, f.Errors())
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	// The peer must be a real account before a row referencing it is
	// created.
	if _, err := h.Accounts.GetByID(ctx, req.PeerID); err != nil {
		if err == repository.ErrNotFound {
			f := validate.New()
			f.Errors().Add("peer_id", "peer account does not exist")
			return fieldErrors(c, f.Errors())
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	conv, err := h.Convs.FindOrCreate(ctx, aid, req.PeerID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, conv)
}

// List returns the caller's conversations, most recently active first.
func (h *ConversationHandler) List(c echo.Context) error {
	aid, err := accountID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.Convs.ListForAccount(ctx, aid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

type sendMessageReq struct {
	Body string `json:"body" form:"body"`
}

// Send appends a message to a conversation the caller participates in and
// publishes the chat notification for the peer.
func (h *ConversationHandler) Send(c echo.Context) error {
	aid, err := accountID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	convID := c.Param("id")
	if convID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req sendMessageReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	body := strings.TrimSpace(req.Body)
	if body == "" {
		f := validate.New()
		f.Require("body", body)
		return fieldErrors(c, f.Errors())
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	conv, err := h.Convs.GetForParticipant(ctx, convID, aid)
	switch err {
	case nil:
	case repository.ErrNotFound:
		return c.JSON(http.StatusNotFound, echo.Map{"error": "conversation not found"})
	case repository.ErrForbidden:
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	msg, err := h.Convs.AppendMessage(ctx, conv, aid, body, time.Now())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	peer := conv.ParticipantA
	if peer == aid {
		peer = conv.ParticipantB
	}
	if err := notifier.Publish(ctx, queue.NotificationEvent{
		Kind:      queue.KindMessageSent,
		AccountID: peer,
		Summary:   body,
	}); err != nil {
		log.Printf("conversation: message notification publish failed: %v", err)
	}

	return c.JSON(http.StatusCreated, msg)
}

// Messages returns a conversation's messages oldest first and clears the
// caller's unread counter.
func (h *ConversationHandler) Messages(c echo.Context) error {
	aid, err := accountID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	convID := c.Param("id")
	if convID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	conv, err := h.Convs.GetForParticipant(ctx, convID, aid)
	switch err {
	case nil:
	case repository.ErrNotFound:
		return c.JSON(http.StatusNotFound, echo.Map{"error": "conversation not found"})
	case repository.ErrForbidden:
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	msgs, err := h.Convs.ListMessages(ctx, convID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if err := h.Convs.MarkRead(ctx, conv, aid); err != nil {
		log.Printf("conversation: mark read failed: %v", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": msgs})
}
