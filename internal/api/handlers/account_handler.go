package handlers

import (
	"fmt"
	"log/slog"
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/maheshrc27/autopost/internal/service"
	"github.com/maheshrc27/autopost/internal/transfer"
)

type AccountHandler struct {
	s           service.AccountService
	frontendURL string
}

func NewAccountHandler(service service.AccountService, frontendURL string) *AccountHandler {
	return &AccountHandler{s: service, frontendURL: frontendURL}
}

// Connect sends the browser to X's consent screen.
func (h *AccountHandler) Connect(c *fiber.Ctx) error {
	conn, err := h.s.ConnectURL(c.Context(), GetUserID(c))
	if err != nil {
		slog.Info(err.Error())
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to start authorization",
		})
	}

	if c.Query("redirect") == "false" {
		return c.JSON(conn)
	}
	return c.Redirect(conn.AuthURL)
}

func (h *AccountHandler) Callback(c *fiber.Ctx) error {
	if denied := c.Query("error"); denied != "" {
		return c.Redirect(h.frontendRedirect("error", denied))
	}

	account, err := h.s.Callback(c.Context(), c.Query("state"), c.Query("code"))
	if err != nil {
		slog.Info(err.Error())
		return c.Redirect(h.frontendRedirect("error", "Unable to link account"))
	}

	return c.Redirect(h.frontendRedirect("connected", account.Username))
}

func (h *AccountHandler) ListAccounts(c *fiber.Ctx) error {
	accounts, err := h.s.List(c.Context(), GetUserID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to list accounts",
		})
	}

	return c.JSON(accounts)
}

func (h *AccountHandler) DisconnectAccount(c *fiber.Ctx) error {
	if err := h.s.Disconnect(c.Context(), GetUserID(c), c.Params("id")); err != nil {
		return sendError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *AccountHandler) DeleteAccount(c *fiber.Ctx) error {
	if err := h.s.Delete(c.Context(), GetUserID(c), c.Params("id")); err != nil {
		return sendError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *AccountHandler) UpdateAccountType(c *fiber.Ctx) error {
	var req transfer.AccountTypeUpdate
	if ok, err := parseBody(c, &req); !ok {
		return err
	}

	if err := h.s.SetAccountType(c.Context(), GetUserID(c), c.Params("id"), req.AccountType); err != nil {
		return sendError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *AccountHandler) frontendRedirect(key, value string) string {
	return fmt.Sprintf("%s/accounts?%s=%s", h.frontendURL, key, url.QueryEscape(value))
}
