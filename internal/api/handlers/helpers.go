package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/maheshrc27/autopost/internal/engine"
	"github.com/maheshrc27/autopost/internal/service"
	"github.com/maheshrc27/autopost/internal/transfer"
)

func GetUserID(c *fiber.Ctx) int64 {
	raw, _ := c.Locals("user_id").(string)
	userID, _ := strconv.ParseInt(raw, 10, 64)
	return userID
}

// parseBody decodes and validates the JSON body into v. On failure the 400
// response has already been written and ok is false.
func parseBody(c *fiber.Ctx, v any) (bool, error) {
	if err := c.BodyParser(v); err != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse json",
		})
	}
	if err := transfer.ValidateStruct(v); err != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return true, nil
}

func errorStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrNotFound), errors.Is(err, engine.ErrPostNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, service.ErrNotEditable), errors.Is(err, engine.ErrInvalidState):
		return fiber.StatusConflict
	case errors.Is(err, service.ErrUnknownAccounts), errors.Is(err, service.ErrInvalidInput):
		return fiber.StatusBadRequest
	case errors.Is(err, service.ErrUnsupportedFile):
		return fiber.StatusUnsupportedMediaType
	case errors.Is(err, engine.ErrDeliveryFailed):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

func sendError(c *fiber.Ctx, err error) error {
	return c.Status(errorStatus(err)).JSON(fiber.Map{
		"error": err.Error(),
	})
}
