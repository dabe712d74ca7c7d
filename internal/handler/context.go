package handler

import (
	"errors"

	"go-backoffice/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Helpers to read identity set by the auth middleware.

func getActor(c *fiber.Ctx) service.Actor {
	actor := service.Actor{ID: "system", Name: "Unknown"}
	if id, ok := c.Locals("user_id").(string); ok {
		actor.ID = id
	}
	if name, ok := c.Locals("user_name").(string); ok {
		actor.Name = name
	}
	if email, ok := c.Locals("user_email").(string); ok {
		actor.Email = email
	}
	return actor
}

func getOrgID(c *fiber.Ctx) (uuid.UUID, error) {
	raw, ok := c.Locals("organization_id").(string)
	if !ok {
		return uuid.Nil, errors.New("missing organization scope")
	}
	return uuid.Parse(raw)
}

func getUserID(c *fiber.Ctx) (uuid.UUID, error) {
	raw, ok := c.Locals("user_id").(string)
	if !ok {
		return uuid.Nil, errors.New("missing user id")
	}
	return uuid.Parse(raw)
}

// statusForError maps service errors to HTTP status codes.
func statusForError(err error) int {
	var (
		insufficientCredits *service.InsufficientCreditsError
		insufficientStock   *service.InsufficientStockError
		invalidTransition   *service.InvalidTransitionError
	)

	switch {
	case errors.As(err, &insufficientCredits),
		errors.As(err, &insufficientStock):
		return fiber.StatusUnprocessableEntity
	case errors.As(err, &invalidTransition),
		errors.Is(err, service.ErrDuplicateProductCode),
		errors.Is(err, service.ErrEmailExists),
		errors.Is(err, service.ErrOrganizationExists),
		errors.Is(err, service.ErrAlreadyRefunded),
		errors.Is(err, service.ErrShippingConfirmationRequired):
		return fiber.StatusConflict
	case errors.Is(err, service.ErrOrderNotFound),
		errors.Is(err, service.ErrProductNotFound),
		errors.Is(err, service.ErrOrganizationNotFound),
		errors.Is(err, service.ErrUserNotFound):
		return fiber.StatusNotFound
	default:
		return fiber.StatusBadRequest
	}
}

func fail(c *fiber.Ctx, err error) error {
	return c.Status(statusForError(err)).JSON(fiber.Map{"error": err.Error()})
}
