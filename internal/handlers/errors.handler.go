package handlers

import (
	"errors"

	"emoshown/internal/analytics"
	"emoshown/internal/types"

	"github.com/gofiber/fiber/v2"
)

// statusForError maps controller and analytics errors onto HTTP statuses.
func statusForError(err error) int {
	switch {
	case errors.Is(err, analytics.ErrIncompleteInput),
		errors.Is(err, analytics.ErrUnknownStrategy),
		errors.Is(err, types.ErrValidation):
		return fiber.StatusBadRequest
	case errors.Is(err, types.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, types.ErrConflict):
		return fiber.StatusConflict
	case errors.Is(err, analytics.ErrUpstreamUnavailable):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

// errorResponse hides internal error text behind fallback on a 500.
func errorResponse(c *fiber.Ctx, err error, fallback string) error {
	status := statusForError(err)
	message := err.Error()
	if status == fiber.StatusInternalServerError {
		message = fallback
	}

	return c.Status(status).JSON(fiber.Map{
		"error": message,
	})
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": "Authentication required",
	})
}
