package handlers

import (
	"errors"
	"log/slog"

	"github.com/canozbey/planwise-backend/internal/dto"
	"github.com/canozbey/planwise-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

// serviceError maps the service error taxonomy onto HTTP statuses:
// Conflict -> 409, Forbidden -> 403, NotFound -> 404, owner-row tampering
// and validation -> 400, everything else -> 500.
func serviceError(c *fiber.Ctx, err error) error {
	var conflict *services.ConflictError
	switch {
	case errors.As(err, &conflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Error: true, Message: conflict.Error(),
		})
	case errors.Is(err, services.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	case errors.Is(err, services.ErrEventNotFound),
		errors.Is(err, services.ErrVersionNotFound),
		errors.Is(err, services.ErrPermissionNotFound),
		errors.Is(err, services.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	case errors.Is(err, services.ErrOwnerProtected),
		errors.Is(err, services.ErrInvalidTimeRange),
		errors.Is(err, services.ErrValidation):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}

	slog.Error("unhandled service error", "method", c.Method(), "path", c.Path(), "error", err.Error())
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error: true, Message: "Internal server error",
	})
}
