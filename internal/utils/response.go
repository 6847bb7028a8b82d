package utils

import (
	apperrors "jobpay/internal/errors"

	"github.com/gofiber/fiber/v2"
)

// Respond sends a JSON response with the specified status code.
func Respond(c *fiber.Ctx, status int, data interface{}) error {
	return c.Status(status).JSON(data)
}

// Success sends a successful JSON response.
func Success(c *fiber.Ctx, data interface{}) error {
	return Respond(c, fiber.StatusOK, data)
}

// Error sends a domain error as {"code": ..., "error": ...}.
func Error(c *fiber.Ctx, status int, err *apperrors.DomainError) error {
	return Respond(c, status, err)
}

// BadRequest sends a JSON error response with status 400.
func BadRequest(c *fiber.Ctx, err *apperrors.DomainError) error {
	return Error(c, fiber.StatusBadRequest, err)
}

// NotFound sends a JSON error response with status 404.
func NotFound(c *fiber.Ctx, err *apperrors.DomainError) error {
	return Error(c, fiber.StatusNotFound, err)
}

// InternalError sends the generic processing failure with status 500.
func InternalError(c *fiber.Ctx) error {
	return Error(c, fiber.StatusInternalServerError, apperrors.ErrInternal)
}
