package controllers

import (
	"context"
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/VenueBookHQ/VenueBook/internal/pkg/apperr"
)

// respondData writes the success envelope.
func respondData(c *fiber.Ctx, status int, data interface{}) error {
	return c.Status(status).JSON(fiber.Map{"success": true, "data": data})
}

// respondList writes the success envelope for collections.
func respondList(c *fiber.Ctx, data interface{}, count int64) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": data, "count": count})
}

// respondError maps the error taxonomy onto HTTP statuses. Unexpected errors
// become a generic 500 with no internal detail leaked.
func respondError(c *fiber.Ctx, err error) error {
	if ve, ok := apperr.IsValidation(err); ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "validation failed",
			"errors":  ve.Violations,
		})
	}

	switch {
	case errors.Is(err, apperr.ErrPolicyViolation):
		return errorEnvelope(c, fiber.StatusBadRequest, "request violates booking policy")
	case errors.Is(err, apperr.ErrInvalidSignature):
		return errorEnvelope(c, fiber.StatusBadRequest, "payment signature verification failed")
	case errors.Is(err, apperr.ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		return errorEnvelope(c, fiber.StatusNotFound, "resource not found")
	case errors.Is(err, apperr.ErrConflict), errors.Is(err, gorm.ErrDuplicatedKey):
		return errorEnvelope(c, fiber.StatusConflict, "resource already exists")
	case errors.Is(err, apperr.ErrUnconfigured):
		return errorEnvelope(c, fiber.StatusServiceUnavailable, "payment provider is not configured")
	case errors.Is(err, apperr.ErrUnavailable),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled):
		return errorEnvelope(c, fiber.StatusServiceUnavailable, "service temporarily unavailable, retry later")
	default:
		log.Printf("[http] unexpected error on %s %s: %v", c.Method(), c.Path(), err)
		return errorEnvelope(c, fiber.StatusInternalServerError, "internal server error")
	}
}

func errorEnvelope(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"success": false, "message": message})
}

// badRequest is for malformed bodies and parameters before any domain logic.
func badRequest(c *fiber.Ctx, message string) error {
	return errorEnvelope(c, fiber.StatusBadRequest, message)
}
