package handlers

import (
	"errors"

	"inventory/internal/repositories"
	"inventory/internal/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	msgProductNotFound = "Product not found"
	msgArticleConflict = "Article must be unique"
	msgInvalidBody     = "invalid request body"
	msgInternalError   = "Internal server error"
)

// writeError maps service and repository errors onto HTTP responses.
func writeError(c *fiber.Ctx, log *zap.Logger, err error) error {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  verr.Message,
			"errors": verr.Fields,
		})
	case errors.Is(err, repositories.ErrProductNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": msgProductNotFound})
	case errors.Is(err, repositories.ErrArticleConflict):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msgArticleConflict})
	default:
		log.Error("request failed",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": msgInternalError})
	}
}

// ErrorHandler is the fiber app-level error handler. Errors raised by fiber
// itself keep their status code; anything else becomes a 500.
func ErrorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(fiber.Map{"error": fe.Message})
		}
		return writeError(c, log, err)
	}
}
