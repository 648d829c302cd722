package serverutils

import (
	"errors"

	"gym-management-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandler turns any error returned from a handler into the JSON envelope.
func ErrorHandler(log logger.ILogger) fiber.ErrorHandler {
	return func(ctx *fiber.Ctx, err error) error {
		var appErr *AppError
		if errors.As(err, &appErr) {
			if appErr.Kind == KindInternal {
				log.Error("HTTP", appErr.Message, map[string]interface{}{
					"error":  err.Error(),
					"path":   ctx.Path(),
					"method": ctx.Method(),
				})
				return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse(fiber.StatusInternalServerError, "internal server error"))
			}
			return ctx.Status(appErr.Status()).JSON(ErrorResponse(appErr.Status(), appErr.Message))
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
		}

		log.Error("HTTP", "Unhandled error", map[string]interface{}{
			"error":  err.Error(),
			"path":   ctx.Path(),
			"method": ctx.Method(),
		})
		return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse(fiber.StatusInternalServerError, "internal server error"))
	}
}

// ParseBody decodes and validates a JSON body in one step.
func ParseBody(ctx *fiber.Ctx, out interface{}) error {
	if err := ctx.BodyParser(out); err != nil {
		return ValidationError("invalid request body")
	}
	return ValidateRequest(out)
}
