package serverutils

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"internship-chatbot-be/internal/pkg/logger"
)

// ErrorHandlerMiddleware converts panics and unhandled errors into the
// standard JSON error body so streaming and JSON endpoints fail uniformly.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		defer func() {
			if r := recover(); r != nil {
				log.Error("http", "panic recovered", map[string]interface{}{
					"path":  ctx.Path(),
					"panic": r,
				})
				_ = ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse("internal server error"))
			}
		}()

		err := ctx.Next()
		if err == nil {
			return nil
		}

		code := fiber.StatusInternalServerError
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			code = fiberErr.Code
		}

		log.Warn("http", "request failed", map[string]interface{}{
			"path":   ctx.Path(),
			"status": code,
			"error":  err.Error(),
		})
		return ctx.Status(code).JSON(ErrorResponse(err.Error()))
	}
}
