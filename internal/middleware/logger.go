package middleware

import (
	"errors"
	"time"

	app_errors "github.com/Xenn-00/aufgaben-team/internal/errors"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// LoggerMiddleware protokolliert jede Anfrage nach der Verarbeitung.
// Der Request-Logger liegt zusätzlich im UserContext, damit Services ihn per zerolog.Ctx finden.
func LoggerMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		reqID, _ := c.Locals("request_id").(string)

		logger := log.With().Str("request_id", reqID).Logger()
		c.SetUserContext(logger.WithContext(c.UserContext()))

		err := c.Next()

		status := c.Response().StatusCode()
		// Der ErrorHandler läuft erst nach der Middleware-Kette.
		var appErr *app_errors.AppError
		var fiberErr *fiber.Error
		switch {
		case errors.As(err, &appErr):
			status = appErr.Code
		case errors.As(err, &fiberErr):
			status = fiberErr.Code
		case err != nil:
			status = fiber.StatusInternalServerError
		}

		level := zerolog.InfoLevel
		if status >= 500 {
			level = zerolog.ErrorLevel
		} else if status >= 400 {
			level = zerolog.WarnLevel
		}

		logger.WithLevel(level).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("duration", time.Since(start)).
			Msg("request")

		return err
	}
}
