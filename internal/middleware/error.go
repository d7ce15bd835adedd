package middleware

import (
	"errors"

	"github.com/Xenn-00/aufgaben-team/internal/dtos"
	app_errors "github.com/Xenn-00/aufgaben-team/internal/errors"
	internal_i18n "github.com/Xenn-00/aufgaben-team/internal/i18n"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// fromFiberError übersetzt Fehler aus dem Framework (Routing, Body-Limit, ...) in AppErrors.
func fromFiberError(fe *fiber.Error) *app_errors.AppError {
	switch fe.Code {
	case fiber.StatusNotFound:
		return app_errors.NewAppError(fe.Code, app_errors.ErrNotFound, "route.not_found", fe)
	case fiber.StatusMethodNotAllowed:
		return app_errors.NewAppError(fe.Code, app_errors.ErrNotFound, "route.method_not_allowed", fe)
	case fiber.StatusRequestEntityTooLarge:
		return app_errors.NewAppError(fe.Code, app_errors.ErrInvalidBody, "request.too_large", fe)
	case fiber.StatusTooManyRequests:
		return app_errors.NewAppError(fe.Code, app_errors.ErrRateLimited, "rate_limited", fe)
	}
	if fe.Code >= 400 && fe.Code < 500 {
		return app_errors.NewAppError(fe.Code, app_errors.ErrInvalidBody, "invalid_request", fe)
	}
	return app_errors.Internal(fe)
}

// ErrorHandlerMiddleware schreibt jeden Fehler als dtos.ErrorEnvelope.
func ErrorHandlerMiddleware(i18nSvc internal_i18n.Service) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		lang, _ := c.Locals("lang").(string)
		if lang == "" {
			lang = "en"
		}
		reqID, _ := c.Locals("request_id").(string)

		var appErr *app_errors.AppError
		var fiberErr *fiber.Error
		switch {
		case errors.As(err, &appErr):
		case errors.As(err, &fiberErr):
			appErr = fromFiberError(fiberErr)
		default:
			appErr = app_errors.Internal(err)
		}

		resp := dtos.ErrorEnvelope{
			Success: false,
			Error: dtos.ErrorResponse{
				Code:    appErr.Type,
				Message: i18nSvc.T(lang, appErr.MessageKey, appErr.Params),
			},
			RequestID: reqID,
		}

		for _, d := range appErr.Details {
			resp.Error.Details = append(resp.Error.Details, dtos.ErrorDetail{
				Field:   d.Field,
				Reason:  d.Reason,
				Message: i18nSvc.T(lang, d.MessageKey, d.Params),
			})
		}

		if appErr.Code >= fiber.StatusInternalServerError {
			log.Error().Err(appErr.Err).Str("request_id", reqID).Str("path", c.Path()).Msg("application error")
		} else if appErr.Err != nil {
			log.Debug().Err(appErr.Err).Str("request_id", reqID).Str("type", appErr.Type).Msg("request rejected")
		}

		return c.Status(appErr.Code).JSON(resp)
	}
}
