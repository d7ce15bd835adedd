package handlers

import (
	"github.com/Xenn-00/aufgaben-team/internal/dtos"
	app_errors "github.com/Xenn-00/aufgaben-team/internal/errors"
	internal_i18n "github.com/Xenn-00/aufgaben-team/internal/i18n"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// NewValidator liefert den Validator mit json-Feldnamen und allen Enum-Tags der DTOs.
func NewValidator() *validator.Validate {
	v := app_errors.NewValidator()
	dtos.RegisterEnumValidators(v)
	return v
}

// CreateResponse erstellt eine standardisierte WebResponse.
func CreateResponse[T any](message string, data T, requestID string) dtos.WebResponse[T] {
	return dtos.WebResponse[T]{
		Success:   true,
		Message:   message,
		Data:      data,
		RequestID: requestID,
	}
}

func GetUserID(c *fiber.Ctx) (string, *app_errors.AppError) {
	userID, ok := c.Locals("user_id").(string)
	if !ok || userID == "" {
		return "", app_errors.NewAppError(fiber.StatusUnauthorized, app_errors.ErrUnauthorized, "auth.unauthorized", nil)
	}

	return userID, nil
}

func GetRequestID(c *fiber.Ctx) string {
	reqID, ok := c.Locals("request_id").(string)
	if !ok {
		reqID = "unknown"
	}
	return reqID
}

func GetLang(c *fiber.Ctx) string {
	lang, _ := c.Locals("lang").(string)
	if lang == "" {
		return "en"
	}
	return lang
}

// ParseBody: 1. parsen, 2. validieren.
func ParseBody[T any](c *fiber.Ctx, v *validator.Validate) (*T, *app_errors.AppError) {
	var req T
	if err := c.BodyParser(&req); err != nil {
		return nil, app_errors.NewAppError(fiber.StatusBadRequest, app_errors.ErrInvalidBody, "request.invalid_body", err)
	}
	if err := v.Struct(req); err != nil {
		return nil, app_errors.NewValidationError(app_errors.ParseValidationError(err))
	}
	return &req, nil
}

func ParseQuery[T any](c *fiber.Ctx, v *validator.Validate) (*T, *app_errors.AppError) {
	var query T
	if err := c.QueryParser(&query); err != nil {
		return nil, app_errors.NewAppError(fiber.StatusBadRequest, app_errors.ErrInvalidQuery, "request.invalid_query", err)
	}
	if err := v.Struct(query); err != nil {
		return nil, app_errors.NewValidationError(app_errors.ParseValidationError(err))
	}
	return &query, nil
}

func ParseParams[T any](c *fiber.Ctx, v *validator.Validate) (*T, *app_errors.AppError) {
	var param T
	if err := c.ParamsParser(&param); err != nil {
		return nil, app_errors.NewAppError(fiber.StatusBadRequest, app_errors.ErrInvalidParam, "request.invalid_param", err)
	}
	if err := v.Struct(param); err != nil {
		return nil, app_errors.NewValidationError(app_errors.ParseValidationError(err))
	}
	return &param, nil
}

// Respond schreibt die Erfolgsantwort mit übersetzter Nachricht.
func Respond[T any](c *fiber.Ctx, i18n internal_i18n.Service, status int, messageKey string, data T) error {
	webResp := CreateResponse(i18n.T(GetLang(c), messageKey, nil), data, GetRequestID(c))
	if err := c.Status(status).JSON(webResp); err != nil {
		return app_errors.NewAppError(fiber.StatusInternalServerError, app_errors.ErrInternal, "response.write_failed", err)
	}
	return nil
}

func RespondPaged[T any](c *fiber.Ctx, i18n internal_i18n.Service, messageKey string, paged *dtos.Paged[T]) error {
	webResp := CreateResponse(i18n.T(GetLang(c), messageKey, nil), paged.Items, GetRequestID(c))
	webResp.Pagination = paged.Pagination
	if err := c.Status(fiber.StatusOK).JSON(webResp); err != nil {
		return app_errors.NewAppError(fiber.StatusInternalServerError, app_errors.ErrInternal, "response.write_failed", err)
	}
	return nil
}
