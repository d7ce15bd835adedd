package upload_handlers

import (
	app_errors "github.com/Xenn-00/aufgaben-team/internal/errors"
	"github.com/Xenn-00/aufgaben-team/internal/handlers"
	internal_i18n "github.com/Xenn-00/aufgaben-team/internal/i18n"
	upload_case "github.com/Xenn-00/aufgaben-team/internal/use-cases/upload-case"
	"github.com/gofiber/fiber/v2"
)

// AvatarField ist der Name des multipart-Felds.
const AvatarField = "avatar"

type UploadHandler struct {
	service upload_case.UploadServiceContract
	i18n    internal_i18n.Service
}

func NewUploadHandler(service upload_case.UploadServiceContract, i18n internal_i18n.Service) *UploadHandler {
	return &UploadHandler{
		service: service,
		i18n:    i18n,
	}
}

func (h *UploadHandler) UploadAvatar(c *fiber.Ctx) error {
	userID, appErr := handlers.GetUserID(c)
	if appErr != nil {
		return appErr
	}

	file, err := c.FormFile(AvatarField)
	if err != nil {
		return app_errors.NewAppError(fiber.StatusBadRequest, app_errors.ErrUpload, "upload.file_required", err)
	}

	resp, appErr := h.service.UploadAvatar(c.Context(), userID, file)
	if appErr != nil {
		return appErr
	}

	return handlers.Respond(c, h.i18n, fiber.StatusOK, "response.success_upload_avatar", resp)
}

func (h *UploadHandler) DeleteAvatar(c *fiber.Ctx) error {
	userID, appErr := handlers.GetUserID(c)
	if appErr != nil {
		return appErr
	}

	if appErr := h.service.DeleteAvatar(c.Context(), userID); appErr != nil {
		return appErr
	}

	return handlers.Respond(c, h.i18n, fiber.StatusOK, "response.success_delete_avatar", "OK")
}
