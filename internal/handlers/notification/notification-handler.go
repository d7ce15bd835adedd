package notification_handlers

import (
	notification_dto "github.com/Xenn-00/aufgaben-team/internal/dtos/notification-dto"
	"github.com/Xenn-00/aufgaben-team/internal/handlers"
	internal_i18n "github.com/Xenn-00/aufgaben-team/internal/i18n"
	notification_case "github.com/Xenn-00/aufgaben-team/internal/use-cases/notification-case"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type NotificationHandler struct {
	validator *validator.Validate
	service   notification_case.NotificationServiceContract
	i18n      internal_i18n.Service
}

func NewNotificationHandler(service notification_case.NotificationServiceContract, i18n internal_i18n.Service) *NotificationHandler {
	return &NotificationHandler{
		validator: handlers.NewValidator(),
		service:   service,
		i18n:      i18n,
	}
}

// ListNotifications: GET /notifications?page=&limit=&unreadOnly=
func (h *NotificationHandler) ListNotifications(c *fiber.Ctx) error {
	userID, err := handlers.GetUserID(c)
	if err != nil {
		return err
	}

	query, err := handlers.ParseQuery[notification_dto.ListNotificationsQuery](c, h.validator)
	if err != nil {
		return err
	}

	resp, err := h.service.ListNotifications(c.Context(), userID, *query)
	if err != nil {
		return err
	}

	return handlers.RespondPaged(c, h.i18n, "response.success_list_notifications", resp)
}

func (h *NotificationHandler) UnreadCount(c *fiber.Ctx) error {
	userID, err := handlers.GetUserID(c)
	if err != nil {
		return err
	}

	resp, err := h.service.UnreadCount(c.Context(), userID)
	if err != nil {
		return err
	}

	return handlers.Respond(c, h.i18n, fiber.StatusOK, "response.success_unread_count", resp)
}

func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	userID, err := handlers.GetUserID(c)
	if err != nil {
		return err
	}

	param, err := handlers.ParseParams[notification_dto.ParamNotificationID](c, h.validator)
	if err != nil {
		return err
	}

	resp, err := h.service.MarkRead(c.Context(), userID, param.ID)
	if err != nil {
		return err
	}

	return handlers.Respond(c, h.i18n, fiber.StatusOK, "response.success_mark_read", resp)
}

func (h *NotificationHandler) MarkAllRead(c *fiber.Ctx) error {
	userID, err := handlers.GetUserID(c)
	if err != nil {
		return err
	}

	resp, err := h.service.MarkAllRead(c.Context(), userID)
	if err != nil {
		return err
	}

	return handlers.Respond(c, h.i18n, fiber.StatusOK, "response.success_mark_all_read", resp)
}

func (h *NotificationHandler) DeleteNotification(c *fiber.Ctx) error {
	userID, err := handlers.GetUserID(c)
	if err != nil {
		return err
	}

	param, err := handlers.ParseParams[notification_dto.ParamNotificationID](c, h.validator)
	if err != nil {
		return err
	}

	if err := h.service.DeleteNotification(c.Context(), userID, param.ID); err != nil {
		return err
	}

	return handlers.Respond(c, h.i18n, fiber.StatusOK, "response.success_delete_notification", "OK")
}
