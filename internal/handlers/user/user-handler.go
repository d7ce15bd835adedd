package user_handlers

import (
	task_dto "github.com/Xenn-00/aufgaben-team/internal/dtos/task-dto"
	user_dto "github.com/Xenn-00/aufgaben-team/internal/dtos/user-dto"
	"github.com/Xenn-00/aufgaben-team/internal/handlers"
	internal_i18n "github.com/Xenn-00/aufgaben-team/internal/i18n"
	task_case "github.com/Xenn-00/aufgaben-team/internal/use-cases/task-case"
	user_case "github.com/Xenn-00/aufgaben-team/internal/use-cases/user-case"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	validator *validator.Validate
	service   user_case.UserServiceContract
	tasks     task_case.TaskServiceContract
	i18n      internal_i18n.Service
}

func NewUserHandler(service user_case.UserServiceContract, tasks task_case.TaskServiceContract, i18n internal_i18n.Service) *UserHandler {
	return &UserHandler{
		validator: handlers.NewValidator(),
		service:   service,
		tasks:     tasks,
		i18n:      i18n,
	}
}

// FetchSelfProfile liefert das eigene Profil mit Live-Statistik (/auth/me und /users/profile).
func (h *UserHandler) FetchSelfProfile(c *fiber.Ctx) error {
	userID, err := handlers.GetUserID(c)
	if err != nil {
		return err
	}

	resp, err := h.service.UserSelfProfile(c.Context(), userID)
	if err != nil {
		return err
	}

	return handlers.Respond(c, h.i18n, fiber.StatusOK, "response.success_fetch_profile", resp)
}

func (h *UserHandler) UpdateSelfProfile(c *fiber.Ctx) error {
	userID, err := handlers.GetUserID(c)
	if err != nil {
		return err
	}

	req, err := handlers.ParseBody[user_dto.UpdateProfileRequest](c, h.validator)
	if err != nil {
		return err
	}

	resp, err := h.service.UpdateProfile(c.Context(), userID, userID, *req)
	if err != nil {
		return err
	}

	return handlers.Respond(c, h.i18n, fiber.StatusOK, "response.success_update_profile", resp)
}

func (h *UserHandler) ChangePassword(c *fiber.Ctx) error {
	userID, err := handlers.GetUserID(c)
	if err != nil {
		return err
	}

	req, err := handlers.ParseBody[user_dto.ChangePasswordRequest](c, h.validator)
	if err != nil {
		return err
	}

	if err := h.service.ChangePassword(c.Context(), userID, *req); err != nil {
		return err
	}

	return handlers.Respond(c, h.i18n, fiber.StatusOK, "response.success_change_password", "OK")
}

func (h *UserHandler) UpdateAvatarURL(c *fiber.Ctx) error {
	userID, err := handlers.GetUserID(c)
	if err != nil {
		return err
	}

	req, err := handlers.ParseBody[user_dto.UpdateAvatarRequest](c, h.validator)
	if err != nil {
		return err
	}

	resp, err := h.service.UpdateAvatarURL(c.Context(), userID, *req)
	if err != nil {
		return err
	}

	return handlers.Respond(c, h.i18n, fiber.StatusOK, "response.success_update_avatar", resp)
}

func (h *UserHandler) FetchUserProfile(c *fiber.Ctx) error {
	viewerID, err := handlers.GetUserID(c)
	if err != nil {
		return err
	}

	param, err := handlers.ParseParams[user_dto.ParamUserID](c, h.validator)
	if err != nil {
		return err
	}

	resp, err := h.service.UserProfileByID(c.Context(), param.ID, viewerID)
	if err != nil {
		return err
	}

	return handlers.Respond(c, h.i18n, fiber.StatusOK, "response.success_fetch_profile", resp)
}

func (h *UserHandler) UpdateUser(c *fiber.Ctx) error {
	viewerID, err := handlers.GetUserID(c)
	if err != nil {
		return err
	}

	param, err := handlers.ParseParams[user_dto.ParamUserID](c, h.validator)
	if err != nil {
		return err
	}

	req, err := handlers.ParseBody[user_dto.UpdateProfileRequest](c, h.validator)
	if err != nil {
		return err
	}

	resp, err := h.service.UpdateProfile(c.Context(), param.ID, viewerID, *req)
	if err != nil {
		return err
	}

	return handlers.Respond(c, h.i18n, fiber.StatusOK, "response.success_update_profile", resp)
}

// DeleteUser verlangt das Passwort im Body und beendet alle Sessions.
func (h *UserHandler) DeleteUser(c *fiber.Ctx) error {
	viewerID, err := handlers.GetUserID(c)
	if err != nil {
		return err
	}

	param, err := handlers.ParseParams[user_dto.ParamUserID](c, h.validator)
	if err != nil {
		return err
	}

	req, err := handlers.ParseBody[user_dto.DeleteAccountRequest](c, h.validator)
	if err != nil {
		return err
	}

	if err := h.service.DeleteAccount(c.Context(), param.ID, viewerID, *req); err != nil {
		return err
	}

	return handlers.Respond(c, h.i18n, fiber.StatusOK, "response.success_delete_account", "OK")
}

func (h *UserHandler) UserStats(c *fiber.Ctx) error {
	viewerID, err := handlers.GetUserID(c)
	if err != nil {
		return err
	}

	param, err := handlers.ParseParams[user_dto.ParamUserID](c, h.validator)
	if err != nil {
		return err
	}

	resp, err := h.service.UserStats(c.Context(), param.ID, viewerID)
	if err != nil {
		return err
	}

	return handlers.Respond(c, h.i18n, fiber.StatusOK, "response.success_fetch_stats", resp)
}

func (h *UserHandler) UserTasks(c *fiber.Ctx) error {
	viewerID, err := handlers.GetUserID(c)
	if err != nil {
		return err
	}

	param, err := handlers.ParseParams[user_dto.ParamUserID](c, h.validator)
	if err != nil {
		return err
	}

	query, err := handlers.ParseQuery[task_dto.ListTasksQuery](c, h.validator)
	if err != nil {
		return err
	}

	resp, err := h.tasks.ListTasksForUser(c.Context(), param.ID, viewerID, *query)
	if err != nil {
		return err
	}

	return handlers.RespondPaged(c, h.i18n, "response.success_list_tasks", resp)
}
