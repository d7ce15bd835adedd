package task_handlers

import (
	task_dto "github.com/Xenn-00/aufgaben-team/internal/dtos/task-dto"
	"github.com/Xenn-00/aufgaben-team/internal/handlers"
	internal_i18n "github.com/Xenn-00/aufgaben-team/internal/i18n"
	task_case "github.com/Xenn-00/aufgaben-team/internal/use-cases/task-case"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type TaskHandler struct {
	validator *validator.Validate
	service   task_case.TaskServiceContract
	i18n      internal_i18n.Service
}

func NewTaskHandler(service task_case.TaskServiceContract, i18n internal_i18n.Service) *TaskHandler {
	return &TaskHandler{
		validator: handlers.NewValidator(),
		service:   service,
		i18n:      i18n,
	}
}

// taskRequest liest user_id aus den Locals und :taskId aus dem Pfad.
func (h *TaskHandler) taskRequest(c *fiber.Ctx) (string, string, error) {
	userID, err := handlers.GetUserID(c)
	if err != nil {
		return "", "", err
	}
	param, err := handlers.ParseParams[task_dto.ParamTaskID](c, h.validator)
	if err != nil {
		return "", "", err
	}
	return userID, param.ID, nil
}

func (h *TaskHandler) CreateTask(c *fiber.Ctx) error {
	userID, err := handlers.GetUserID(c)
	if err != nil {
		return err
	}

	req, err := handlers.ParseBody[task_dto.CreateTaskRequest](c, h.validator)
	if err != nil {
		return err
	}

	resp, err := h.service.CreateTask(c.Context(), userID, *req)
	if err != nil {
		return err
	}

	return handlers.Respond(c, h.i18n, fiber.StatusCreated, "response.success_create_task", resp)
}

func (h *TaskHandler) ListTasks(c *fiber.Ctx) error {
	userID, err := handlers.GetUserID(c)
	if err != nil {
		return err
	}

	query, err := handlers.ParseQuery[task_dto.ListTasksQuery](c, h.validator)
	if err != nil {
		return err
	}

	resp, err := h.service.ListTasks(c.Context(), userID, *query)
	if err != nil {
		return err
	}

	return handlers.RespondPaged(c, h.i18n, "response.success_list_tasks", resp)
}

func (h *TaskHandler) GetTask(c *fiber.Ctx) error {
	userID, taskID, err := h.taskRequest(c)
	if err != nil {
		return err
	}

	resp, appErr := h.service.GetTask(c.Context(), userID, taskID)
	if appErr != nil {
		return appErr
	}

	return handlers.Respond(c, h.i18n, fiber.StatusOK, "response.success_fetch_task", resp)
}

func (h *TaskHandler) UpdateTask(c *fiber.Ctx) error {
	userID, taskID, err := h.taskRequest(c)
	if err != nil {
		return err
	}

	req, appErr := handlers.ParseBody[task_dto.UpdateTaskRequest](c, h.validator)
	if appErr != nil {
		return appErr
	}

	resp, appErr := h.service.UpdateTask(c.Context(), userID, taskID, *req)
	if appErr != nil {
		return appErr
	}

	return handlers.Respond(c, h.i18n, fiber.StatusOK, "response.success_update_task", resp)
}

func (h *TaskHandler) DeleteTask(c *fiber.Ctx) error {
	userID, taskID, err := h.taskRequest(c)
	if err != nil {
		return err
	}

	if appErr := h.service.DeleteTask(c.Context(), userID, taskID); appErr != nil {
		return appErr
	}

	return handlers.Respond(c, h.i18n, fiber.StatusOK, "response.success_delete_task", "OK")
}

func (h *TaskHandler) archive(c *fiber.Ctx, archived bool) error {
	userID, taskID, err := h.taskRequest(c)
	if err != nil {
		return err
	}

	resp, appErr := h.service.ArchiveTask(c.Context(), userID, taskID, archived)
	if appErr != nil {
		return appErr
	}

	key := "response.success_archive_task"
	if !archived {
		key = "response.success_unarchive_task"
	}
	return handlers.Respond(c, h.i18n, fiber.StatusOK, key, resp)
}

func (h *TaskHandler) ArchiveTask(c *fiber.Ctx) error   { return h.archive(c, true) }
func (h *TaskHandler) UnarchiveTask(c *fiber.Ctx) error { return h.archive(c, false) }

func (h *TaskHandler) CompleteTask(c *fiber.Ctx) error {
	userID, taskID, err := h.taskRequest(c)
	if err != nil {
		return err
	}

	resp, appErr := h.service.CompleteTask(c.Context(), userID, taskID)
	if appErr != nil {
		return appErr
	}

	return handlers.Respond(c, h.i18n, fiber.StatusOK, "response.success_complete_task", resp)
}

func (h *TaskHandler) UpdateStatus(c *fiber.Ctx) error {
	userID, taskID, err := h.taskRequest(c)
	if err != nil {
		return err
	}

	req, appErr := handlers.ParseBody[task_dto.UpdateStatusRequest](c, h.validator)
	if appErr != nil {
		return appErr
	}

	resp, appErr := h.service.UpdateStatus(c.Context(), userID, taskID, *req)
	if appErr != nil {
		return appErr
	}

	return handlers.Respond(c, h.i18n, fiber.StatusOK, "response.success_update_task", resp)
}

func (h *TaskHandler) AddSubtask(c *fiber.Ctx) error {
	userID, taskID, err := h.taskRequest(c)
	if err != nil {
		return err
	}

	req, appErr := handlers.ParseBody[task_dto.AddSubtaskRequest](c, h.validator)
	if appErr != nil {
		return appErr
	}

	resp, appErr := h.service.AddSubtask(c.Context(), userID, taskID, *req)
	if appErr != nil {
		return appErr
	}

	return handlers.Respond(c, h.i18n, fiber.StatusCreated, "response.success_update_task", resp)
}

func (h *TaskHandler) UpdateSubtask(c *fiber.Ctx) error {
	userID, err := handlers.GetUserID(c)
	if err != nil {
		return err
	}

	param, err := handlers.ParseParams[task_dto.ParamSubtaskID](c, h.validator)
	if err != nil {
		return err
	}

	req, err := handlers.ParseBody[task_dto.UpdateSubtaskRequest](c, h.validator)
	if err != nil {
		return err
	}

	resp, err := h.service.UpdateSubtask(c.Context(), userID, param.TaskID, param.SubtaskID, *req)
	if err != nil {
		return err
	}

	return handlers.Respond(c, h.i18n, fiber.StatusOK, "response.success_update_task", resp)
}

func (h *TaskHandler) AddComment(c *fiber.Ctx) error {
	userID, taskID, err := h.taskRequest(c)
	if err != nil {
		return err
	}

	req, appErr := handlers.ParseBody[task_dto.AddCommentRequest](c, h.validator)
	if appErr != nil {
		return appErr
	}

	resp, appErr := h.service.AddComment(c.Context(), userID, taskID, *req)
	if appErr != nil {
		return appErr
	}

	return handlers.Respond(c, h.i18n, fiber.StatusCreated, "response.success_update_task", resp)
}

func (h *TaskHandler) AddTimeEntry(c *fiber.Ctx) error {
	userID, taskID, err := h.taskRequest(c)
	if err != nil {
		return err
	}

	req, appErr := handlers.ParseBody[task_dto.AddTimeEntryRequest](c, h.validator)
	if appErr != nil {
		return appErr
	}

	resp, appErr := h.service.AddTimeEntry(c.Context(), userID, taskID, *req)
	if appErr != nil {
		return appErr
	}

	return handlers.Respond(c, h.i18n, fiber.StatusCreated, "response.success_update_task", resp)
}
