package project_handlers

import (
	project_dto "github.com/Xenn-00/aufgaben-team/internal/dtos/project-dto"
	"github.com/Xenn-00/aufgaben-team/internal/handlers"
	internal_i18n "github.com/Xenn-00/aufgaben-team/internal/i18n"
	project_case "github.com/Xenn-00/aufgaben-team/internal/use-cases/project-case"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type ProjectHandler struct {
	validator *validator.Validate
	service   project_case.ProjectServiceContract
	i18n      internal_i18n.Service
}

func NewProjectHandler(service project_case.ProjectServiceContract, i18n internal_i18n.Service) *ProjectHandler {
	return &ProjectHandler{
		validator: handlers.NewValidator(),
		service:   service,
		i18n:      i18n,
	}
}

func (h *ProjectHandler) projectRequest(c *fiber.Ctx) (string, string, error) {
	userID, err := handlers.GetUserID(c)
	if err != nil {
		return "", "", err
	}
	param, err := handlers.ParseParams[project_dto.ParamProjectID](c, h.validator)
	if err != nil {
		return "", "", err
	}
	return userID, param.ID, nil
}

func (h *ProjectHandler) memberRequest(c *fiber.Ctx) (string, *project_dto.ParamProjectMember, error) {
	userID, err := handlers.GetUserID(c)
	if err != nil {
		return "", nil, err
	}
	param, err := handlers.ParseParams[project_dto.ParamProjectMember](c, h.validator)
	if err != nil {
		return "", nil, err
	}
	return userID, param, nil
}

func (h *ProjectHandler) CreateProject(c *fiber.Ctx) error {
	userID, err := handlers.GetUserID(c)
	if err != nil {
		return err
	}

	req, err := handlers.ParseBody[project_dto.CreateProjectRequest](c, h.validator)
	if err != nil {
		return err
	}

	resp, err := h.service.CreateProject(c.Context(), userID, *req)
	if err != nil {
		return err
	}

	return handlers.Respond(c, h.i18n, fiber.StatusCreated, "response.success_create_project", resp)
}

// ListProjects: GET /projects?teamId=&status=&includeArchived=
func (h *ProjectHandler) ListProjects(c *fiber.Ctx) error {
	userID, err := handlers.GetUserID(c)
	if err != nil {
		return err
	}

	query, err := handlers.ParseQuery[project_dto.ListProjectsQuery](c, h.validator)
	if err != nil {
		return err
	}

	resp, err := h.service.ListProjects(c.Context(), userID, *query)
	if err != nil {
		return err
	}

	return handlers.Respond(c, h.i18n, fiber.StatusOK, "response.success_list_projects", resp)
}

func (h *ProjectHandler) GetProject(c *fiber.Ctx) error {
	userID, projectID, err := h.projectRequest(c)
	if err != nil {
		return err
	}

	resp, appErr := h.service.GetProject(c.Context(), userID, projectID)
	if appErr != nil {
		return appErr
	}

	return handlers.Respond(c, h.i18n, fiber.StatusOK, "response.success_fetch_project", resp)
}

func (h *ProjectHandler) UpdateProject(c *fiber.Ctx) error {
	userID, projectID, err := h.projectRequest(c)
	if err != nil {
		return err
	}

	req, appErr := handlers.ParseBody[project_dto.UpdateProjectRequest](c, h.validator)
	if appErr != nil {
		return appErr
	}

	resp, appErr := h.service.UpdateProject(c.Context(), userID, projectID, *req)
	if appErr != nil {
		return appErr
	}

	return handlers.Respond(c, h.i18n, fiber.StatusOK, "response.success_update_project", resp)
}

func (h *ProjectHandler) DeleteProject(c *fiber.Ctx) error {
	userID, projectID, err := h.projectRequest(c)
	if err != nil {
		return err
	}

	if appErr := h.service.DeleteProject(c.Context(), userID, projectID); appErr != nil {
		return appErr
	}

	return handlers.Respond(c, h.i18n, fiber.StatusOK, "response.success_delete_project", "OK")
}

func (h *ProjectHandler) ArchiveProject(c *fiber.Ctx) error {
	return h.archive(c, true, "response.success_archive_project")
}

func (h *ProjectHandler) UnarchiveProject(c *fiber.Ctx) error {
	return h.archive(c, false, "response.success_unarchive_project")
}

func (h *ProjectHandler) archive(c *fiber.Ctx, archived bool, key string) error {
	userID, projectID, err := h.projectRequest(c)
	if err != nil {
		return err
	}

	resp, appErr := h.service.ArchiveProject(c.Context(), userID, projectID, archived)
	if appErr != nil {
		return appErr
	}

	return handlers.Respond(c, h.i18n, fiber.StatusOK, key, resp)
}

func (h *ProjectHandler) ListMembers(c *fiber.Ctx) error {
	userID, projectID, err := h.projectRequest(c)
	if err != nil {
		return err
	}

	resp, appErr := h.service.ListMembers(c.Context(), userID, projectID)
	if appErr != nil {
		return appErr
	}

	return handlers.Respond(c, h.i18n, fiber.StatusOK, "response.success_list_members", resp)
}

func (h *ProjectHandler) AddMember(c *fiber.Ctx) error {
	userID, projectID, err := h.projectRequest(c)
	if err != nil {
		return err
	}

	req, appErr := handlers.ParseBody[project_dto.AddProjectMemberRequest](c, h.validator)
	if appErr != nil {
		return appErr
	}

	resp, appErr := h.service.AddMember(c.Context(), userID, projectID, *req)
	if appErr != nil {
		return appErr
	}

	return handlers.Respond(c, h.i18n, fiber.StatusCreated, "response.success_add_member", resp)
}

func (h *ProjectHandler) UpdateMember(c *fiber.Ctx) error {
	userID, param, err := h.memberRequest(c)
	if err != nil {
		return err
	}

	req, appErr := handlers.ParseBody[project_dto.UpdateProjectMemberRequest](c, h.validator)
	if appErr != nil {
		return appErr
	}

	resp, appErr := h.service.UpdateMember(c.Context(), userID, param.ProjectID, param.UserID, *req)
	if appErr != nil {
		return appErr
	}

	return handlers.Respond(c, h.i18n, fiber.StatusOK, "response.success_update_member", resp)
}

func (h *ProjectHandler) RemoveMember(c *fiber.Ctx) error {
	userID, param, err := h.memberRequest(c)
	if err != nil {
		return err
	}

	if appErr := h.service.RemoveMember(c.Context(), userID, param.ProjectID, param.UserID); appErr != nil {
		return appErr
	}

	return handlers.Respond(c, h.i18n, fiber.StatusOK, "response.success_remove_member", "OK")
}

func (h *ProjectHandler) Progress(c *fiber.Ctx) error {
	userID, projectID, err := h.projectRequest(c)
	if err != nil {
		return err
	}

	resp, appErr := h.service.Progress(c.Context(), userID, projectID)
	if appErr != nil {
		return appErr
	}

	return handlers.Respond(c, h.i18n, fiber.StatusOK, "response.success_fetch_progress", resp)
}

func (h *ProjectHandler) ProjectStats(c *fiber.Ctx) error {
	userID, projectID, err := h.projectRequest(c)
	if err != nil {
		return err
	}

	resp, appErr := h.service.ProjectStats(c.Context(), userID, projectID)
	if appErr != nil {
		return appErr
	}

	return handlers.Respond(c, h.i18n, fiber.StatusOK, "response.success_fetch_stats", resp)
}
