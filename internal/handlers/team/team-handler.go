package team_handlers

import (
	team_dto "github.com/Xenn-00/aufgaben-team/internal/dtos/team-dto"
	"github.com/Xenn-00/aufgaben-team/internal/handlers"
	internal_i18n "github.com/Xenn-00/aufgaben-team/internal/i18n"
	team_case "github.com/Xenn-00/aufgaben-team/internal/use-cases/team-case"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type TeamHandler struct {
	validator *validator.Validate
	service   team_case.TeamServiceContract
	i18n      internal_i18n.Service
}

func NewTeamHandler(service team_case.TeamServiceContract, i18n internal_i18n.Service) *TeamHandler {
	return &TeamHandler{
		validator: handlers.NewValidator(),
		service:   service,
		i18n:      i18n,
	}
}

func (h *TeamHandler) teamRequest(c *fiber.Ctx) (string, string, error) {
	userID, err := handlers.GetUserID(c)
	if err != nil {
		return "", "", err
	}
	param, err := handlers.ParseParams[team_dto.ParamTeamID](c, h.validator)
	if err != nil {
		return "", "", err
	}
	return userID, param.ID, nil
}

func (h *TeamHandler) memberRequest(c *fiber.Ctx) (string, *team_dto.ParamTeamMember, error) {
	userID, err := handlers.GetUserID(c)
	if err != nil {
		return "", nil, err
	}
	param, err := handlers.ParseParams[team_dto.ParamTeamMember](c, h.validator)
	if err != nil {
		return "", nil, err
	}
	return userID, param, nil
}

func (h *TeamHandler) CreateTeam(c *fiber.Ctx) error {
	userID, err := handlers.GetUserID(c)
	if err != nil {
		return err
	}

	req, err := handlers.ParseBody[team_dto.CreateTeamRequest](c, h.validator)
	if err != nil {
		return err
	}

	resp, err := h.service.CreateTeam(c.Context(), userID, *req)
	if err != nil {
		return err
	}

	return handlers.Respond(c, h.i18n, fiber.StatusCreated, "response.success_create_team", resp)
}

func (h *TeamHandler) ListMyTeams(c *fiber.Ctx) error {
	userID, err := handlers.GetUserID(c)
	if err != nil {
		return err
	}

	resp, err := h.service.ListMyTeams(c.Context(), userID)
	if err != nil {
		return err
	}

	return handlers.Respond(c, h.i18n, fiber.StatusOK, "response.success_list_teams", resp)
}

func (h *TeamHandler) GetTeam(c *fiber.Ctx) error {
	userID, teamID, err := h.teamRequest(c)
	if err != nil {
		return err
	}

	resp, appErr := h.service.GetTeam(c.Context(), userID, teamID)
	if appErr != nil {
		return appErr
	}

	return handlers.Respond(c, h.i18n, fiber.StatusOK, "response.success_fetch_team", resp)
}

func (h *TeamHandler) UpdateTeam(c *fiber.Ctx) error {
	userID, teamID, err := h.teamRequest(c)
	if err != nil {
		return err
	}

	req, appErr := handlers.ParseBody[team_dto.UpdateTeamRequest](c, h.validator)
	if appErr != nil {
		return appErr
	}

	resp, appErr := h.service.UpdateTeam(c.Context(), userID, teamID, *req)
	if appErr != nil {
		return appErr
	}

	return handlers.Respond(c, h.i18n, fiber.StatusOK, "response.success_update_team", resp)
}

func (h *TeamHandler) DeleteTeam(c *fiber.Ctx) error {
	userID, teamID, err := h.teamRequest(c)
	if err != nil {
		return err
	}

	if appErr := h.service.DeleteTeam(c.Context(), userID, teamID); appErr != nil {
		return appErr
	}

	return handlers.Respond(c, h.i18n, fiber.StatusOK, "response.success_delete_team", "OK")
}

func (h *TeamHandler) ListMembers(c *fiber.Ctx) error {
	userID, teamID, err := h.teamRequest(c)
	if err != nil {
		return err
	}

	resp, appErr := h.service.ListMembers(c.Context(), userID, teamID)
	if appErr != nil {
		return appErr
	}

	return handlers.Respond(c, h.i18n, fiber.StatusOK, "response.success_list_members", resp)
}

func (h *TeamHandler) AddMember(c *fiber.Ctx) error {
	userID, teamID, err := h.teamRequest(c)
	if err != nil {
		return err
	}

	req, appErr := handlers.ParseBody[team_dto.AddMemberRequest](c, h.validator)
	if appErr != nil {
		return appErr
	}

	resp, appErr := h.service.AddMember(c.Context(), userID, teamID, *req)
	if appErr != nil {
		return appErr
	}

	return handlers.Respond(c, h.i18n, fiber.StatusCreated, "response.success_add_member", resp)
}

func (h *TeamHandler) UpdateMember(c *fiber.Ctx) error {
	userID, param, err := h.memberRequest(c)
	if err != nil {
		return err
	}

	req, appErr := handlers.ParseBody[team_dto.UpdateMemberRequest](c, h.validator)
	if appErr != nil {
		return appErr
	}

	resp, appErr := h.service.UpdateMember(c.Context(), userID, param.TeamID, param.UserID, *req)
	if appErr != nil {
		return appErr
	}

	return handlers.Respond(c, h.i18n, fiber.StatusOK, "response.success_update_member", resp)
}

// RemoveMember: mit der eigenen User-ID bedeutet das Verlassen des Teams.
func (h *TeamHandler) RemoveMember(c *fiber.Ctx) error {
	userID, param, err := h.memberRequest(c)
	if err != nil {
		return err
	}

	if appErr := h.service.RemoveMember(c.Context(), userID, param.TeamID, param.UserID); appErr != nil {
		return appErr
	}

	return handlers.Respond(c, h.i18n, fiber.StatusOK, "response.success_remove_member", "OK")
}

func (h *TeamHandler) TransferOwnership(c *fiber.Ctx) error {
	userID, teamID, err := h.teamRequest(c)
	if err != nil {
		return err
	}

	req, appErr := handlers.ParseBody[team_dto.TransferOwnershipRequest](c, h.validator)
	if appErr != nil {
		return appErr
	}

	resp, appErr := h.service.TransferOwnership(c.Context(), userID, teamID, *req)
	if appErr != nil {
		return appErr
	}

	return handlers.Respond(c, h.i18n, fiber.StatusOK, "response.success_transfer_ownership", resp)
}

func (h *TeamHandler) JoinByInviteCode(c *fiber.Ctx) error {
	userID, err := handlers.GetUserID(c)
	if err != nil {
		return err
	}

	param, err := handlers.ParseParams[team_dto.ParamInviteCode](c, h.validator)
	if err != nil {
		return err
	}

	resp, err := h.service.JoinByInviteCode(c.Context(), userID, param.Code)
	if err != nil {
		return err
	}

	return handlers.Respond(c, h.i18n, fiber.StatusOK, "response.success_join_team", resp)
}

func (h *TeamHandler) RegenerateInviteCode(c *fiber.Ctx) error {
	userID, teamID, err := h.teamRequest(c)
	if err != nil {
		return err
	}

	resp, appErr := h.service.RegenerateInviteCode(c.Context(), userID, teamID)
	if appErr != nil {
		return appErr
	}

	return handlers.Respond(c, h.i18n, fiber.StatusOK, "response.success_regenerate_invite", resp)
}

func (h *TeamHandler) TeamStats(c *fiber.Ctx) error {
	userID, teamID, err := h.teamRequest(c)
	if err != nil {
		return err
	}

	resp, appErr := h.service.TeamStats(c.Context(), userID, teamID)
	if appErr != nil {
		return appErr
	}

	return handlers.Respond(c, h.i18n, fiber.StatusOK, "response.success_fetch_stats", resp)
}
