package invitation_handlers

import (
	invitation_dto "github.com/Xenn-00/aufgaben-team/internal/dtos/invitation-dto"
	team_dto "github.com/Xenn-00/aufgaben-team/internal/dtos/team-dto"
	app_errors "github.com/Xenn-00/aufgaben-team/internal/errors"
	"github.com/Xenn-00/aufgaben-team/internal/handlers"
	internal_i18n "github.com/Xenn-00/aufgaben-team/internal/i18n"
	invitation_case "github.com/Xenn-00/aufgaben-team/internal/use-cases/invitation-case"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type InvitationHandler struct {
	validator *validator.Validate
	service   invitation_case.InvitationServiceContract
	i18n      internal_i18n.Service
}

func NewInvitationHandler(service invitation_case.InvitationServiceContract, i18n internal_i18n.Service) *InvitationHandler {
	return &InvitationHandler{
		validator: handlers.NewValidator(),
		service:   service,
		i18n:      i18n,
	}
}

func (h *InvitationHandler) invitationRequest(c *fiber.Ctx) (string, string, error) {
	userID, err := handlers.GetUserID(c)
	if err != nil {
		return "", "", err
	}
	param, err := handlers.ParseParams[invitation_dto.ParamInvitationID](c, h.validator)
	if err != nil {
		return "", "", err
	}
	return userID, param.ID, nil
}

// SendInvitation: POST /teams/:teamId/invitations
func (h *InvitationHandler) SendInvitation(c *fiber.Ctx) error {
	userID, err := handlers.GetUserID(c)
	if err != nil {
		return err
	}

	param, err := handlers.ParseParams[team_dto.ParamTeamID](c, h.validator)
	if err != nil {
		return err
	}

	req, err := handlers.ParseBody[invitation_dto.SendInvitationRequest](c, h.validator)
	if err != nil {
		return err
	}
	if !req.HasTarget() {
		return app_errors.NewAppError(fiber.StatusBadRequest, app_errors.ErrValidation, "invitation.target_required", nil)
	}

	resp, err := h.service.SendInvitation(c.Context(), userID, param.ID, *req)
	if err != nil {
		return err
	}

	return handlers.Respond(c, h.i18n, fiber.StatusCreated, "response.success_send_invitation", resp)
}

// ListTeamInvitations: GET /teams/:teamId/invitations?status=
func (h *InvitationHandler) ListTeamInvitations(c *fiber.Ctx) error {
	userID, err := handlers.GetUserID(c)
	if err != nil {
		return err
	}

	param, err := handlers.ParseParams[team_dto.ParamTeamID](c, h.validator)
	if err != nil {
		return err
	}

	query, err := handlers.ParseQuery[invitation_dto.ListTeamInvitationsQuery](c, h.validator)
	if err != nil {
		return err
	}

	resp, err := h.service.ListTeamInvitations(c.Context(), userID, param.ID, *query)
	if err != nil {
		return err
	}

	return handlers.Respond(c, h.i18n, fiber.StatusOK, "response.success_list_invitations", resp)
}

func (h *InvitationHandler) ListMyInvitations(c *fiber.Ctx) error {
	userID, err := handlers.GetUserID(c)
	if err != nil {
		return err
	}

	resp, err := h.service.ListMyInvitations(c.Context(), userID)
	if err != nil {
		return err
	}

	return handlers.Respond(c, h.i18n, fiber.StatusOK, "response.success_list_invitations", resp)
}

func (h *InvitationHandler) AcceptInvitation(c *fiber.Ctx) error {
	userID, invitationID, err := h.invitationRequest(c)
	if err != nil {
		return err
	}

	resp, appErr := h.service.AcceptInvitation(c.Context(), userID, invitationID)
	if appErr != nil {
		return appErr
	}

	return handlers.Respond(c, h.i18n, fiber.StatusOK, "response.success_accept_invitation", resp)
}

func (h *InvitationHandler) DenyInvitation(c *fiber.Ctx) error {
	userID, invitationID, err := h.invitationRequest(c)
	if err != nil {
		return err
	}

	resp, appErr := h.service.DenyInvitation(c.Context(), userID, invitationID)
	if appErr != nil {
		return appErr
	}

	return handlers.Respond(c, h.i18n, fiber.StatusOK, "response.success_deny_invitation", resp)
}

func (h *InvitationHandler) CancelInvitation(c *fiber.Ctx) error {
	userID, invitationID, err := h.invitationRequest(c)
	if err != nil {
		return err
	}

	resp, appErr := h.service.CancelInvitation(c.Context(), userID, invitationID)
	if appErr != nil {
		return appErr
	}

	return handlers.Respond(c, h.i18n, fiber.StatusOK, "response.success_cancel_invitation", resp)
}
