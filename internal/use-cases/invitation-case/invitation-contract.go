package invitation_case

import (
	"context"

	invitation_dto "github.com/Xenn-00/aufgaben-team/internal/dtos/invitation-dto"
	app_errors "github.com/Xenn-00/aufgaben-team/internal/errors"
)

type InvitationServiceContract interface {
	SendInvitation(ctx context.Context, userID, teamID string, req invitation_dto.SendInvitationRequest) (*invitation_dto.InvitationResponse, *app_errors.AppError)
	ListTeamInvitations(ctx context.Context, userID, teamID string, query invitation_dto.ListTeamInvitationsQuery) ([]invitation_dto.InvitationResponse, *app_errors.AppError)
	ListMyInvitations(ctx context.Context, userID string) ([]invitation_dto.InvitationResponse, *app_errors.AppError)
	AcceptInvitation(ctx context.Context, userID, invitationID string) (*invitation_dto.AcceptInvitationResponse, *app_errors.AppError)
	DenyInvitation(ctx context.Context, userID, invitationID string) (*invitation_dto.InvitationResponse, *app_errors.AppError)
	CancelInvitation(ctx context.Context, userID, invitationID string) (*invitation_dto.InvitationResponse, *app_errors.AppError)
}
