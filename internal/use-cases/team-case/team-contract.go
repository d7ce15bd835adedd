package team_case

import (
	"context"

	team_dto "github.com/Xenn-00/aufgaben-team/internal/dtos/team-dto"
	"github.com/Xenn-00/aufgaben-team/internal/entity"
	app_errors "github.com/Xenn-00/aufgaben-team/internal/errors"
	"github.com/Xenn-00/aufgaben-team/internal/stats"
)

type TeamServiceContract interface {
	CreateTeam(ctx context.Context, userID string, req team_dto.CreateTeamRequest) (*team_dto.TeamResponse, *app_errors.AppError)
	ListMyTeams(ctx context.Context, userID string) ([]entity.TeamSummary, *app_errors.AppError)
	GetTeam(ctx context.Context, userID, teamID string) (*team_dto.TeamResponse, *app_errors.AppError)
	UpdateTeam(ctx context.Context, userID, teamID string, req team_dto.UpdateTeamRequest) (*team_dto.TeamResponse, *app_errors.AppError)
	DeleteTeam(ctx context.Context, userID, teamID string) *app_errors.AppError

	ListMembers(ctx context.Context, userID, teamID string) ([]team_dto.MemberResponse, *app_errors.AppError)
	AddMember(ctx context.Context, userID, teamID string, req team_dto.AddMemberRequest) (*team_dto.TeamResponse, *app_errors.AppError)
	UpdateMember(ctx context.Context, userID, teamID, memberID string, req team_dto.UpdateMemberRequest) (*team_dto.TeamResponse, *app_errors.AppError)
	RemoveMember(ctx context.Context, userID, teamID, memberID string) *app_errors.AppError
	TransferOwnership(ctx context.Context, userID, teamID string, req team_dto.TransferOwnershipRequest) (*team_dto.TeamResponse, *app_errors.AppError)

	JoinByInviteCode(ctx context.Context, userID, code string) (*team_dto.TeamResponse, *app_errors.AppError)
	RegenerateInviteCode(ctx context.Context, userID, teamID string) (*team_dto.InviteCodeResponse, *app_errors.AppError)
	TeamStats(ctx context.Context, userID, teamID string) (*stats.TeamStats, *app_errors.AppError)
}
