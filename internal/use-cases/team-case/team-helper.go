package team_case

import (
	"context"

	team_dto "github.com/Xenn-00/aufgaben-team/internal/dtos/team-dto"
	"github.com/Xenn-00/aufgaben-team/internal/entity"
	app_errors "github.com/Xenn-00/aufgaben-team/internal/errors"
	"github.com/Xenn-00/aufgaben-team/internal/permission"
	use_cases "github.com/Xenn-00/aufgaben-team/internal/use-cases"
	"github.com/Xenn-00/aufgaben-team/internal/utils"
	"github.com/gofiber/fiber/v2"
)

const inviteCodeAttempts = 3

// getMemberTeam lädt das Team; Nichtmitglieder bekommen ein 404, damit Team-IDs nicht erraten werden können.
func (s *TeamService) getMemberTeam(ctx context.Context, userID, teamID string) (*entity.TeamEntity, *app_errors.AppError) {
	team, err := s.repo.GetTeamByID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if team.FindMember(userID) == nil {
		return nil, app_errors.NotFound("team.not_found")
	}
	return team, nil
}

func requireTeam(team *entity.TeamEntity, userID string, action permission.Action) *app_errors.AppError {
	if team.FindMember(userID) == nil {
		return app_errors.NotFound("team.not_found")
	}
	if !permission.Has(permission.TeamPolicy, userID, team.Members, action) {
		return app_errors.Forbidden()
	}
	return nil
}

func applySettings(dst *entity.TeamSettings, req *team_dto.TeamSettingsRequest) {
	if req == nil {
		return
	}
	if req.MaxMembers != nil {
		dst.MaxMembers = *req.MaxMembers
	}
	if req.InvitePolicy != nil {
		dst.InvitePolicy = entity.InvitePolicy(*req.InvitePolicy)
	}
	if req.DefaultRole != nil {
		dst.DefaultRole = entity.TeamRole(*req.DefaultRole)
	}
}

// isInviteCodeClash erkennt die Unique-Verletzung auf teams.invite_code.
func isInviteCodeClash(err *app_errors.AppError) bool {
	return err != nil && err.Type == app_errors.ErrDuplicateKey && err.Params["Constraint"] == "teams_invite_code_key"
}

func newInviteCode() (string, *app_errors.AppError) {
	code, err := utils.NewInviteCode()
	if err != nil {
		return "", app_errors.Internal(err)
	}
	return code, nil
}

func teamFull() *app_errors.AppError {
	return app_errors.NewAppError(fiber.StatusBadRequest, app_errors.ErrLimitReached, "team.max_members_reached", nil)
}

// buildTeamResponse löst die Mitglieder in Kurzprofile auf. Der Einladungscode ist nur mit invite_members sichtbar.
func (s *TeamService) buildTeamResponse(ctx context.Context, team *entity.TeamEntity, viewerID string) (*team_dto.TeamResponse, *app_errors.AppError) {
	members, err := s.memberResponses(ctx, team)
	if err != nil {
		return nil, err
	}

	resp := &team_dto.TeamResponse{
		ID:          team.ID,
		Name:        team.Name,
		Description: team.Description,
		OwnerID:     team.OwnerID,
		Settings:    team.Settings,
		Members:     members,
		MemberCount: len(team.Members),
		MyRole:      entity.TeamRole(permission.RoleOf(viewerID, team.Members)),
		CreatedAt:   team.CreatedAt,
		UpdatedAt:   team.UpdatedAt,
	}
	if permission.Has(permission.TeamPolicy, viewerID, team.Members, permission.InviteMembers) {
		resp.InviteCode = team.InviteCode
	}
	return resp, nil
}

func (s *TeamService) memberResponses(ctx context.Context, team *entity.TeamEntity) ([]team_dto.MemberResponse, *app_errors.AppError) {
	summaries, err := s.users.FindSummaries(ctx, entity.MemberIDs(team.Members))
	if err != nil {
		return nil, err
	}

	out := make([]team_dto.MemberResponse, 0, len(team.Members))
	for _, m := range team.Members {
		summary, ok := summaries[m.UserID]
		if !ok {
			summary = entity.UserSummary{ID: m.UserID}
		}
		out = append(out, team_dto.MemberResponse{
			UserSummary: summary,
			Role:        m.Role,
			Permissions: permission.Allowed(permission.TeamPolicy, m.UserID, team.Members),
			JoinedAt:    m.JoinedAt,
		})
	}
	return out, nil
}

func (s *TeamService) notify(ctx context.Context, recipientID string, typ entity.NotificationType, title, message string, data map[string]any) {
	use_cases.Notify(ctx, s.notifications, &entity.NotificationEntity{
		RecipientID: recipientID,
		Type:        typ,
		Title:       title,
		Message:     message,
		Data:        data,
	})
}
