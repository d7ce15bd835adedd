package team_case

import (
	"context"
	"strings"
	"time"

	"github.com/Xenn-00/aufgaben-team/internal/abstraction/tx"
	team_dto "github.com/Xenn-00/aufgaben-team/internal/dtos/team-dto"
	"github.com/Xenn-00/aufgaben-team/internal/entity"
	app_errors "github.com/Xenn-00/aufgaben-team/internal/errors"
	"github.com/Xenn-00/aufgaben-team/internal/permission"
	notification_repo "github.com/Xenn-00/aufgaben-team/internal/repo/notification-repo"
	task_repo "github.com/Xenn-00/aufgaben-team/internal/repo/task-repo"
	team_repo "github.com/Xenn-00/aufgaben-team/internal/repo/team-repo"
	user_repo "github.com/Xenn-00/aufgaben-team/internal/repo/user-repo"
	"github.com/Xenn-00/aufgaben-team/internal/stats"
	"github.com/Xenn-00/aufgaben-team/internal/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
)

type TeamService struct {
	repo          team_repo.TeamRepoContract
	users         user_repo.UserRepoContract
	tasks         task_repo.TaskRepoContract
	txManager     tx.TxManager
	notifications notification_repo.NotificationRepoContract
}

func NewTeamService(db *pgxpool.Pool, mdb *mongo.Database) TeamServiceContract {
	return &TeamService{
		repo:          team_repo.NewTeamRepo(db),
		users:         user_repo.NewUserRepo(db),
		tasks:         task_repo.NewTaskRepo(db),
		txManager:     tx.NewPgxTxManager(db),
		notifications: notification_repo.NewNotificationRepo(mdb),
	}
}

func (s *TeamService) CreateTeam(ctx context.Context, userID string, req team_dto.CreateTeamRequest) (*team_dto.TeamResponse, *app_errors.AppError) {
	id, idErr := utils.NewID()
	if idErr != nil {
		return nil, app_errors.Internal(idErr)
	}

	settings := entity.DefaultTeamSettings()
	applySettings(&settings, req.Settings)

	now := time.Now()
	team := &entity.TeamEntity{
		ID:          id,
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		OwnerID:     userID,
		Members:     []entity.TeamMember{{UserID: userID, Role: entity.TeamRoleOwner, JoinedAt: now}},
		Settings:    settings,
		CreatedAt:   now,
	}

	// Kollisionen des 8-stelligen Codes sind selten, aber möglich
	var err *app_errors.AppError
	for attempt := 0; attempt < inviteCodeAttempts; attempt++ {
		team.InviteCode, err = newInviteCode()
		if err != nil {
			return nil, err
		}
		err = s.repo.InsertTeam(ctx, team)
		if !isInviteCodeClash(err) {
			break
		}
		log.Warn().Int("attempt", attempt+1).Msg("Einladungscode bereits vergeben, neuer Versuch")
	}
	if err != nil {
		return nil, err
	}

	return s.buildTeamResponse(ctx, team, userID)
}

func (s *TeamService) ListMyTeams(ctx context.Context, userID string) ([]entity.TeamSummary, *app_errors.AppError) {
	return s.repo.ListTeamsForUser(ctx, userID)
}

func (s *TeamService) GetTeam(ctx context.Context, userID, teamID string) (*team_dto.TeamResponse, *app_errors.AppError) {
	team, err := s.getMemberTeam(ctx, userID, teamID)
	if err != nil {
		return nil, err
	}
	return s.buildTeamResponse(ctx, team, userID)
}

func (s *TeamService) UpdateTeam(ctx context.Context, userID, teamID string, req team_dto.UpdateTeamRequest) (*team_dto.TeamResponse, *app_errors.AppError) {
	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	team, err := s.repo.GetTeamByIDForUpdate(ctx, tx, teamID)
	if err != nil {
		return nil, err
	}
	if err := requireTeam(team, userID, permission.ManageSettings); err != nil {
		return nil, err
	}

	if req.Name != nil {
		team.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		team.Description = req.Description
	}
	applySettings(&team.Settings, req.Settings)

	if team.Settings.MaxMembers < len(team.Members) {
		return nil, app_errors.NewAppError(fiber.StatusBadRequest, app_errors.ErrTeam, "team.max_members_below_count", nil).
			WithParams(map[string]any{"Count": len(team.Members)})
	}

	if err := s.repo.UpdateTeam(ctx, tx, team); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return s.buildTeamResponse(ctx, team, userID)
}

// DeleteTeam: nur der Besitzer. Projekte des Teams bleiben als persönliche Projekte erhalten.
func (s *TeamService) DeleteTeam(ctx context.Context, userID, teamID string) *app_errors.AppError {
	team, err := s.getMemberTeam(ctx, userID, teamID)
	if err != nil {
		return err
	}
	if !permission.Has(permission.TeamPolicy, userID, team.Members, permission.DeleteTeam) {
		return app_errors.Forbidden()
	}

	return s.repo.DeleteTeam(ctx, teamID)
}

func (s *TeamService) ListMembers(ctx context.Context, userID, teamID string) ([]team_dto.MemberResponse, *app_errors.AppError) {
	team, err := s.getMemberTeam(ctx, userID, teamID)
	if err != nil {
		return nil, err
	}
	return s.memberResponses(ctx, team)
}

func (s *TeamService) AddMember(ctx context.Context, userID, teamID string, req team_dto.AddMemberRequest) (*team_dto.TeamResponse, *app_errors.AppError) {
	if _, err := s.users.FindByUserID(ctx, req.UserID); err != nil {
		return nil, err
	}

	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	team, err := s.repo.GetTeamByIDForUpdate(ctx, tx, teamID)
	if err != nil {
		return nil, err
	}
	if err := requireTeam(team, userID, permission.ManageMembers); err != nil {
		return nil, err
	}
	if team.FindMember(req.UserID) != nil {
		return nil, app_errors.NewAppError(fiber.StatusConflict, app_errors.ErrConflict, "team.already_member", nil)
	}
	if team.IsFull() {
		return nil, teamFull()
	}

	role := team.Settings.DefaultRole
	if req.Role != "" {
		role = entity.TeamRole(req.Role)
	}
	if !role.IsValid() || role == entity.TeamRoleOwner {
		role = entity.TeamRoleMember
	}

	team.Members = append(team.Members, entity.TeamMember{UserID: req.UserID, Role: role, JoinedAt: time.Now()})

	if err := s.repo.UpdateTeam(ctx, tx, team); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	s.notify(ctx, req.UserID, entity.NotifyMemberAdded, "Neues Team", team.Name,
		map[string]any{"teamId": team.ID, "addedBy": userID, "role": role})

	return s.buildTeamResponse(ctx, team, userID)
}

// UpdateMember ändert Rolle und Overrides. Die Besitzerrolle ist nur per TransferOwnership änderbar,
// Admins anderer Mitglieder darf nur der Besitzer anfassen.
func (s *TeamService) UpdateMember(ctx context.Context, userID, teamID, memberID string, req team_dto.UpdateMemberRequest) (*team_dto.TeamResponse, *app_errors.AppError) {
	role := entity.TeamRole(req.Role)
	if !role.IsValid() || role == entity.TeamRoleOwner {
		return nil, app_errors.NewAppError(fiber.StatusBadRequest, app_errors.ErrTeam, "team.owner_role_immutable", nil)
	}

	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	team, err := s.repo.GetTeamByIDForUpdate(ctx, tx, teamID)
	if err != nil {
		return nil, err
	}
	if err := requireTeam(team, userID, permission.ManageMembers); err != nil {
		return nil, err
	}

	member := team.FindMember(memberID)
	if member == nil {
		return nil, app_errors.NotFound("team.member_not_found")
	}
	if member.Role == entity.TeamRoleOwner {
		return nil, app_errors.NewAppError(fiber.StatusBadRequest, app_errors.ErrTeam, "team.owner_role_immutable", nil)
	}
	if member.Role == entity.TeamRoleAdmin && team.OwnerID != userID && memberID != userID {
		return nil, app_errors.Forbidden()
	}

	previous := member.Role
	member.Role = role
	member.Permissions = permission.SanitizeOverrides(permission.TeamPolicy, string(role), req.Permissions)

	if err := s.repo.UpdateTeam(ctx, tx, team); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	if previous != role && memberID != userID {
		s.notify(ctx, memberID, entity.NotifyRoleChanged, "Rolle geändert", team.Name,
			map[string]any{"teamId": team.ID, "from": previous, "to": role})
	}

	return s.buildTeamResponse(ctx, team, userID)
}

// RemoveMember: der Besitzer kann nicht entfernt werden, jedes Mitglied darf selbst austreten.
func (s *TeamService) RemoveMember(ctx context.Context, userID, teamID, memberID string) *app_errors.AppError {
	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	team, err := s.repo.GetTeamByIDForUpdate(ctx, tx, teamID)
	if err != nil {
		return err
	}
	if team.FindMember(userID) == nil {
		return app_errors.NotFound("team.not_found")
	}

	member := team.FindMember(memberID)
	if member == nil {
		return app_errors.NotFound("team.member_not_found")
	}
	if member.Role == entity.TeamRoleOwner {
		return app_errors.NewAppError(fiber.StatusBadRequest, app_errors.ErrTeam, "team.owner_cannot_leave", nil)
	}

	self := memberID == userID
	if !self {
		if !permission.Has(permission.TeamPolicy, userID, team.Members, permission.ManageMembers) {
			return app_errors.Forbidden()
		}
		if member.Role == entity.TeamRoleAdmin && team.OwnerID != userID {
			return app_errors.Forbidden()
		}
	}

	kept := team.Members[:0]
	for _, m := range team.Members {
		if m.UserID != memberID {
			kept = append(kept, m)
		}
	}
	team.Members = kept

	if err := s.repo.UpdateTeam(ctx, tx, team); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return err
	}

	if !self {
		s.notify(ctx, memberID, entity.NotifyMemberRemoved, "Aus Team entfernt", team.Name,
			map[string]any{"teamId": team.ID, "removedBy": userID})
	}
	return nil
}

// TransferOwnership macht das Ziel zum Besitzer, der bisherige Besitzer wird Admin.
func (s *TeamService) TransferOwnership(ctx context.Context, userID, teamID string, req team_dto.TransferOwnershipRequest) (*team_dto.TeamResponse, *app_errors.AppError) {
	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	team, err := s.repo.GetTeamByIDForUpdate(ctx, tx, teamID)
	if err != nil {
		return nil, err
	}
	if team.FindMember(userID) == nil {
		return nil, app_errors.NotFound("team.not_found")
	}
	if team.OwnerID != userID {
		return nil, app_errors.Forbidden()
	}
	if req.UserID == userID {
		return nil, app_errors.NewAppError(fiber.StatusBadRequest, app_errors.ErrTeam, "team.already_owner", nil)
	}

	target := team.FindMember(req.UserID)
	if target == nil {
		return nil, app_errors.NewAppError(fiber.StatusBadRequest, app_errors.ErrTeam, "team.target_not_member", nil)
	}

	target.Role = entity.TeamRoleOwner
	target.Permissions = nil
	previous := team.FindMember(userID)
	previous.Role = entity.TeamRoleAdmin
	previous.Permissions = nil
	team.OwnerID = req.UserID

	if err := s.repo.UpdateTeam(ctx, tx, team); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	s.notify(ctx, req.UserID, entity.NotifyOwnershipTransferred, "Team übernommen", team.Name,
		map[string]any{"teamId": team.ID, "previousOwner": userID})

	return s.buildTeamResponse(ctx, team, userID)
}

// JoinByInviteCode beachtet invitePolicy und maxMembers. Der Code ist nicht case-sensitiv.
func (s *TeamService) JoinByInviteCode(ctx context.Context, userID, code string) (*team_dto.TeamResponse, *app_errors.AppError) {
	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	team, err := s.repo.GetTeamByInviteCode(ctx, tx, strings.ToUpper(code))
	if err != nil {
		return nil, err
	}
	if team.Settings.InvitePolicy == entity.InviteInviteOnly {
		return nil, app_errors.NewAppError(fiber.StatusForbidden, app_errors.ErrForbidden, "team.invite_only", nil)
	}
	if team.FindMember(userID) != nil {
		return nil, app_errors.NewAppError(fiber.StatusConflict, app_errors.ErrConflict, "team.already_member", nil)
	}
	if team.IsFull() {
		return nil, teamFull()
	}

	role := team.Settings.DefaultRole
	if !role.IsValid() || role == entity.TeamRoleOwner {
		role = entity.TeamRoleMember
	}
	team.Members = append(team.Members, entity.TeamMember{UserID: userID, Role: role, JoinedAt: time.Now()})

	if err := s.repo.UpdateTeam(ctx, tx, team); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	s.notify(ctx, team.OwnerID, entity.NotifyMemberAdded, "Neues Mitglied", team.Name,
		map[string]any{"teamId": team.ID, "userId": userID, "viaInviteCode": true})

	return s.buildTeamResponse(ctx, team, userID)
}

func (s *TeamService) RegenerateInviteCode(ctx context.Context, userID, teamID string) (*team_dto.InviteCodeResponse, *app_errors.AppError) {
	team, err := s.getMemberTeam(ctx, userID, teamID)
	if err != nil {
		return nil, err
	}
	if !permission.Has(permission.TeamPolicy, userID, team.Members, permission.ManageSettings) {
		return nil, app_errors.Forbidden()
	}

	for attempt := 0; attempt < inviteCodeAttempts; attempt++ {
		team.InviteCode, err = newInviteCode()
		if err != nil {
			return nil, err
		}
		err = s.repo.UpdateTeam(ctx, nil, team)
		if !isInviteCodeClash(err) {
			break
		}
	}
	if err != nil {
		return nil, err
	}

	return &team_dto.InviteCodeResponse{InviteCode: team.InviteCode}, nil
}

// TeamStats rechnet über alle nicht archivierten Aufgaben der Mitglieder.
func (s *TeamService) TeamStats(ctx context.Context, userID, teamID string) (*stats.TeamStats, *app_errors.AppError) {
	team, err := s.getMemberTeam(ctx, userID, teamID)
	if err != nil {
		return nil, err
	}

	tasks, err := s.tasks.ListByOwners(ctx, entity.MemberIDs(team.Members))
	if err != nil {
		return nil, err
	}

	result := stats.ComputeTeamStats(team, tasks, time.Now())
	return &result, nil
}
