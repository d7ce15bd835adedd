package project_case

import (
	"context"
	"strings"
	"time"

	"github.com/Xenn-00/aufgaben-team/internal/abstraction/tx"
	project_dto "github.com/Xenn-00/aufgaben-team/internal/dtos/project-dto"
	"github.com/Xenn-00/aufgaben-team/internal/entity"
	app_errors "github.com/Xenn-00/aufgaben-team/internal/errors"
	"github.com/Xenn-00/aufgaben-team/internal/permission"
	notification_repo "github.com/Xenn-00/aufgaben-team/internal/repo/notification-repo"
	project_repo "github.com/Xenn-00/aufgaben-team/internal/repo/project-repo"
	task_repo "github.com/Xenn-00/aufgaben-team/internal/repo/task-repo"
	team_repo "github.com/Xenn-00/aufgaben-team/internal/repo/team-repo"
	user_repo "github.com/Xenn-00/aufgaben-team/internal/repo/user-repo"
	"github.com/Xenn-00/aufgaben-team/internal/stats"
	use_cases "github.com/Xenn-00/aufgaben-team/internal/use-cases"
	"github.com/Xenn-00/aufgaben-team/internal/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.mongodb.org/mongo-driver/mongo"
)

type ProjectService struct {
	repo          project_repo.ProjectRepoContract
	teams         team_repo.TeamRepoContract
	users         user_repo.UserRepoContract
	tasks         task_repo.TaskRepoContract
	txManager     tx.TxManager
	notifications notification_repo.NotificationRepoContract
}

func NewProjectService(db *pgxpool.Pool, mdb *mongo.Database) ProjectServiceContract {
	return &ProjectService{
		repo:          project_repo.NewProjectRepo(db),
		teams:         team_repo.NewTeamRepo(db),
		users:         user_repo.NewUserRepo(db),
		tasks:         task_repo.NewTaskRepo(db),
		txManager:     tx.NewPgxTxManager(db),
		notifications: notification_repo.NewNotificationRepo(mdb),
	}
}

func (s *ProjectService) CreateProject(ctx context.Context, userID string, req project_dto.CreateProjectRequest) (*project_dto.ProjectResponse, *app_errors.AppError) {
	if err := validateDates(req.StartDate, req.EndDate); err != nil {
		return nil, err
	}

	// Teamprojekte: manage_projects oder create_projects im Team
	var team *entity.TeamEntity
	if req.TeamID != nil {
		var err *app_errors.AppError
		team, err = s.teams.GetTeamByID(ctx, *req.TeamID)
		if err != nil {
			return nil, err
		}
		if team.FindMember(userID) == nil {
			return nil, app_errors.NotFound("team.not_found")
		}
		if !permission.Has(permission.TeamPolicy, userID, team.Members, permission.ManageProjects) &&
			!permission.Has(permission.TeamPolicy, userID, team.Members, permission.CreateProjects) {
			return nil, app_errors.Forbidden()
		}
	}

	id, idErr := utils.NewID()
	if idErr != nil {
		return nil, app_errors.Internal(idErr)
	}

	settings := entity.DefaultProjectSettings()
	if team == nil {
		settings.Visibility = entity.VisibilityPrivate
	}
	applySettings(&settings, req.Settings)

	color := req.Color
	if color == "" {
		color = defaultColor
	}
	icon := req.Icon
	if icon == "" {
		icon = defaultIcon
	}

	now := time.Now()
	project := &entity.ProjectEntity{
		ID:          id,
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Color:       color,
		Icon:        icon,
		OwnerID:     userID,
		TeamID:      req.TeamID,
		Members:     []entity.ProjectMember{{UserID: userID, Role: entity.ProjectRoleOwner, JoinedAt: now}},
		Settings:    settings,
		Status:      entity.ProjectActive,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		CreatedAt:   now,
	}

	if err := s.repo.InsertNewProject(ctx, project); err != nil {
		return nil, err
	}

	if team != nil {
		use_cases.NotifyMany(ctx, s.notifications, entity.MemberIDs(team.Members), userID, func(recipientID string) *entity.NotificationEntity {
			return &entity.NotificationEntity{
				RecipientID: recipientID,
				Type:        entity.NotifyProjectAdded,
				Title:       "Neues Projekt",
				Message:     project.Name,
				Data:        map[string]any{"projectId": project.ID, "teamId": team.ID, "createdBy": userID},
			}
		})
	}

	return s.buildResponse(ctx, project, userID)
}

func (s *ProjectService) ListProjects(ctx context.Context, userID string, query project_dto.ListProjectsQuery) ([]project_dto.ProjectResponse, *app_errors.AppError) {
	filter := entity.ProjectListFilter{UserID: userID, Archived: query.Archived}
	if query.TeamID != "" {
		filter.TeamID = &query.TeamID
	}

	projects, err := s.repo.ListProjects(ctx, filter)
	if err != nil {
		return nil, err
	}
	return s.buildResponses(ctx, projects, userID)
}

func (s *ProjectService) GetProject(ctx context.Context, userID, projectID string) (*project_dto.ProjectResponse, *app_errors.AppError) {
	project, err := s.getViewableProject(ctx, userID, projectID)
	if err != nil {
		return nil, err
	}
	return s.buildResponse(ctx, project, userID)
}

func (s *ProjectService) UpdateProject(ctx context.Context, userID, projectID string, req project_dto.UpdateProjectRequest) (*project_dto.ProjectResponse, *app_errors.AppError) {
	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	project, err := s.repo.GetProjectByIDForUpdate(ctx, tx, projectID)
	if err != nil {
		return nil, err
	}
	if err := requireProject(project, userID, permission.ManageSettings); err != nil {
		return nil, err
	}

	if req.Name != nil {
		project.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		project.Description = req.Description
	}
	if req.Color != nil {
		project.Color = *req.Color
	}
	if req.Icon != nil {
		project.Icon = *req.Icon
	}
	if req.StartDate != nil {
		project.StartDate = req.StartDate
	}
	if req.EndDate != nil {
		project.EndDate = req.EndDate
	}
	if req.Status != nil {
		status := entity.ProjectStatus(*req.Status)
		// Archivieren hat eigene Regeln, siehe ArchiveProject
		if status == entity.ProjectArchived || project.Archived {
			return nil, app_errors.NewAppError(fiber.StatusBadRequest, app_errors.ErrProject, "project.status_via_archive", nil)
		}
		project.Status = status
	}
	applySettings(&project.Settings, req.Settings)

	if err := validateDates(project.StartDate, project.EndDate); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateProject(ctx, tx, project); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return s.buildResponse(ctx, project, userID)
}

// DeleteProject: Projektbesitzer oder Besitzer des Teams. Aufgaben bleiben ohne Projekt erhalten.
func (s *ProjectService) DeleteProject(ctx context.Context, userID, projectID string) *app_errors.AppError {
	project, err := s.repo.GetProjectByID(ctx, projectID)
	if err != nil {
		return err
	}

	team, err := s.loadTeam(ctx, project)
	if err != nil {
		return err
	}
	if !permission.CanDestroyProject(userID, project, team) {
		if project.FindMember(userID) == nil && (team == nil || team.FindMember(userID) == nil) {
			return app_errors.NotFound("project.not_found")
		}
		return app_errors.Forbidden()
	}

	return s.repo.DeleteProject(ctx, projectID)
}

// ArchiveProject folgt derselben Regel wie DeleteProject und merkt sich, wer archiviert hat.
func (s *ProjectService) ArchiveProject(ctx context.Context, userID, projectID string, archived bool) (*project_dto.ProjectResponse, *app_errors.AppError) {
	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	project, err := s.repo.GetProjectByIDForUpdate(ctx, tx, projectID)
	if err != nil {
		return nil, err
	}

	team, err := s.loadTeam(ctx, project)
	if err != nil {
		return nil, err
	}
	if !permission.CanDestroyProject(userID, project, team) {
		return nil, app_errors.Forbidden()
	}

	if archived {
		now := time.Now()
		project.Archived = true
		project.ArchivedAt = &now
		project.ArchivedBy = &userID
		project.Status = entity.ProjectArchived
	} else {
		project.Archived = false
		project.ArchivedAt = nil
		project.ArchivedBy = nil
		project.Status = entity.ProjectActive
	}

	if err := s.repo.UpdateProject(ctx, tx, project); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return s.buildResponse(ctx, project, userID)
}

func (s *ProjectService) ListMembers(ctx context.Context, userID, projectID string) ([]project_dto.ProjectMemberResponse, *app_errors.AppError) {
	project, err := s.getViewableProject(ctx, userID, projectID)
	if err != nil {
		return nil, err
	}

	summaries, err := s.users.FindSummaries(ctx, entity.MemberIDs(project.Members))
	if err != nil {
		return nil, err
	}
	return memberResponses(project, summaries), nil
}

// AddMember: bei Teamprojekten nur Teammitglieder.
func (s *ProjectService) AddMember(ctx context.Context, userID, projectID string, req project_dto.AddProjectMemberRequest) (*project_dto.ProjectResponse, *app_errors.AppError) {
	if _, err := s.users.FindByUserID(ctx, req.UserID); err != nil {
		return nil, err
	}

	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	project, err := s.repo.GetProjectByIDForUpdate(ctx, tx, projectID)
	if err != nil {
		return nil, err
	}
	if err := requireProject(project, userID, permission.ManageMembers); err != nil {
		return nil, err
	}
	if project.FindMember(req.UserID) != nil {
		return nil, app_errors.NewAppError(fiber.StatusConflict, app_errors.ErrConflict, "project.already_member", nil)
	}

	team, err := s.loadTeam(ctx, project)
	if err != nil {
		return nil, err
	}
	if team != nil && team.FindMember(req.UserID) == nil {
		return nil, app_errors.NewAppError(fiber.StatusBadRequest, app_errors.ErrProject, "project.not_team_member", nil)
	}

	role := entity.ProjectRole(req.Role)
	if !role.IsValid() || role == entity.ProjectRoleOwner {
		role = entity.ProjectRoleMember
	}
	project.Members = append(project.Members, entity.ProjectMember{UserID: req.UserID, Role: role, JoinedAt: time.Now()})

	if err := s.repo.UpdateProject(ctx, tx, project); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	use_cases.Notify(ctx, s.notifications, &entity.NotificationEntity{
		RecipientID: req.UserID,
		Type:        entity.NotifyProjectAdded,
		Title:       "Zu Projekt hinzugefügt",
		Message:     project.Name,
		Data:        map[string]any{"projectId": project.ID, "addedBy": userID, "role": role},
	})

	return s.buildResponse(ctx, project, userID)
}

func (s *ProjectService) UpdateMember(ctx context.Context, userID, projectID, memberID string, req project_dto.UpdateProjectMemberRequest) (*project_dto.ProjectResponse, *app_errors.AppError) {
	role := entity.ProjectRole(req.Role)
	if !role.IsValid() || role == entity.ProjectRoleOwner {
		return nil, app_errors.NewAppError(fiber.StatusBadRequest, app_errors.ErrProject, "project.owner_role_immutable", nil)
	}

	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	project, err := s.repo.GetProjectByIDForUpdate(ctx, tx, projectID)
	if err != nil {
		return nil, err
	}
	if err := requireProject(project, userID, permission.ManageMembers); err != nil {
		return nil, err
	}

	member := project.FindMember(memberID)
	if member == nil {
		return nil, app_errors.NotFound("project.member_not_found")
	}
	if member.Role == entity.ProjectRoleOwner {
		return nil, app_errors.NewAppError(fiber.StatusBadRequest, app_errors.ErrProject, "project.owner_role_immutable", nil)
	}

	previous := member.Role
	member.Role = role
	member.Permissions = permission.SanitizeOverrides(permission.ProjectPolicy, string(role), req.Permissions)

	if err := s.repo.UpdateProject(ctx, tx, project); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	if previous != role && memberID != userID {
		use_cases.Notify(ctx, s.notifications, &entity.NotificationEntity{
			RecipientID: memberID,
			Type:        entity.NotifyRoleChanged,
			Title:       "Rolle geändert",
			Message:     project.Name,
			Data:        map[string]any{"projectId": project.ID, "from": previous, "to": role},
		})
	}

	return s.buildResponse(ctx, project, userID)
}

func (s *ProjectService) RemoveMember(ctx context.Context, userID, projectID, memberID string) *app_errors.AppError {
	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	project, err := s.repo.GetProjectByIDForUpdate(ctx, tx, projectID)
	if err != nil {
		return err
	}
	if project.FindMember(userID) == nil {
		return app_errors.NotFound("project.not_found")
	}

	member := project.FindMember(memberID)
	if member == nil {
		return app_errors.NotFound("project.member_not_found")
	}
	if member.Role == entity.ProjectRoleOwner {
		return app_errors.NewAppError(fiber.StatusBadRequest, app_errors.ErrProject, "project.owner_cannot_leave", nil)
	}
	if memberID != userID && !permission.Has(permission.ProjectPolicy, userID, project.Members, permission.ManageMembers) {
		return app_errors.Forbidden()
	}

	kept := project.Members[:0]
	for _, m := range project.Members {
		if m.UserID != memberID {
			kept = append(kept, m)
		}
	}
	project.Members = kept

	if err := s.repo.UpdateProject(ctx, tx, project); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return err
	}

	if memberID != userID {
		use_cases.Notify(ctx, s.notifications, &entity.NotificationEntity{
			RecipientID: memberID,
			Type:        entity.NotifyMemberRemoved,
			Title:       "Aus Projekt entfernt",
			Message:     project.Name,
			Data:        map[string]any{"projectId": project.ID, "removedBy": userID},
		})
	}
	return nil
}

func (s *ProjectService) Progress(ctx context.Context, userID, projectID string) (*project_dto.ProjectProgressResponse, *app_errors.AppError) {
	project, err := s.getViewableProject(ctx, userID, projectID)
	if err != nil {
		return nil, err
	}

	tasks, err := s.tasks.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	return &project_dto.ProjectProgressResponse{
		Overview:   stats.ComputeOverview(tasks),
		Timeline:   stats.ComputeTimeline(project.StartDate, project.EndDate, now),
		ComputedAt: now,
	}, nil
}

func (s *ProjectService) ProjectStats(ctx context.Context, userID, projectID string) (*stats.ProjectStats, *app_errors.AppError) {
	project, err := s.getViewableProject(ctx, userID, projectID)
	if err != nil {
		return nil, err
	}

	tasks, err := s.tasks.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	result := stats.ComputeProjectStats(project, tasks, time.Now())
	return &result, nil
}
