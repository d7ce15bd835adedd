package project_case

import (
	"context"
	"time"

	project_dto "github.com/Xenn-00/aufgaben-team/internal/dtos/project-dto"
	"github.com/Xenn-00/aufgaben-team/internal/entity"
	app_errors "github.com/Xenn-00/aufgaben-team/internal/errors"
	"github.com/Xenn-00/aufgaben-team/internal/permission"
	"github.com/gofiber/fiber/v2"
)

const (
	defaultColor = "#3B82F6"
	defaultIcon  = "folder"
)

func validateDates(start, end *time.Time) *app_errors.AppError {
	if start != nil && end != nil && end.Before(*start) {
		return app_errors.NewAppError(fiber.StatusBadRequest, app_errors.ErrProject, "project.invalid_dates", nil)
	}
	return nil
}

func applySettings(dst *entity.ProjectSettings, req *project_dto.ProjectSettingsRequest) {
	if req == nil {
		return
	}
	if req.DefaultPriority != nil {
		dst.DefaultPriority = entity.TaskPriority(*req.DefaultPriority)
	}
	if req.Visibility != nil {
		dst.Visibility = entity.ProjectVisibility(*req.Visibility)
	}
	if req.RequireApproval != nil {
		dst.RequireApproval = *req.RequireApproval
	}
}

// loadTeam liefert nil für persönliche Projekte oder wenn das Team nicht mehr existiert.
func (s *ProjectService) loadTeam(ctx context.Context, project *entity.ProjectEntity) (*entity.TeamEntity, *app_errors.AppError) {
	if project.TeamID == nil {
		return nil, nil
	}
	team, err := s.teams.GetTeamByID(ctx, *project.TeamID)
	if err != nil {
		if err.Code == fiber.StatusNotFound {
			return nil, nil
		}
		return nil, err
	}
	return team, nil
}

// canView: Projektmitglieder; bei Sichtbarkeit "team" zusätzlich alle Teammitglieder, bei "public" jeder.
func (s *ProjectService) canView(ctx context.Context, project *entity.ProjectEntity, userID string) (bool, *app_errors.AppError) {
	if permission.Has(permission.ProjectPolicy, userID, project.Members, permission.View) {
		return true, nil
	}
	switch project.Settings.Visibility {
	case entity.VisibilityPublic:
		return true, nil
	case entity.VisibilityTeam:
		team, err := s.loadTeam(ctx, project)
		if err != nil {
			return false, err
		}
		return team != nil && team.FindMember(userID) != nil, nil
	}
	return false, nil
}

func (s *ProjectService) getViewableProject(ctx context.Context, userID, projectID string) (*entity.ProjectEntity, *app_errors.AppError) {
	project, err := s.repo.GetProjectByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	ok, err := s.canView(ctx, project, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, app_errors.NotFound("project.not_found")
	}
	return project, nil
}

func requireProject(project *entity.ProjectEntity, userID string, action permission.Action) *app_errors.AppError {
	if project.FindMember(userID) == nil {
		return app_errors.NotFound("project.not_found")
	}
	if !permission.Has(permission.ProjectPolicy, userID, project.Members, action) {
		return app_errors.Forbidden()
	}
	return nil
}

func (s *ProjectService) buildResponses(ctx context.Context, projects []entity.ProjectEntity, viewerID string) ([]project_dto.ProjectResponse, *app_errors.AppError) {
	ids := []string{}
	for i := range projects {
		ids = append(ids, entity.MemberIDs(projects[i].Members)...)
	}
	summaries, err := s.users.FindSummaries(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]project_dto.ProjectResponse, 0, len(projects))
	for i := range projects {
		out = append(out, toResponse(&projects[i], summaries, viewerID))
	}
	return out, nil
}

func (s *ProjectService) buildResponse(ctx context.Context, project *entity.ProjectEntity, viewerID string) (*project_dto.ProjectResponse, *app_errors.AppError) {
	out, err := s.buildResponses(ctx, []entity.ProjectEntity{*project}, viewerID)
	if err != nil {
		return nil, err
	}
	return &out[0], nil
}

func toResponse(p *entity.ProjectEntity, summaries map[string]entity.UserSummary, viewerID string) project_dto.ProjectResponse {
	return project_dto.ProjectResponse{
		ID:             p.ID,
		Name:           p.Name,
		Description:    p.Description,
		Color:          p.Color,
		Icon:           p.Icon,
		OwnerID:        p.OwnerID,
		TeamID:         p.TeamID,
		Members:        memberResponses(p, summaries),
		Settings:       p.Settings,
		Status:         p.Status,
		StartDate:      p.StartDate,
		EndDate:        p.EndDate,
		LastActivityAt: p.LastActivityAt,
		Archived:       p.Archived,
		ArchivedAt:     p.ArchivedAt,
		ArchivedBy:     p.ArchivedBy,
		MyRole:         entity.ProjectRole(permission.RoleOf(viewerID, p.Members)),
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func memberResponses(p *entity.ProjectEntity, summaries map[string]entity.UserSummary) []project_dto.ProjectMemberResponse {
	out := make([]project_dto.ProjectMemberResponse, 0, len(p.Members))
	for _, m := range p.Members {
		summary, ok := summaries[m.UserID]
		if !ok {
			summary = entity.UserSummary{ID: m.UserID}
		}
		out = append(out, project_dto.ProjectMemberResponse{
			UserSummary: summary,
			Role:        m.Role,
			Permissions: permission.Allowed(permission.ProjectPolicy, m.UserID, p.Members),
			JoinedAt:    m.JoinedAt,
		})
	}
	return out
}
