package project_case

import (
	"context"

	project_dto "github.com/Xenn-00/aufgaben-team/internal/dtos/project-dto"
	app_errors "github.com/Xenn-00/aufgaben-team/internal/errors"
	"github.com/Xenn-00/aufgaben-team/internal/stats"
)

type ProjectServiceContract interface {
	CreateProject(ctx context.Context, userID string, req project_dto.CreateProjectRequest) (*project_dto.ProjectResponse, *app_errors.AppError)
	ListProjects(ctx context.Context, userID string, query project_dto.ListProjectsQuery) ([]project_dto.ProjectResponse, *app_errors.AppError)
	GetProject(ctx context.Context, userID, projectID string) (*project_dto.ProjectResponse, *app_errors.AppError)
	UpdateProject(ctx context.Context, userID, projectID string, req project_dto.UpdateProjectRequest) (*project_dto.ProjectResponse, *app_errors.AppError)
	DeleteProject(ctx context.Context, userID, projectID string) *app_errors.AppError
	ArchiveProject(ctx context.Context, userID, projectID string, archived bool) (*project_dto.ProjectResponse, *app_errors.AppError)

	ListMembers(ctx context.Context, userID, projectID string) ([]project_dto.ProjectMemberResponse, *app_errors.AppError)
	AddMember(ctx context.Context, userID, projectID string, req project_dto.AddProjectMemberRequest) (*project_dto.ProjectResponse, *app_errors.AppError)
	UpdateMember(ctx context.Context, userID, projectID, memberID string, req project_dto.UpdateProjectMemberRequest) (*project_dto.ProjectResponse, *app_errors.AppError)
	RemoveMember(ctx context.Context, userID, projectID, memberID string) *app_errors.AppError

	Progress(ctx context.Context, userID, projectID string) (*project_dto.ProjectProgressResponse, *app_errors.AppError)
	ProjectStats(ctx context.Context, userID, projectID string) (*stats.ProjectStats, *app_errors.AppError)
}
