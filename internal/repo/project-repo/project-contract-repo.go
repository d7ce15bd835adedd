package project_repo

import (
	"context"
	"time"

	"github.com/Xenn-00/aufgaben-team/internal/abstraction/tx"
	"github.com/Xenn-00/aufgaben-team/internal/entity"
	app_errors "github.com/Xenn-00/aufgaben-team/internal/errors"
)

type ProjectRepoContract interface {
	InsertNewProject(ctx context.Context, project *entity.ProjectEntity) *app_errors.AppError
	GetProjectByID(ctx context.Context, projectID string) (*entity.ProjectEntity, *app_errors.AppError)
	GetProjectByIDForUpdate(ctx context.Context, t tx.Tx, projectID string) (*entity.ProjectEntity, *app_errors.AppError)
	ListProjects(ctx context.Context, filter entity.ProjectListFilter) ([]entity.ProjectEntity, *app_errors.AppError)
	UpdateProject(ctx context.Context, t tx.Tx, project *entity.ProjectEntity) *app_errors.AppError
	DeleteProject(ctx context.Context, projectID string) *app_errors.AppError
	TouchActivity(ctx context.Context, projectID string, at time.Time) *app_errors.AppError
}
