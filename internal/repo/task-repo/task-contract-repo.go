package task_repo

import (
	"context"
	"time"

	"github.com/Xenn-00/aufgaben-team/internal/abstraction/tx"
	"github.com/Xenn-00/aufgaben-team/internal/entity"
	app_errors "github.com/Xenn-00/aufgaben-team/internal/errors"
	"github.com/Xenn-00/aufgaben-team/internal/stats"
)

type TaskRepoContract interface {
	InsertTask(ctx context.Context, t tx.Tx, task *entity.TaskEntity) *app_errors.AppError
	GetTaskByID(ctx context.Context, taskID string) (*entity.TaskEntity, *app_errors.AppError)
	ListTasks(ctx context.Context, filter entity.TaskListFilter) ([]entity.TaskEntity, int, *app_errors.AppError)
	UpdateTask(ctx context.Context, t tx.Tx, task *entity.TaskEntity) *app_errors.AppError
	DeleteTask(ctx context.Context, taskID string) *app_errors.AppError

	// Statistik
	CountByStatus(ctx context.Context, ownerID string) (stats.StatusCounts, *app_errors.AppError)
	CountOverdue(ctx context.Context, ownerID string, now time.Time) (int, *app_errors.AppError)
	ListCompletedSamples(ctx context.Context, ownerID string) ([]stats.CompletedSample, *app_errors.AppError)
	ListByOwners(ctx context.Context, ownerIDs []string) ([]entity.TaskEntity, *app_errors.AppError)
	ListByProject(ctx context.Context, projectID string) ([]entity.TaskEntity, *app_errors.AppError)

	// Hintergrund-Jobs
	ListShouldRemindOverdue(ctx context.Context, now time.Time, limit int) ([]entity.OverdueTask, *app_errors.AppError)
	BatchUpdateReminderOverdue(ctx context.Context, t tx.Tx, taskIDs []string, at time.Time) *app_errors.AppError
	MaterializeFailed(ctx context.Context, now time.Time) ([]string, int64, *app_errors.AppError)
}
