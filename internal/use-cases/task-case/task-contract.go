package task_case

import (
	"context"

	"github.com/Xenn-00/aufgaben-team/internal/dtos"
	task_dto "github.com/Xenn-00/aufgaben-team/internal/dtos/task-dto"
	app_errors "github.com/Xenn-00/aufgaben-team/internal/errors"
)

type TaskServiceContract interface {
	CreateTask(ctx context.Context, userID string, req task_dto.CreateTaskRequest) (*task_dto.TaskResponse, *app_errors.AppError)
	ListTasks(ctx context.Context, userID string, query task_dto.ListTasksQuery) (*dtos.Paged[task_dto.TaskResponse], *app_errors.AppError)
	ListTasksForUser(ctx context.Context, targetID, viewerID string, query task_dto.ListTasksQuery) (*dtos.Paged[task_dto.TaskResponse], *app_errors.AppError)
	GetTask(ctx context.Context, userID, taskID string) (*task_dto.TaskResponse, *app_errors.AppError)
	UpdateTask(ctx context.Context, userID, taskID string, req task_dto.UpdateTaskRequest) (*task_dto.TaskResponse, *app_errors.AppError)
	DeleteTask(ctx context.Context, userID, taskID string) *app_errors.AppError
	ArchiveTask(ctx context.Context, userID, taskID string, archived bool) (*task_dto.TaskResponse, *app_errors.AppError)
	CompleteTask(ctx context.Context, userID, taskID string) (*task_dto.CompleteTaskResponse, *app_errors.AppError)
	UpdateStatus(ctx context.Context, userID, taskID string, req task_dto.UpdateStatusRequest) (*task_dto.TaskResponse, *app_errors.AppError)

	AddSubtask(ctx context.Context, userID, taskID string, req task_dto.AddSubtaskRequest) (*task_dto.TaskResponse, *app_errors.AppError)
	UpdateSubtask(ctx context.Context, userID, taskID, subtaskID string, req task_dto.UpdateSubtaskRequest) (*task_dto.TaskResponse, *app_errors.AppError)
	AddComment(ctx context.Context, userID, taskID string, req task_dto.AddCommentRequest) (*task_dto.TaskResponse, *app_errors.AppError)
	AddTimeEntry(ctx context.Context, userID, taskID string, req task_dto.AddTimeEntryRequest) (*task_dto.TaskResponse, *app_errors.AppError)
}
