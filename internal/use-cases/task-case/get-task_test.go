package task_case

import (
	"context"
	"testing"
	"time"

	task_dto "github.com/Xenn-00/aufgaben-team/internal/dtos/task-dto"
	"github.com/Xenn-00/aufgaben-team/internal/entity"
	app_errors "github.com/Xenn-00/aufgaben-team/internal/errors"
	use_cases "github.com/Xenn-00/aufgaben-team/internal/use-cases"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGetTask_OverdueIsReportedAsFailed(t *testing.T) {
	ctx := context.Background()

	repo := new(use_cases.MockTaskRepo)
	service := &TaskService{repo: repo}

	task := &entity.TaskEntity{
		ID:      "task-1",
		OwnerID: "user-1",
		Status:  entity.TaskInProgress,
		DueDate: time.Now().Add(-time.Hour),
	}
	repo.On("GetTaskByID", ctx, "task-1").Return(task, (*app_errors.AppError)(nil))

	resp, err := service.GetTask(ctx, "user-1", "task-1")

	assert.Nil(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, entity.TaskFailed, resp.DynamicStatus)
	// gespeicherter Status bleibt unverändert
	assert.Equal(t, entity.TaskInProgress, resp.Status)
	repo.AssertNotCalled(t, "UpdateTask", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetTask_StrangerSeesNotFound(t *testing.T) {
	ctx := context.Background()

	repo := new(use_cases.MockTaskRepo)
	service := &TaskService{repo: repo}

	repo.On("GetTaskByID", ctx, "task-1").Return(&entity.TaskEntity{ID: "task-1", OwnerID: "user-1"}, (*app_errors.AppError)(nil))

	resp, err := service.GetTask(ctx, "stranger", "task-1")

	assert.Nil(t, resp)
	require.NotNil(t, err)
	assert.Equal(t, fiber.StatusNotFound, err.Code)
}

func TestGetTask_ProjectViewerCanRead(t *testing.T) {
	ctx := context.Background()

	repo := new(use_cases.MockTaskRepo)
	projects := new(use_cases.MockProjectRepo)
	service := &TaskService{repo: repo, projects: projects}

	repo.On("GetTaskByID", ctx, "task-1").Return(&entity.TaskEntity{
		ID: "task-1", OwnerID: "user-1", ProjectID: strPtr("project-1"), DueDate: time.Now().Add(time.Hour), Status: entity.TaskInProgress,
	}, (*app_errors.AppError)(nil))
	projects.On("GetProjectByID", ctx, "project-1").Return(testProject(
		entity.ProjectMember{UserID: "viewer", Role: entity.ProjectRoleViewer},
	), (*app_errors.AppError)(nil))

	resp, err := service.GetTask(ctx, "viewer", "task-1")

	assert.Nil(t, err)
	assert.Equal(t, entity.TaskInProgress, resp.DynamicStatus)
}

func TestUpdateTask_ViewerForbidden(t *testing.T) {
	ctx := context.Background()

	repo := new(use_cases.MockTaskRepo)
	projects := new(use_cases.MockProjectRepo)
	service := &TaskService{repo: repo, projects: projects}

	repo.On("GetTaskByID", ctx, "task-1").Return(&entity.TaskEntity{
		ID: "task-1", OwnerID: "user-1", ProjectID: strPtr("project-1"),
	}, (*app_errors.AppError)(nil))
	projects.On("GetProjectByID", ctx, "project-1").Return(testProject(
		entity.ProjectMember{UserID: "viewer", Role: entity.ProjectRoleViewer},
	), (*app_errors.AppError)(nil))

	title := "new"
	_, err := service.UpdateTask(ctx, "viewer", "task-1", task_dto.UpdateTaskRequest{Title: &title})

	require.NotNil(t, err)
	assert.Equal(t, fiber.StatusForbidden, err.Code)
}

func TestUpdateTask_PastDueMaterializesFailed(t *testing.T) {
	ctx := context.Background()

	repo := new(use_cases.MockTaskRepo)
	cache := new(use_cases.MockCache)
	service := &TaskService{repo: repo, cache: cache}

	repo.On("GetTaskByID", ctx, "task-1").Return(&entity.TaskEntity{
		ID: "task-1", OwnerID: "user-1", Status: entity.TaskInProgress, DueDate: time.Now().Add(time.Hour),
	}, (*app_errors.AppError)(nil))
	repo.On("UpdateTask", ctx, mock.Anything, mock.MatchedBy(func(task *entity.TaskEntity) bool {
		return task.Status == entity.TaskFailed
	})).Return((*app_errors.AppError)(nil))
	cache.On("Del", ctx, []string{"stats:user:user-1"}).Return(nil)

	past := time.Now().Add(-24 * time.Hour)
	resp, err := service.UpdateTask(ctx, "user-1", "task-1", task_dto.UpdateTaskRequest{Due: &past})

	assert.Nil(t, err)
	assert.Equal(t, entity.TaskFailed, resp.Status)
	repo.AssertExpectations(t)
}

func TestUpdateTask_FutureDueRevivesFailedTask(t *testing.T) {
	ctx := context.Background()

	repo := new(use_cases.MockTaskRepo)
	cache := new(use_cases.MockCache)
	service := &TaskService{repo: repo, cache: cache}

	repo.On("GetTaskByID", ctx, "task-1").Return(&entity.TaskEntity{
		ID: "task-1", OwnerID: "user-1", Status: entity.TaskFailed, DueDate: time.Now().Add(-time.Hour),
	}, (*app_errors.AppError)(nil))
	repo.On("UpdateTask", ctx, mock.Anything, mock.Anything).Return((*app_errors.AppError)(nil))
	cache.On("Del", ctx, mock.Anything).Return(nil)

	future := time.Now().Add(24 * time.Hour)
	resp, err := service.UpdateTask(ctx, "user-1", "task-1", task_dto.UpdateTaskRequest{Due: &future})

	assert.Nil(t, err)
	assert.Equal(t, entity.TaskInProgress, resp.Status)
	assert.Equal(t, entity.TaskInProgress, resp.DynamicStatus)
}

func TestListTasks_FiltersByEffectiveStatusAndClampsLimit(t *testing.T) {
	ctx := context.Background()

	repo := new(use_cases.MockTaskRepo)
	service := &TaskService{repo: repo}

	repo.On("ListTasks", ctx, mock.MatchedBy(func(f entity.TaskListFilter) bool {
		return f.OwnerID == "user-1" &&
			f.EffectiveStatus != nil && *f.EffectiveStatus == entity.TaskFailed &&
			f.Limit == 100 && f.Offset == 100
	})).Return([]entity.TaskEntity{
		{ID: "task-1", OwnerID: "user-1", Status: entity.TaskInProgress, DueDate: time.Now().Add(-time.Hour)},
	}, 101, (*app_errors.AppError)(nil))

	query := task_dto.ListTasksQuery{Status: "failed"}
	query.Page = 2
	query.Limit = 500

	page, err := service.ListTasks(ctx, "user-1", query)

	assert.Nil(t, err)
	require.NotNil(t, page)
	require.Len(t, page.Items, 1)
	assert.Equal(t, entity.TaskFailed, page.Items[0].DynamicStatus)
	assert.Equal(t, 2, page.Pagination.Pages)
	repo.AssertExpectations(t)
}

func TestListTasksForUser_OtherUserForbidden(t *testing.T) {
	ctx := context.Background()

	service := &TaskService{repo: new(use_cases.MockTaskRepo)}

	_, err := service.ListTasksForUser(ctx, "target", "viewer", task_dto.ListTasksQuery{})

	require.NotNil(t, err)
	assert.Equal(t, fiber.StatusForbidden, err.Code)
}
