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

func strPtr(s string) *string { return &s }

func testProject(members ...entity.ProjectMember) *entity.ProjectEntity {
	return &entity.ProjectEntity{
		ID:       "project-1",
		OwnerID:  "owner-1",
		Members:  members,
		Settings: entity.DefaultProjectSettings(),
	}
}

func TestCreateTask_PersonalSuccess(t *testing.T) {
	ctx := context.Background()

	repo := new(use_cases.MockTaskRepo)
	cache := new(use_cases.MockCache)
	service := &TaskService{repo: repo, cache: cache}

	due := time.Now().Add(48 * time.Hour)
	repo.On("InsertTask", ctx, mock.Anything, mock.MatchedBy(func(task *entity.TaskEntity) bool {
		return task.OwnerID == "user-1" &&
			task.Status == entity.TaskInProgress &&
			task.Priority == entity.PriorityMedium &&
			task.Title == "Write report"
	})).Return((*app_errors.AppError)(nil))
	cache.On("Del", ctx, []string{"stats:user:user-1"}).Return(nil)

	resp, err := service.CreateTask(ctx, "user-1", task_dto.CreateTaskRequest{Title: "  Write report ", Due: due})

	assert.Nil(t, err)
	require.NotNil(t, resp)
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, entity.TaskInProgress, resp.DynamicStatus)
	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestCreateTask_RecurrenceSetsNextDueDate(t *testing.T) {
	ctx := context.Background()

	repo := new(use_cases.MockTaskRepo)
	cache := new(use_cases.MockCache)
	service := &TaskService{repo: repo, cache: cache}

	due := time.Date(2030, 1, 31, 9, 0, 0, 0, time.UTC)
	repo.On("InsertTask", ctx, mock.Anything, mock.Anything).Return((*app_errors.AppError)(nil))
	cache.On("Del", ctx, mock.Anything).Return(nil)

	resp, err := service.CreateTask(ctx, "user-1", task_dto.CreateTaskRequest{
		Title:      "Rent",
		Due:        due,
		Recurrence: &task_dto.RecurrenceRequest{Pattern: "monthly", Interval: 1},
	})

	assert.Nil(t, err)
	require.NotNil(t, resp.Recurrence)
	require.NotNil(t, resp.Recurrence.NextDueDate)
	assert.Equal(t, time.Date(2030, 2, 28, 9, 0, 0, 0, time.UTC), *resp.Recurrence.NextDueDate)
}

func TestCreateTask_AssigneeWithoutProject(t *testing.T) {
	ctx := context.Background()

	repo := new(use_cases.MockTaskRepo)
	service := &TaskService{repo: repo}

	_, err := service.CreateTask(ctx, "user-1", task_dto.CreateTaskRequest{
		Title:      "X",
		Due:        time.Now().Add(time.Hour),
		AssigneeID: strPtr("user-2"),
	})

	require.NotNil(t, err)
	assert.Equal(t, fiber.StatusBadRequest, err.Code)
	repo.AssertNotCalled(t, "InsertTask", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateTask_ViewerCannotCreate(t *testing.T) {
	ctx := context.Background()

	repo := new(use_cases.MockTaskRepo)
	projects := new(use_cases.MockProjectRepo)
	service := &TaskService{repo: repo, projects: projects}

	projects.On("GetProjectByID", ctx, "project-1").Return(testProject(
		entity.ProjectMember{UserID: "owner-1", Role: entity.ProjectRoleOwner},
		entity.ProjectMember{UserID: "user-1", Role: entity.ProjectRoleViewer},
	), (*app_errors.AppError)(nil))

	_, err := service.CreateTask(ctx, "user-1", task_dto.CreateTaskRequest{
		Title:     "X",
		Due:       time.Now().Add(time.Hour),
		ProjectID: strPtr("project-1"),
	})

	require.NotNil(t, err)
	assert.Equal(t, fiber.StatusForbidden, err.Code)
	repo.AssertNotCalled(t, "InsertTask", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateTask_AssigneeMustBeProjectMember(t *testing.T) {
	ctx := context.Background()

	projects := new(use_cases.MockProjectRepo)
	service := &TaskService{repo: new(use_cases.MockTaskRepo), projects: projects}

	projects.On("GetProjectByID", ctx, "project-1").Return(testProject(
		entity.ProjectMember{UserID: "user-1", Role: entity.ProjectRoleMember},
	), (*app_errors.AppError)(nil))

	_, err := service.CreateTask(ctx, "user-1", task_dto.CreateTaskRequest{
		Title:      "X",
		Due:        time.Now().Add(time.Hour),
		ProjectID:  strPtr("project-1"),
		AssigneeID: strPtr("stranger"),
	})

	require.NotNil(t, err)
	assert.Equal(t, fiber.StatusBadRequest, err.Code)
	assert.Equal(t, "task.assignee_not_member", err.MessageKey)
}

func TestCreateTask_ProjectAssigneeIsNotified(t *testing.T) {
	ctx := context.Background()

	repo := new(use_cases.MockTaskRepo)
	projects := new(use_cases.MockProjectRepo)
	cache := new(use_cases.MockCache)
	notifications := new(use_cases.MockNotificationRepo)
	service := &TaskService{repo: repo, projects: projects, cache: cache, notifications: notifications}

	project := testProject(
		entity.ProjectMember{UserID: "user-1", Role: entity.ProjectRoleMember},
		entity.ProjectMember{UserID: "user-2", Role: entity.ProjectRoleMember},
	)
	project.Settings.DefaultPriority = entity.PriorityHigh

	projects.On("GetProjectByID", ctx, "project-1").Return(project, (*app_errors.AppError)(nil))
	repo.On("InsertTask", ctx, mock.Anything, mock.MatchedBy(func(task *entity.TaskEntity) bool {
		return task.Priority == entity.PriorityHigh
	})).Return((*app_errors.AppError)(nil))
	cache.On("Del", ctx, []string{"stats:user:user-1"}).Return(nil)
	projects.On("TouchActivity", ctx, "project-1", mock.AnythingOfType("time.Time")).Return((*app_errors.AppError)(nil))
	notifications.On("InsertNotification", ctx, mock.MatchedBy(func(n *entity.NotificationEntity) bool {
		return n.RecipientID == "user-2" && n.Type == entity.NotifyTaskAssigned && !n.ExpiresAt.IsZero()
	})).Return((*app_errors.AppError)(nil))

	resp, err := service.CreateTask(ctx, "user-1", task_dto.CreateTaskRequest{
		Title:      "Review",
		Due:        time.Now().Add(time.Hour),
		ProjectID:  strPtr("project-1"),
		AssigneeID: strPtr("user-2"),
	})

	assert.Nil(t, err)
	require.NotNil(t, resp)
	repo.AssertExpectations(t)
	projects.AssertExpectations(t)
	notifications.AssertExpectations(t)
}
