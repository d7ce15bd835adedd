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

func TestCompleteTask_RecurringCreatesNextOccurrence(t *testing.T) {
	ctx := context.Background()

	repo := new(use_cases.MockTaskRepo)
	txManager := new(use_cases.MockTxManager)
	tx := new(use_cases.MockTx)
	cache := new(use_cases.MockCache)
	service := &TaskService{repo: repo, txManager: txManager, cache: cache}

	due := time.Now().Add(2 * time.Hour).Truncate(time.Second)
	task := &entity.TaskEntity{
		ID:        "task-1",
		OwnerID:   "user-1",
		Title:     "Standup",
		Status:    entity.TaskInProgress,
		DueDate:   due,
		Tags:      []string{"daily"},
		Subtasks:  []entity.Subtask{{ID: "sub-1", Title: "notes", Completed: true}},
		CreatedAt: time.Now().Add(-3 * time.Hour),
		Recurrence: &entity.Recurrence{
			Pattern:  entity.RecurrenceDaily,
			Interval: 1,
		},
	}

	repo.On("GetTaskByID", ctx, "task-1").Return(task, (*app_errors.AppError)(nil))
	txManager.On("Begin", ctx).Return(tx, (*app_errors.AppError)(nil))
	repo.On("UpdateTask", ctx, tx, mock.MatchedBy(func(t *entity.TaskEntity) bool {
		return t.ID == "task-1" && t.Status == entity.TaskCompleted && t.CompletedAt != nil
	})).Return((*app_errors.AppError)(nil))
	repo.On("InsertTask", ctx, tx, mock.MatchedBy(func(t *entity.TaskEntity) bool {
		return t.ID != "task-1" && t.DueDate.Equal(due.AddDate(0, 0, 1))
	})).Return((*app_errors.AppError)(nil))
	tx.On("Commit", ctx).Return((*app_errors.AppError)(nil))
	tx.On("Rollback", ctx).Return((*app_errors.AppError)(nil))
	cache.On("Del", ctx, []string{"stats:user:user-1"}).Return(nil)

	resp, err := service.CompleteTask(ctx, "user-1", "task-1")

	assert.Nil(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, entity.TaskCompleted, resp.Task.Status)
	require.NotNil(t, resp.Task.CompletionTime)
	assert.InDelta(t, 3.0, *resp.Task.CompletionTime, 0.01)

	require.NotNil(t, resp.Next)
	assert.Equal(t, entity.TaskInProgress, resp.Next.Status)
	assert.Equal(t, due.AddDate(0, 0, 1), resp.Next.DueDate)
	assert.Equal(t, []string{"daily"}, resp.Next.Tags)
	require.Len(t, resp.Next.Subtasks, 1)
	assert.False(t, resp.Next.Subtasks[0].Completed)
	assert.NotEqual(t, "sub-1", resp.Next.Subtasks[0].ID)
	require.NotNil(t, resp.Next.Recurrence.NextDueDate)
	assert.Equal(t, due.AddDate(0, 0, 2), *resp.Next.Recurrence.NextDueDate)

	repo.AssertExpectations(t)
	tx.AssertExpectations(t)
	txManager.AssertExpectations(t)
}

func TestCompleteTask_SeriesEndedCreatesNothing(t *testing.T) {
	ctx := context.Background()

	repo := new(use_cases.MockTaskRepo)
	txManager := new(use_cases.MockTxManager)
	tx := new(use_cases.MockTx)
	cache := new(use_cases.MockCache)
	service := &TaskService{repo: repo, txManager: txManager, cache: cache}

	due := time.Now().Add(time.Hour)
	end := due.Add(time.Hour)
	repo.On("GetTaskByID", ctx, "task-1").Return(&entity.TaskEntity{
		ID: "task-1", OwnerID: "user-1", Status: entity.TaskInProgress, DueDate: due, CreatedAt: time.Now(),
		Recurrence: &entity.Recurrence{Pattern: entity.RecurrenceWeekly, Interval: 1, EndDate: &end},
	}, (*app_errors.AppError)(nil))
	txManager.On("Begin", ctx).Return(tx, (*app_errors.AppError)(nil))
	repo.On("UpdateTask", ctx, tx, mock.Anything).Return((*app_errors.AppError)(nil))
	tx.On("Commit", ctx).Return((*app_errors.AppError)(nil))
	tx.On("Rollback", ctx).Return((*app_errors.AppError)(nil))
	cache.On("Del", ctx, mock.Anything).Return(nil)

	resp, err := service.CompleteTask(ctx, "user-1", "task-1")

	assert.Nil(t, err)
	assert.Nil(t, resp.Next)
	repo.AssertNotCalled(t, "InsertTask", mock.Anything, mock.Anything, mock.Anything)
}

func TestCompleteTask_AlreadyCompleted(t *testing.T) {
	ctx := context.Background()

	repo := new(use_cases.MockTaskRepo)
	service := &TaskService{repo: repo}

	repo.On("GetTaskByID", ctx, "task-1").Return(&entity.TaskEntity{
		ID: "task-1", OwnerID: "user-1", Status: entity.TaskCompleted,
	}, (*app_errors.AppError)(nil))

	_, err := service.CompleteTask(ctx, "user-1", "task-1")

	require.NotNil(t, err)
	assert.Equal(t, fiber.StatusBadRequest, err.Code)
	assert.Equal(t, "task.already_completed", err.MessageKey)
}

func TestCompleteTask_InsertFailureRollsBack(t *testing.T) {
	ctx := context.Background()

	repo := new(use_cases.MockTaskRepo)
	txManager := new(use_cases.MockTxManager)
	tx := new(use_cases.MockTx)
	service := &TaskService{repo: repo, txManager: txManager}

	repo.On("GetTaskByID", ctx, "task-1").Return(&entity.TaskEntity{
		ID: "task-1", OwnerID: "user-1", Status: entity.TaskInProgress, DueDate: time.Now(), CreatedAt: time.Now(),
		Recurrence: &entity.Recurrence{Pattern: entity.RecurrenceDaily, Interval: 1},
	}, (*app_errors.AppError)(nil))
	txManager.On("Begin", ctx).Return(tx, (*app_errors.AppError)(nil))
	repo.On("UpdateTask", ctx, tx, mock.Anything).Return((*app_errors.AppError)(nil))
	repo.On("InsertTask", ctx, tx, mock.Anything).Return(app_errors.Internal(assert.AnError))
	tx.On("Rollback", ctx).Return((*app_errors.AppError)(nil))

	_, err := service.CompleteTask(ctx, "user-1", "task-1")

	require.NotNil(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, err.Code)
	tx.AssertNotCalled(t, "Commit", mock.Anything)
	tx.AssertExpectations(t)
}

func TestUpdateStatus_LeavingCompletedClearsCompletion(t *testing.T) {
	ctx := context.Background()

	repo := new(use_cases.MockTaskRepo)
	cache := new(use_cases.MockCache)
	service := &TaskService{repo: repo, cache: cache}

	done := time.Now().Add(-time.Hour)
	hours := 1.5
	repo.On("GetTaskByID", ctx, "task-1").Return(&entity.TaskEntity{
		ID: "task-1", OwnerID: "user-1", Status: entity.TaskCompleted, DueDate: time.Now().Add(time.Hour),
		CompletedAt: &done, CompletionTime: &hours,
	}, (*app_errors.AppError)(nil))
	repo.On("UpdateTask", ctx, mock.Anything, mock.MatchedBy(func(t *entity.TaskEntity) bool {
		return t.Status == entity.TaskInProgress && t.CompletedAt == nil && t.CompletionTime == nil
	})).Return((*app_errors.AppError)(nil))
	cache.On("Del", ctx, mock.Anything).Return(nil)

	resp, err := service.UpdateStatus(ctx, "user-1", "task-1", task_dto.UpdateStatusRequest{Status: "in-progress"})

	assert.Nil(t, err)
	assert.Equal(t, entity.TaskInProgress, resp.Status)
	repo.AssertExpectations(t)
}

func TestAddTimeEntry_ComputesMinutes(t *testing.T) {
	ctx := context.Background()

	repo := new(use_cases.MockTaskRepo)
	cache := new(use_cases.MockCache)
	service := &TaskService{repo: repo, cache: cache}

	repo.On("GetTaskByID", ctx, "task-1").Return(&entity.TaskEntity{ID: "task-1", OwnerID: "user-1"}, (*app_errors.AppError)(nil))
	repo.On("UpdateTask", ctx, mock.Anything, mock.Anything).Return((*app_errors.AppError)(nil))
	cache.On("Del", ctx, mock.Anything).Return(nil)

	start := time.Date(2030, 5, 1, 9, 0, 0, 0, time.UTC)
	resp, err := service.AddTimeEntry(ctx, "user-1", "task-1", task_dto.AddTimeEntryRequest{
		StartTime: start,
		EndTime:   start.Add(90 * time.Minute),
	})

	assert.Nil(t, err)
	require.Len(t, resp.TimeEntries, 1)
	assert.Equal(t, 90, resp.TimeEntries[0].Duration)
	assert.Equal(t, "user-1", resp.TimeEntries[0].UserID)
}

func TestAddTimeEntry_EndBeforeStart(t *testing.T) {
	ctx := context.Background()

	repo := new(use_cases.MockTaskRepo)
	service := &TaskService{repo: repo}

	start := time.Now()
	_, err := service.AddTimeEntry(ctx, "user-1", "task-1", task_dto.AddTimeEntryRequest{StartTime: start, EndTime: start})

	require.NotNil(t, err)
	assert.Equal(t, fiber.StatusBadRequest, err.Code)
	repo.AssertNotCalled(t, "GetTaskByID", mock.Anything, mock.Anything)
}

func TestUpdateSubtask_UnknownSubtask(t *testing.T) {
	ctx := context.Background()

	repo := new(use_cases.MockTaskRepo)
	service := &TaskService{repo: repo}

	repo.On("GetTaskByID", ctx, "task-1").Return(&entity.TaskEntity{ID: "task-1", OwnerID: "user-1"}, (*app_errors.AppError)(nil))

	done := true
	_, err := service.UpdateSubtask(ctx, "user-1", "task-1", "missing", task_dto.UpdateSubtaskRequest{Completed: &done})

	require.NotNil(t, err)
	assert.Equal(t, fiber.StatusNotFound, err.Code)
}
