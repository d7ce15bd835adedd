package task_case

import (
	"context"
	"strings"
	"time"

	task_dto "github.com/Xenn-00/aufgaben-team/internal/dtos/task-dto"
	"github.com/Xenn-00/aufgaben-team/internal/entity"
	app_errors "github.com/Xenn-00/aufgaben-team/internal/errors"
	"github.com/Xenn-00/aufgaben-team/internal/utils"
	"github.com/gofiber/fiber/v2"
)

// Unteraufgaben, Kommentare und Zeiteinträge sind in der Aufgabe eingebettet (JSONB)
// und werden zusammen mit ihr gespeichert.

func (s *TaskService) AddSubtask(ctx context.Context, userID, taskID string, req task_dto.AddSubtaskRequest) (*task_dto.TaskResponse, *app_errors.AppError) {
	task, _, err := s.getEditableTask(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	id, idErr := utils.NewID()
	if idErr != nil {
		return nil, app_errors.Internal(idErr)
	}

	now := time.Now()
	task.Subtasks = append(task.Subtasks, entity.Subtask{
		ID:        id,
		Title:     strings.TrimSpace(req.Title),
		CreatedAt: now,
	})

	return s.saveItems(ctx, task, now)
}

func (s *TaskService) UpdateSubtask(ctx context.Context, userID, taskID, subtaskID string, req task_dto.UpdateSubtaskRequest) (*task_dto.TaskResponse, *app_errors.AppError) {
	task, _, err := s.getEditableTask(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range task.Subtasks {
		if task.Subtasks[i].ID == subtaskID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, app_errors.NotFound("task.subtask_not_found")
	}

	now := time.Now()
	st := &task.Subtasks[idx]
	if req.Title != nil {
		st.Title = strings.TrimSpace(*req.Title)
	}
	if req.Completed != nil && *req.Completed != st.Completed {
		st.Completed = *req.Completed
		if st.Completed {
			st.CompletedAt = &now
		} else {
			st.CompletedAt = nil
		}
	}

	return s.saveItems(ctx, task, now)
}

// AddComment: kommentieren darf jeder, der die Aufgabe sehen kann.
func (s *TaskService) AddComment(ctx context.Context, userID, taskID string, req task_dto.AddCommentRequest) (*task_dto.TaskResponse, *app_errors.AppError) {
	task, _, err := s.getViewableTask(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	id, idErr := utils.NewID()
	if idErr != nil {
		return nil, app_errors.Internal(idErr)
	}

	now := time.Now()
	task.Comments = append(task.Comments, entity.Comment{
		ID:        id,
		UserID:    userID,
		Text:      strings.TrimSpace(req.Text),
		CreatedAt: now,
	})

	return s.saveItems(ctx, task, now)
}

// AddTimeEntry speichert die Dauer in ganzen Minuten.
func (s *TaskService) AddTimeEntry(ctx context.Context, userID, taskID string, req task_dto.AddTimeEntryRequest) (*task_dto.TaskResponse, *app_errors.AppError) {
	if !req.EndTime.After(req.StartTime) {
		return nil, app_errors.NewAppError(fiber.StatusBadRequest, app_errors.ErrTask, "task.invalid_time_entry", nil)
	}

	task, _, err := s.getEditableTask(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	id, idErr := utils.NewID()
	if idErr != nil {
		return nil, app_errors.Internal(idErr)
	}

	task.TimeEntries = append(task.TimeEntries, entity.TimeEntry{
		ID:        id,
		UserID:    userID,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Duration:  int(req.EndTime.Sub(req.StartTime).Minutes()),
		Note:      req.Note,
	})

	return s.saveItems(ctx, task, time.Now())
}

func (s *TaskService) saveItems(ctx context.Context, task *entity.TaskEntity, now time.Time) (*task_dto.TaskResponse, *app_errors.AppError) {
	if err := s.repo.UpdateTask(ctx, nil, task); err != nil {
		return nil, err
	}

	s.afterWrite(ctx, task, now)
	resp := task_dto.NewTaskResponse(task, now)
	return &resp, nil
}
