package task_case

import (
	"context"
	"math"
	"time"

	task_dto "github.com/Xenn-00/aufgaben-team/internal/dtos/task-dto"
	"github.com/Xenn-00/aufgaben-team/internal/entity"
	app_errors "github.com/Xenn-00/aufgaben-team/internal/errors"
	"github.com/Xenn-00/aufgaben-team/internal/permission"
	user_case "github.com/Xenn-00/aufgaben-team/internal/use-cases/user-case"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// loadProject liefert nil, wenn die Aufgabe keinem Projekt (mehr) angehört.
func (s *TaskService) loadProject(ctx context.Context, task *entity.TaskEntity) (*entity.ProjectEntity, *app_errors.AppError) {
	if task.ProjectID == nil {
		return nil, nil
	}
	return s.projects.GetProjectByID(ctx, *task.ProjectID)
}

func isAssignee(task *entity.TaskEntity, userID string) bool {
	return task.AssigneeID != nil && *task.AssigneeID == userID
}

// canView: Besitzer, Bearbeiter oder jedes Projektmitglied.
func canView(task *entity.TaskEntity, project *entity.ProjectEntity, userID string) bool {
	if task.OwnerID == userID || isAssignee(task, userID) {
		return true
	}
	return project != nil && permission.Has(permission.ProjectPolicy, userID, project.Members, permission.View)
}

// canEdit: der Besitzer immer, der Bearbeiter ohne Projekt oder mit edit_assigned_tasks,
// sonst nur mit edit_all_tasks im Projekt.
func canEdit(task *entity.TaskEntity, project *entity.ProjectEntity, userID string) bool {
	if task.OwnerID == userID {
		return true
	}
	if project == nil {
		return isAssignee(task, userID)
	}
	if isAssignee(task, userID) && permission.Has(permission.ProjectPolicy, userID, project.Members, permission.EditAssignedTasks) {
		return true
	}
	return permission.Has(permission.ProjectPolicy, userID, project.Members, permission.EditAllTasks)
}

func (s *TaskService) getViewableTask(ctx context.Context, userID, taskID string) (*entity.TaskEntity, *entity.ProjectEntity, *app_errors.AppError) {
	task, err := s.repo.GetTaskByID(ctx, taskID)
	if err != nil {
		return nil, nil, err
	}

	project, err := s.loadProject(ctx, task)
	if err != nil && err.Code != fiber.StatusNotFound {
		return nil, nil, err
	}

	if !canView(task, project, userID) {
		// fremde Aufgaben sind nicht auffindbar
		return nil, nil, app_errors.NotFound("task.not_found")
	}
	return task, project, nil
}

func (s *TaskService) getEditableTask(ctx context.Context, userID, taskID string) (*entity.TaskEntity, *entity.ProjectEntity, *app_errors.AppError) {
	task, project, err := s.getViewableTask(ctx, userID, taskID)
	if err != nil {
		return nil, nil, err
	}
	if !canEdit(task, project, userID) {
		return nil, nil, app_errors.Forbidden()
	}
	return task, project, nil
}

// afterWrite invalidiert die Statistik des Besitzers und markiert Aktivität im Projekt.
func (s *TaskService) afterWrite(ctx context.Context, task *entity.TaskEntity, now time.Time) {
	if s.cache != nil {
		if err := s.cache.Del(ctx, user_case.StatsKey(task.OwnerID)); err != nil {
			log.Warn().Err(err).Str("user_id", task.OwnerID).Msg("Fehler beim Löschen der Stats-Cache")
		}
	}
	if task.ProjectID != nil && s.projects != nil {
		if err := s.projects.TouchActivity(ctx, *task.ProjectID, now); err != nil {
			log.Warn().Err(err).Str("project_id", *task.ProjectID).Msg("lastActivityAt konnte nicht gesetzt werden")
		}
	}
}

func recurrenceFrom(req *task_dto.RecurrenceRequest, due time.Time) (*entity.Recurrence, *app_errors.AppError) {
	if req == nil {
		return nil, nil
	}
	r := &entity.Recurrence{
		Pattern:  entity.RecurrencePattern(req.Pattern),
		Interval: req.Interval,
		EndDate:  req.EndDate,
	}
	if err := r.Validate(); err != nil {
		return nil, app_errors.NewAppError(fiber.StatusBadRequest, app_errors.ErrTask, "task.invalid_recurrence", err)
	}
	if next, ok := r.NextAfter(due); ok {
		r.NextDueDate = &next
	}
	return r, nil
}

// completionHours rundet auf zwei Nachkommastellen.
func completionHours(created, completed time.Time) float64 {
	h := completed.Sub(created).Hours()
	if h < 0 {
		h = 0
	}
	return math.Round(h*100) / 100
}

func clearCompletion(task *entity.TaskEntity) {
	task.CompletedAt = nil
	task.CompletionTime = nil
}
