package task_case

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/Xenn-00/aufgaben-team/internal/abstraction/cache"
	"github.com/Xenn-00/aufgaben-team/internal/abstraction/tx"
	"github.com/Xenn-00/aufgaben-team/internal/dtos"
	task_dto "github.com/Xenn-00/aufgaben-team/internal/dtos/task-dto"
	"github.com/Xenn-00/aufgaben-team/internal/entity"
	app_errors "github.com/Xenn-00/aufgaben-team/internal/errors"
	"github.com/Xenn-00/aufgaben-team/internal/permission"
	notification_repo "github.com/Xenn-00/aufgaben-team/internal/repo/notification-repo"
	project_repo "github.com/Xenn-00/aufgaben-team/internal/repo/project-repo"
	task_repo "github.com/Xenn-00/aufgaben-team/internal/repo/task-repo"
	"github.com/Xenn-00/aufgaben-team/internal/stats"
	use_cases "github.com/Xenn-00/aufgaben-team/internal/use-cases"
	"github.com/Xenn-00/aufgaben-team/internal/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

type TaskService struct {
	repo          task_repo.TaskRepoContract
	projects      project_repo.ProjectRepoContract
	txManager     tx.TxManager
	cache         cache.Cache
	notifications notification_repo.NotificationRepoContract
}

func NewTaskService(db *pgxpool.Pool, redis *redis.Client, mdb *mongo.Database) TaskServiceContract {
	return &TaskService{
		repo:          task_repo.NewTaskRepo(db),
		projects:      project_repo.NewProjectRepo(db),
		txManager:     tx.NewPgxTxManager(db),
		cache:         cache.NewRedisCache(redis),
		notifications: notification_repo.NewNotificationRepo(mdb),
	}
}

func (s *TaskService) CreateTask(ctx context.Context, userID string, req task_dto.CreateTaskRequest) (*task_dto.TaskResponse, *app_errors.AppError) {
	priority := entity.PriorityMedium

	// Projekt prüfen: create_tasks nötig, Bearbeiter muss Projektmitglied sein
	if req.ProjectID != nil {
		project, err := s.projects.GetProjectByID(ctx, *req.ProjectID)
		if err != nil {
			return nil, err
		}
		if !permission.Has(permission.ProjectPolicy, userID, project.Members, permission.CreateTasks) {
			return nil, app_errors.Forbidden()
		}
		if req.AssigneeID != nil && project.FindMember(*req.AssigneeID) == nil {
			return nil, app_errors.NewAppError(fiber.StatusBadRequest, app_errors.ErrTask, "task.assignee_not_member", nil)
		}
		if project.Settings.DefaultPriority.IsValid() {
			priority = project.Settings.DefaultPriority
		}
	} else if req.AssigneeID != nil && *req.AssigneeID != userID {
		// ohne Projekt gibt es niemanden, dem man die Aufgabe zuweisen könnte
		return nil, app_errors.NewAppError(fiber.StatusBadRequest, app_errors.ErrTask, "task.assignee_requires_project", nil)
	}

	if req.Priority != "" {
		priority = entity.TaskPriority(req.Priority)
	}

	recurrence, err := recurrenceFrom(req.Recurrence, req.Due)
	if err != nil {
		return nil, err
	}

	id, idErr := utils.NewID()
	if idErr != nil {
		return nil, app_errors.Internal(idErr)
	}

	now := time.Now()
	task := &entity.TaskEntity{
		ID:          id,
		OwnerID:     userID,
		ProjectID:   req.ProjectID,
		AssigneeID:  req.AssigneeID,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		DueDate:     req.Due,
		Priority:    priority,
		Status:      entity.TaskInProgress,
		Tags:        req.Tags,
		Labels:      req.Labels,
		Recurrence:  recurrence,
		CreatedAt:   now,
	}

	if err := s.repo.InsertTask(ctx, nil, task); err != nil {
		return nil, err
	}

	s.afterWrite(ctx, task, now)
	s.notifyAssigned(ctx, task, userID)

	resp := task_dto.NewTaskResponse(task, now)
	return &resp, nil
}

func (s *TaskService) ListTasks(ctx context.Context, userID string, query task_dto.ListTasksQuery) (*dtos.Paged[task_dto.TaskResponse], *app_errors.AppError) {
	page, limit, offset := query.Clamp(20, 100)
	now := time.Now()

	filter := entity.TaskListFilter{
		OwnerID:  userID,
		Archived: query.Archived,
		Now:      now,
		Limit:    limit,
		Offset:   offset,
	}

	if query.ProjectID != "" {
		project, err := s.projects.GetProjectByID(ctx, query.ProjectID)
		if err != nil {
			return nil, err
		}
		if !permission.Has(permission.ProjectPolicy, userID, project.Members, permission.View) {
			return nil, app_errors.Forbidden()
		}
		filter.ProjectID = &query.ProjectID
	}
	if query.Status != "" {
		st := entity.TaskStatus(query.Status)
		filter.EffectiveStatus = &st
	}
	if query.Priority != "" {
		p := entity.TaskPriority(query.Priority)
		filter.Priority = &p
	}
	if query.Tag != "" {
		filter.Tag = &query.Tag
	}
	if search := strings.TrimSpace(query.Search); search != "" {
		filter.Search = &search
	}

	tasks, total, err := s.repo.ListTasks(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &dtos.Paged[task_dto.TaskResponse]{
		Items:      task_dto.NewTaskResponses(tasks, now),
		Pagination: dtos.NewPaginationMeta(page, limit, total),
	}, nil
}

// ListTasksForUser ist nur für den Benutzer selbst erlaubt.
func (s *TaskService) ListTasksForUser(ctx context.Context, targetID, viewerID string, query task_dto.ListTasksQuery) (*dtos.Paged[task_dto.TaskResponse], *app_errors.AppError) {
	if targetID != viewerID {
		return nil, app_errors.Forbidden()
	}
	return s.ListTasks(ctx, viewerID, query)
}

func (s *TaskService) GetTask(ctx context.Context, userID, taskID string) (*task_dto.TaskResponse, *app_errors.AppError) {
	task, _, err := s.getViewableTask(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	resp := task_dto.NewTaskResponse(task, time.Now())
	return &resp, nil
}

// UpdateTask übernimmt die gesetzten Felder und leitet den gespeicherten Status neu ab.
func (s *TaskService) UpdateTask(ctx context.Context, userID, taskID string, req task_dto.UpdateTaskRequest) (*task_dto.TaskResponse, *app_errors.AppError) {
	task, project, err := s.getEditableTask(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	previousAssignee := task.AssigneeID

	if req.Title != nil {
		task.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		task.Description = req.Description
	}
	if req.Due != nil {
		task.DueDate = *req.Due
	}
	if req.Priority != nil {
		task.Priority = entity.TaskPriority(*req.Priority)
	}
	if req.Tags != nil {
		task.Tags = req.Tags
	}
	if req.Labels != nil {
		task.Labels = req.Labels
	}
	if req.AssigneeID != nil {
		if project == nil && *req.AssigneeID != task.OwnerID {
			return nil, app_errors.NewAppError(fiber.StatusBadRequest, app_errors.ErrTask, "task.assignee_requires_project", nil)
		}
		if project != nil && project.FindMember(*req.AssigneeID) == nil {
			return nil, app_errors.NewAppError(fiber.StatusBadRequest, app_errors.ErrTask, "task.assignee_not_member", nil)
		}
		task.AssigneeID = req.AssigneeID
	}
	if req.Recurrence != nil {
		recurrence, err := recurrenceFrom(req.Recurrence, task.DueDate)
		if err != nil {
			return nil, err
		}
		task.Recurrence = recurrence
	} else if req.Due != nil && task.Recurrence != nil {
		if next, ok := task.Recurrence.NextAfter(task.DueDate); ok {
			task.Recurrence.NextDueDate = &next
		} else {
			task.Recurrence.NextDueDate = nil
		}
	}

	now := time.Now()
	// ein neues Fälligkeitsdatum in der Zukunft holt eine gescheiterte Aufgabe zurück
	if task.Status == entity.TaskFailed && now.Before(task.DueDate) {
		task.Status = entity.TaskInProgress
	}
	task.Status = stats.EffectiveStatusOf(task, now)

	if err := s.repo.UpdateTask(ctx, nil, task); err != nil {
		return nil, err
	}

	s.afterWrite(ctx, task, now)
	if task.AssigneeID != nil && (previousAssignee == nil || *previousAssignee != *task.AssigneeID) {
		s.notifyAssigned(ctx, task, userID)
	}

	resp := task_dto.NewTaskResponse(task, now)
	return &resp, nil
}

func (s *TaskService) DeleteTask(ctx context.Context, userID, taskID string) *app_errors.AppError {
	task, project, err := s.getViewableTask(ctx, userID, taskID)
	if err != nil {
		return err
	}

	// Löschen dürfen nur Besitzer und Projektmitglieder mit edit_all_tasks
	if task.OwnerID != userID &&
		(project == nil || !permission.Has(permission.ProjectPolicy, userID, project.Members, permission.EditAllTasks)) {
		return app_errors.Forbidden()
	}

	if err := s.repo.DeleteTask(ctx, taskID); err != nil {
		return err
	}

	s.afterWrite(ctx, task, time.Now())
	return nil
}

func (s *TaskService) ArchiveTask(ctx context.Context, userID, taskID string, archived bool) (*task_dto.TaskResponse, *app_errors.AppError) {
	task, _, err := s.getEditableTask(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if archived {
		task.Archived = true
		task.ArchivedAt = &now
	} else {
		task.Archived = false
		task.ArchivedAt = nil
	}

	if err := s.repo.UpdateTask(ctx, nil, task); err != nil {
		return nil, err
	}

	s.afterWrite(ctx, task, now)
	resp := task_dto.NewTaskResponse(task, now)
	return &resp, nil
}

// CompleteTask schließt die Aufgabe ab. Bei einer Wiederholungsregel wird die nächste
// Aufgabe in derselben Transaktion angelegt.
func (s *TaskService) CompleteTask(ctx context.Context, userID, taskID string) (*task_dto.CompleteTaskResponse, *app_errors.AppError) {
	task, _, err := s.getEditableTask(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	if task.Status == entity.TaskCompleted {
		return nil, app_errors.NewAppError(fiber.StatusBadRequest, app_errors.ErrTask, "task.already_completed", nil)
	}

	now := time.Now()
	hours := completionHours(task.CreatedAt, now)
	task.Status = entity.TaskCompleted
	task.CompletedAt = &now
	task.CompletionTime = &hours

	next, err := nextOccurrence(task, now)
	if err != nil {
		return nil, err
	}

	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if err := s.repo.UpdateTask(ctx, tx, task); err != nil {
		return nil, err
	}
	if next != nil {
		if err := s.repo.InsertTask(ctx, tx, next); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	s.afterWrite(ctx, task, now)

	resp := &task_dto.CompleteTaskResponse{Task: task_dto.NewTaskResponse(task, now)}
	if next != nil {
		nextResp := task_dto.NewTaskResponse(next, now)
		resp.Next = &nextResp
	}
	return resp, nil
}

func (s *TaskService) UpdateStatus(ctx context.Context, userID, taskID string, req task_dto.UpdateStatusRequest) (*task_dto.TaskResponse, *app_errors.AppError) {
	status := entity.TaskStatus(req.Status)
	if status == entity.TaskCompleted {
		// Abschluss läuft über CompleteTask, damit Wiederholungen entstehen
		completed, err := s.CompleteTask(ctx, userID, taskID)
		if err != nil {
			return nil, err
		}
		return &completed.Task, nil
	}

	task, _, err := s.getEditableTask(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	if task.Status == entity.TaskCompleted {
		clearCompletion(task)
	}
	task.Status = status

	now := time.Now()
	if err := s.repo.UpdateTask(ctx, nil, task); err != nil {
		return nil, err
	}

	s.afterWrite(ctx, task, now)
	resp := task_dto.NewTaskResponse(task, now)
	return &resp, nil
}

// nextOccurrence baut die Folgeaufgabe oder nil, wenn die Serie endet.
func nextOccurrence(task *entity.TaskEntity, now time.Time) (*entity.TaskEntity, *app_errors.AppError) {
	if task.Recurrence == nil {
		return nil, nil
	}
	due, ok := task.Recurrence.NextAfter(task.DueDate)
	if !ok {
		return nil, nil
	}

	id, idErr := utils.NewID()
	if idErr != nil {
		return nil, app_errors.Internal(idErr)
	}

	recurrence := *task.Recurrence
	recurrence.NextDueDate = nil
	if following, ok := recurrence.NextAfter(due); ok {
		recurrence.NextDueDate = &following
	}

	subtasks := make([]entity.Subtask, 0, len(task.Subtasks))
	for _, st := range task.Subtasks {
		subID, idErr := utils.NewID()
		if idErr != nil {
			return nil, app_errors.Internal(idErr)
		}
		subtasks = append(subtasks, entity.Subtask{ID: subID, Title: st.Title, CreatedAt: now})
	}

	return &entity.TaskEntity{
		ID:          id,
		OwnerID:     task.OwnerID,
		ProjectID:   task.ProjectID,
		AssigneeID:  task.AssigneeID,
		Title:       task.Title,
		Description: task.Description,
		DueDate:     due,
		Priority:    task.Priority,
		Status:      entity.TaskInProgress,
		Tags:        slices.Clone(task.Tags),
		Labels:      slices.Clone(task.Labels),
		Subtasks:    subtasks,
		Recurrence:  &recurrence,
		CreatedAt:   now,
	}, nil
}

func (s *TaskService) notifyAssigned(ctx context.Context, task *entity.TaskEntity, actorID string) {
	if task.AssigneeID == nil || *task.AssigneeID == actorID {
		return
	}
	use_cases.Notify(ctx, s.notifications, &entity.NotificationEntity{
		RecipientID: *task.AssigneeID,
		Type:        entity.NotifyTaskAssigned,
		Title:       "Neue Aufgabe",
		Message:     task.Title,
		Data:        map[string]any{"taskId": task.ID, "projectId": task.ProjectID, "assignedBy": actorID},
	})
}
