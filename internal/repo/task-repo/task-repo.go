package task_repo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Xenn-00/aufgaben-team/internal/abstraction/tx"
	"github.com/Xenn-00/aufgaben-team/internal/entity"
	app_errors "github.com/Xenn-00/aufgaben-team/internal/errors"
	"github.com/Xenn-00/aufgaben-team/internal/stats"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const taskColumns = `id, owner_id, project_id, assignee_id, title, description, due_date, priority, status,
	tags, labels, subtasks, time_entries, comments, recurrence, completed_at, completion_time,
	archived, archived_at, last_reminder_at, created_at, updated_at`

type TaskRepo struct {
	db *pgxpool.Pool
}

func NewTaskRepo(db *pgxpool.Pool) TaskRepoContract {
	return &TaskRepo{db: db}
}

func scanTask(row pgx.Row, extra ...any) (*entity.TaskEntity, error) {
	var t entity.TaskEntity
	dest := []any{
		&t.ID, &t.OwnerID, &t.ProjectID, &t.AssigneeID, &t.Title, &t.Description, &t.DueDate, &t.Priority, &t.Status,
		&t.Tags, &t.Labels, &t.Subtasks, &t.TimeEntries, &t.Comments, &t.Recurrence, &t.CompletedAt, &t.CompletionTime,
		&t.Archived, &t.ArchivedAt, &t.LastReminderAt, &t.CreatedAt, &t.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	return &t, nil
}

func collectTasks(rows pgx.Rows) ([]entity.TaskEntity, error) {
	defer rows.Close()
	tasks := []entity.TaskEntity{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *t)
	}
	return tasks, rows.Err()
}

// normalize verhindert NULL in NOT-NULL-Spalten für nil-Slices.
func normalize(t *entity.TaskEntity) {
	if t.Tags == nil {
		t.Tags = []string{}
	}
	if t.Labels == nil {
		t.Labels = []string{}
	}
	if t.Subtasks == nil {
		t.Subtasks = []entity.Subtask{}
	}
	if t.TimeEntries == nil {
		t.TimeEntries = []entity.TimeEntry{}
	}
	if t.Comments == nil {
		t.Comments = []entity.Comment{}
	}
}

func (r *TaskRepo) InsertTask(ctx context.Context, t tx.Tx, task *entity.TaskEntity) *app_errors.AppError {
	normalize(task)
	query := `
		INSERT INTO tasks (
			id, owner_id, project_id, assignee_id, title, description, due_date, priority, status,
			tags, labels, subtasks, time_entries, comments, recurrence, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $16)
	`
	_, err := tx.Use(r.db, t).Exec(ctx, query,
		task.ID, task.OwnerID, task.ProjectID, task.AssigneeID, task.Title, task.Description, task.DueDate,
		task.Priority, task.Status, task.Tags, task.Labels, task.Subtasks, task.TimeEntries, task.Comments,
		task.Recurrence, task.CreatedAt,
	)
	if err != nil {
		return app_errors.MapPgxError(err)
	}
	task.UpdatedAt = task.CreatedAt
	return nil
}

func (r *TaskRepo) GetTaskByID(ctx context.Context, taskID string) (*entity.TaskEntity, *app_errors.AppError) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`
	t, err := scanTask(r.db.QueryRow(ctx, query, taskID))
	if err != nil {
		return nil, app_errors.MapPgxNotFound(err, "task.not_found")
	}
	return t, nil
}

// ListTasks: mit ProjectID alle Aufgaben des Projekts, sonst eigene und zugewiesene Aufgaben von OwnerID.
// Der Statusfilter arbeitet auf dem abgeleiteten Status zum Zeitpunkt filter.Now.
func (r *TaskRepo) ListTasks(ctx context.Context, filter entity.TaskListFilter) ([]entity.TaskEntity, int, *app_errors.AppError) {
	where := []string{}
	args := []any{}
	argPos := 1

	if filter.ProjectID != nil {
		where = append(where, fmt.Sprintf("project_id = $%d", argPos))
		args = append(args, *filter.ProjectID)
		argPos++
	} else {
		where = append(where, fmt.Sprintf("(owner_id = $%d OR assignee_id = $%d)", argPos, argPos))
		args = append(args, filter.OwnerID)
		argPos++
	}

	where = append(where, fmt.Sprintf("archived = $%d", argPos))
	args = append(args, filter.Archived)
	argPos++

	if filter.Priority != nil {
		where = append(where, fmt.Sprintf("priority = $%d", argPos))
		args = append(args, *filter.Priority)
		argPos++
	}

	if filter.Tag != nil {
		where = append(where, fmt.Sprintf("$%d = ANY(tags)", argPos))
		args = append(args, *filter.Tag)
		argPos++
	}

	if filter.Search != nil {
		where = append(where, fmt.Sprintf("(title ILIKE $%d OR description ILIKE $%d)", argPos, argPos))
		args = append(args, "%"+escapeLike(*filter.Search)+"%")
		argPos++
	}

	if filter.EffectiveStatus != nil {
		switch *filter.EffectiveStatus {
		case entity.TaskCompleted:
			where = append(where, "status = 'completed'")
		case entity.TaskFailed:
			where = append(where, fmt.Sprintf("(status = 'failed' OR (status = 'in-progress' AND due_date < $%d))", argPos))
			args = append(args, filter.Now)
			argPos++
		case entity.TaskInProgress:
			where = append(where, fmt.Sprintf("(status = 'in-progress' AND due_date >= $%d)", argPos))
			args = append(args, filter.Now)
			argPos++
		}
	}

	query := fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() AS total
		FROM tasks
		WHERE %s
		ORDER BY due_date ASC, created_at DESC
		LIMIT $%d OFFSET $%d
	`, taskColumns, strings.Join(where, " AND "), argPos, argPos+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, app_errors.NewAppError(fiber.StatusInternalServerError, app_errors.ErrInternal, "internal_error", err)
	}
	defer rows.Close()

	tasks := []entity.TaskEntity{}
	total := 0
	for rows.Next() {
		t, err := scanTask(rows, &total)
		if err != nil {
			return nil, 0, app_errors.NewAppError(fiber.StatusInternalServerError, app_errors.ErrInternal, "internal_error", err)
		}
		tasks = append(tasks, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, app_errors.NewAppError(fiber.StatusInternalServerError, app_errors.ErrInternal, "internal_error", err)
	}

	return tasks, total, nil
}

// UpdateTask schreibt alle veränderlichen Spalten der Aufgabe zurück.
func (r *TaskRepo) UpdateTask(ctx context.Context, t tx.Tx, task *entity.TaskEntity) *app_errors.AppError {
	normalize(task)
	query := `
		UPDATE tasks SET
			assignee_id = $2, title = $3, description = $4, due_date = $5, priority = $6, status = $7,
			tags = $8, labels = $9, subtasks = $10, time_entries = $11, comments = $12, recurrence = $13,
			completed_at = $14, completion_time = $15, archived = $16, archived_at = $17, updated_at = now()
		WHERE id = $1
		RETURNING updated_at
	`
	err := tx.Use(r.db, t).QueryRow(ctx, query,
		task.ID, task.AssigneeID, task.Title, task.Description, task.DueDate, task.Priority, task.Status,
		task.Tags, task.Labels, task.Subtasks, task.TimeEntries, task.Comments, task.Recurrence,
		task.CompletedAt, task.CompletionTime, task.Archived, task.ArchivedAt,
	).Scan(&task.UpdatedAt)
	if err != nil {
		return app_errors.MapPgxNotFound(err, "task.not_found")
	}
	return nil
}

func (r *TaskRepo) DeleteTask(ctx context.Context, taskID string) *app_errors.AppError {
	tag, err := r.db.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, taskID)
	if err != nil {
		return app_errors.MapPgxError(err)
	}
	if tag.RowsAffected() == 0 {
		return app_errors.NotFound("task.not_found")
	}
	return nil
}

// CountByStatus zählt nach gespeichertem Status, nicht nach abgeleitetem.
func (r *TaskRepo) CountByStatus(ctx context.Context, ownerID string) (stats.StatusCounts, *app_errors.AppError) {
	var counts stats.StatusCounts
	query := `
		SELECT
			COUNT(*) FILTER (WHERE status = 'completed'),
			COUNT(*) FILTER (WHERE status = 'failed'),
			COUNT(*) FILTER (WHERE status = 'in-progress')
		FROM tasks
		WHERE owner_id = $1
	`
	if err := r.db.QueryRow(ctx, query, ownerID).Scan(&counts.Completed, &counts.Failed, &counts.Ongoing); err != nil {
		return counts, app_errors.NewAppError(fiber.StatusInternalServerError, app_errors.ErrInternal, "internal_error", err)
	}
	return counts, nil
}

func (r *TaskRepo) CountOverdue(ctx context.Context, ownerID string, now time.Time) (int, *app_errors.AppError) {
	var n int
	query := `SELECT COUNT(*) FROM tasks WHERE owner_id = $1 AND status = 'in-progress' AND due_date < $2`
	if err := r.db.QueryRow(ctx, query, ownerID, now).Scan(&n); err != nil {
		return 0, app_errors.NewAppError(fiber.StatusInternalServerError, app_errors.ErrInternal, "internal_error", err)
	}
	return n, nil
}

func (r *TaskRepo) ListCompletedSamples(ctx context.Context, ownerID string) ([]stats.CompletedSample, *app_errors.AppError) {
	query := `SELECT created_at, updated_at, completed_at FROM tasks WHERE owner_id = $1 AND status = 'completed'`
	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, app_errors.NewAppError(fiber.StatusInternalServerError, app_errors.ErrInternal, "internal_error", err)
	}
	defer rows.Close()

	samples := []stats.CompletedSample{}
	for rows.Next() {
		var s stats.CompletedSample
		if err := rows.Scan(&s.CreatedAt, &s.UpdatedAt, &s.CompletedAt); err != nil {
			return nil, app_errors.NewAppError(fiber.StatusInternalServerError, app_errors.ErrInternal, "internal_error", err)
		}
		samples = append(samples, s)
	}
	if err := rows.Err(); err != nil {
		return nil, app_errors.NewAppError(fiber.StatusInternalServerError, app_errors.ErrInternal, "internal_error", err)
	}
	return samples, nil
}

func (r *TaskRepo) ListByOwners(ctx context.Context, ownerIDs []string) ([]entity.TaskEntity, *app_errors.AppError) {
	if len(ownerIDs) == 0 {
		return []entity.TaskEntity{}, nil
	}
	rows, err := r.db.Query(ctx, `SELECT `+taskColumns+` FROM tasks WHERE owner_id = ANY($1) AND archived = false`, ownerIDs)
	if err != nil {
		return nil, app_errors.NewAppError(fiber.StatusInternalServerError, app_errors.ErrInternal, "internal_error", err)
	}
	tasks, err := collectTasks(rows)
	if err != nil {
		return nil, app_errors.NewAppError(fiber.StatusInternalServerError, app_errors.ErrInternal, "internal_error", err)
	}
	return tasks, nil
}

func (r *TaskRepo) ListByProject(ctx context.Context, projectID string) ([]entity.TaskEntity, *app_errors.AppError) {
	rows, err := r.db.Query(ctx, `SELECT `+taskColumns+` FROM tasks WHERE project_id = $1 AND archived = false`, projectID)
	if err != nil {
		return nil, app_errors.NewAppError(fiber.StatusInternalServerError, app_errors.ErrInternal, "internal_error", err)
	}
	tasks, err := collectTasks(rows)
	if err != nil {
		return nil, app_errors.NewAppError(fiber.StatusInternalServerError, app_errors.ErrInternal, "internal_error", err)
	}
	return tasks, nil
}

// ListShouldRemindOverdue liefert überfällige Aufgaben, für deren aktuelle Fälligkeit noch nicht erinnert wurde.
func (r *TaskRepo) ListShouldRemindOverdue(ctx context.Context, now time.Time, limit int) ([]entity.OverdueTask, *app_errors.AppError) {
	query := `
		SELECT id, title, owner_id, project_id, due_date
		FROM tasks
		WHERE status = 'in-progress'
		AND archived = false
		AND due_date < $1
		AND (last_reminder_at IS NULL OR last_reminder_at < due_date)
		ORDER BY due_date ASC
		LIMIT $2
	`
	rows, err := r.db.Query(ctx, query, now, limit)
	if err != nil {
		return nil, app_errors.NewAppError(fiber.StatusInternalServerError, app_errors.ErrInternal, "internal_error", err)
	}
	defer rows.Close()

	out := []entity.OverdueTask{}
	for rows.Next() {
		var o entity.OverdueTask
		if err := rows.Scan(&o.ID, &o.Title, &o.OwnerID, &o.ProjectID, &o.DueDate); err != nil {
			return nil, app_errors.NewAppError(fiber.StatusInternalServerError, app_errors.ErrInternal, "internal_error", err)
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, app_errors.NewAppError(fiber.StatusInternalServerError, app_errors.ErrInternal, "internal_error", err)
	}
	return out, nil
}

func (r *TaskRepo) BatchUpdateReminderOverdue(ctx context.Context, t tx.Tx, taskIDs []string, at time.Time) *app_errors.AppError {
	if len(taskIDs) == 0 {
		return nil
	}
	if _, err := tx.Use(r.db, t).Exec(ctx, `UPDATE tasks SET last_reminder_at = $1 WHERE id = ANY($2)`, at, taskIDs); err != nil {
		return app_errors.MapPgxError(err)
	}
	return nil
}

// MaterializeFailed schreibt überfällige in-progress Aufgaben als failed fest. Mehrfaches Ausführen ändert nichts.
// Rückgabe: betroffene Besitzer (ohne Duplikate) und Anzahl geänderter Aufgaben.
func (r *TaskRepo) MaterializeFailed(ctx context.Context, now time.Time) ([]string, int64, *app_errors.AppError) {
	query := `
		WITH upd AS (
			UPDATE tasks SET status = 'failed', updated_at = now()
			WHERE status = 'in-progress' AND due_date < $1
			RETURNING owner_id
		)
		SELECT owner_id, count(*) FROM upd GROUP BY owner_id
	`
	rows, err := r.db.Query(ctx, query, now)
	if err != nil {
		return nil, 0, app_errors.MapPgxError(err)
	}
	defer rows.Close()

	owners := []string{}
	var updated int64
	for rows.Next() {
		var ownerID string
		var n int64
		if err := rows.Scan(&ownerID, &n); err != nil {
			return nil, 0, app_errors.MapPgxError(err)
		}
		owners = append(owners, ownerID)
		updated += n
	}
	if err := rows.Err(); err != nil {
		return nil, 0, app_errors.MapPgxError(err)
	}
	return owners, updated, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
