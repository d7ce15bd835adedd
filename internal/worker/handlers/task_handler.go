package worker_handler

import (
	"context"
	"fmt"

	"github.com/Xenn-00/aufgaben-team/internal/entity"
	use_cases "github.com/Xenn-00/aufgaben-team/internal/use-cases"
	"github.com/Xenn-00/aufgaben-team/internal/utils"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"
)

// OverdueReminders erzeugt pro überfälliger, noch nicht erinnerter Aufgabe eine task_overdue-Benachrichtigung
// und setzt danach last_reminder_at, damit der nächste Lauf sie nicht erneut meldet.
func (wh *WorkerHandler) OverdueReminders() asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		now := wh.now()

		tasks, err := wh.tasks.ListShouldRemindOverdue(ctx, now, OverdueBatchSize)
		if err != nil {
			log.Error().Err(err).Msg("Worker handler: Überfällige Aufgaben nicht ladbar")
			return err
		}
		if len(tasks) == 0 {
			return nil
		}

		taskIDs := make([]string, 0, len(tasks))
		for _, task := range tasks {
			data := map[string]any{"taskId": task.ID, "due": task.DueDate}
			if task.ProjectID != nil {
				data["projectId"] = *task.ProjectID
			}
			use_cases.Notify(ctx, wh.notifications, &entity.NotificationEntity{
				RecipientID: task.OwnerID,
				Type:        entity.NotifyTaskOverdue,
				Title:       "Task overdue",
				Message:     fmt.Sprintf("\"%s\" is past its due date.", task.Title),
				Data:        data,
			})
			taskIDs = append(taskIDs, task.ID)
		}

		tx, txErr := wh.txManager.Begin(ctx)
		if txErr != nil {
			log.Error().Err(txErr).Msg("Worker handler: Failed to open db transaction")
			return txErr
		}
		defer tx.Rollback(ctx)

		if err := wh.tasks.BatchUpdateReminderOverdue(ctx, tx, taskIDs, now); err != nil {
			log.Error().Err(err).Msg("Worker handler: last_reminder_at nicht gesetzt")
			return err
		}

		if err := tx.Commit(ctx); err != nil {
			log.Error().Err(err).Msg("Worker handler: Error when initiating commit transaction")
			return err
		}

		log.Info().Int("count", len(taskIDs)).Msg("Worker handler: Überfällig-Erinnerungen verschickt")
		return nil
	}
}

// MaterializeFailed schreibt überfällige in-progress Aufgaben als failed fest, nur wenn JOBS.MATERIALIZE_FAILED aktiv ist.
func (wh *WorkerHandler) MaterializeFailed() asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		if !wh.opts.MaterializeFailed {
			return nil
		}

		owners, n, err := wh.tasks.MaterializeFailed(ctx, wh.now())
		if err != nil {
			log.Error().Err(err).Msg("Worker handler: Materialisierung fehlgeschlagen")
			return err
		}

		// gecachte Statistiken zählen nach gespeichertem Status und sind jetzt veraltet
		if wh.cache != nil && len(owners) > 0 {
			keys := make([]string, 0, len(owners))
			for _, id := range owners {
				keys = append(keys, utils.UserStatsKey(id))
			}
			if delErr := wh.cache.Del(ctx, keys...); delErr != nil {
				log.Warn().Err(delErr).Int("owners", len(owners)).Msg("Worker handler: Stats-Cache nicht invalidiert")
			}
		}

		log.Info().Int64("updated", n).Int("owners", len(owners)).Msg("Worker handler: Aufgaben als failed materialisiert")
		return nil
	}
}
