package worker

import (
	"fmt"

	worker_handler "github.com/Xenn-00/aufgaben-team/internal/worker/handlers"
	worker_task "github.com/Xenn-00/aufgaben-team/internal/worker/tasks"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"
)

func RegisterWorkerHandlers(mux *asynq.ServeMux, h *worker_handler.WorkerHandler) {
	mux.HandleFunc(worker_task.TaskSendWelcomeEmail, h.WelcomeEmail())
	mux.HandleFunc(worker_task.TaskSendTeamInvitationEmail, h.TeamInvitationEmail())
	mux.HandleFunc(worker_task.TaskOverdueReminders, h.OverdueReminders())
	mux.HandleFunc(worker_task.TaskMaterializeFailed, h.MaterializeFailed())
}

type cronJob struct {
	spec  string
	task  *asynq.Task
	queue string
	desc  string
}

func RegisterCronJobs(s *asynq.Scheduler, materializeFailed bool) error {
	jobs := []cronJob{
		{
			spec:  "0 * * * *",
			task:  asynq.NewTask(worker_task.TaskOverdueReminders, nil),
			queue: "low",
			desc:  "overdue task reminders",
		},
	}

	// Lesepfade hängen nicht vom Sweep ab, er ist optional.
	if materializeFailed {
		jobs = append(jobs, cronJob{
			spec:  "30 2 * * *",
			task:  asynq.NewTask(worker_task.TaskMaterializeFailed, nil),
			queue: "low",
			desc:  "materialize failed tasks",
		})
	}

	for _, job := range jobs {
		if _, err := s.Register(job.spec, job.task, asynq.Queue(job.queue)); err != nil {
			return fmt.Errorf("register %s failed: %w", job.desc, err)
		}
		log.Info().Msgf("scheduled: %s (%s)", job.desc, job.spec)
	}

	return nil
}
