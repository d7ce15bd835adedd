package queue

import (
	worker_task "github.com/Xenn-00/aufgaben-team/internal/worker/tasks"
	"github.com/goccy/go-json"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// TaskQueueClient ist die Sicht der Services auf die Job-Queue.
type TaskQueueClient interface {
	EnqueueWelcomeEmail(payload *worker_task.WelcomeEmailPayload) error
	EnqueueTeamInvitationEmail(payload *worker_task.TeamInvitationEmailPayload) error
}

type TaskQueue struct {
	client *asynq.Client
}

func NewTaskQueue(redis *redis.Client) *TaskQueue {
	return &TaskQueue{
		client: asynq.NewClientFromRedisClient(redis),
	}
}

// E-Mail-Jobs laufen ohne asynq-Retry, der Mailer wiederholt selbst.
func (q *TaskQueue) EnqueueWelcomeEmail(payload *worker_task.WelcomeEmailPayload) error {
	log.Debug().Str("user_id", payload.UserID).Msg("Welcome-Mail wird eingereiht")
	p, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	task := asynq.NewTask(worker_task.TaskSendWelcomeEmail, p, asynq.Queue("email"), asynq.MaxRetry(0))

	_, err = q.client.Enqueue(task)
	return err
}

func (q *TaskQueue) EnqueueTeamInvitationEmail(payload *worker_task.TeamInvitationEmailPayload) error {
	log.Debug().Str("invitation_id", payload.InvitationID).Msg("Einladungs-Mail wird eingereiht")
	p, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	task := asynq.NewTask(worker_task.TaskSendTeamInvitationEmail, p, asynq.Queue("email"), asynq.MaxRetry(0))

	_, err = q.client.Enqueue(task)
	return err
}

func (q *TaskQueue) Close() error {
	return q.client.Close()
}
