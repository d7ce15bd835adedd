package worker_handler

import (
	"time"

	"github.com/Xenn-00/aufgaben-team/internal/abstraction/cache"
	"github.com/Xenn-00/aufgaben-team/internal/abstraction/tx"
	"github.com/Xenn-00/aufgaben-team/internal/mail"
	invitation_repo "github.com/Xenn-00/aufgaben-team/internal/repo/invitation-repo"
	notification_repo "github.com/Xenn-00/aufgaben-team/internal/repo/notification-repo"
	task_repo "github.com/Xenn-00/aufgaben-team/internal/repo/task-repo"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

// OverdueBatchSize begrenzt, wie viele Erinnerungen ein Cron-Lauf verschickt.
const OverdueBatchSize = 500

type Options struct {
	ClientURL         string
	MaterializeFailed bool
}

type WorkerHandler struct {
	txManager     tx.TxManager
	tasks         task_repo.TaskRepoContract
	invitations   invitation_repo.InvitationRepoContract
	notifications notification_repo.NotificationRepoContract
	cache         cache.Cache
	mailer        mail.Mailer
	opts          Options
	now           func() time.Time
}

func NewWorkerHandler(db *pgxpool.Pool, mdb *mongo.Database, rdb *redis.Client, mailer mail.Mailer, opts Options) *WorkerHandler {
	return &WorkerHandler{
		txManager:     tx.NewPgxTxManager(db),
		tasks:         task_repo.NewTaskRepo(db),
		invitations:   invitation_repo.NewInvitationRepo(db),
		notifications: notification_repo.NewNotificationRepo(mdb),
		cache:         cache.NewRedisCache(rdb),
		mailer:        mailer,
		opts:          opts,
		now:           time.Now,
	}
}
