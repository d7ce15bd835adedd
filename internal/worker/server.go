package worker

import (
	"context"
	"time"

	worker_handler "github.com/Xenn-00/aufgaben-team/internal/worker/handlers"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

type RunOptions struct {
	Location          *time.Location
	MaterializeFailed bool
}

// RunWorker startet Server und Scheduler und blockiert, bis ctx beendet ist oder einer der beiden abbricht.
func RunWorker(ctx context.Context, redis *redis.Client, handler *worker_handler.WorkerHandler, opts RunOptions) error {
	srv := NewWorkerServer(redis)
	scheduler := NewScheduler(redis, opts.Location)

	mux := asynq.NewServeMux()
	RegisterWorkerHandlers(mux, handler)

	if err := RegisterCronJobs(scheduler, opts.MaterializeFailed); err != nil {
		return err
	}

	if err := scheduler.Start(); err != nil {
		return err
	}
	if err := srv.Start(mux); err != nil {
		scheduler.Shutdown()
		return err
	}

	<-ctx.Done()
	log.Info().Msg("shutting down worker server...")
	scheduler.Shutdown()
	srv.Shutdown()

	return nil
}
