package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Xenn-00/aufgaben-team/internal/config"
	"github.com/Xenn-00/aufgaben-team/internal/db"
	"github.com/Xenn-00/aufgaben-team/internal/mail"
	"github.com/Xenn-00/aufgaben-team/internal/worker"
	worker_handler "github.com/Xenn-00/aufgaben-team/internal/worker/handlers"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg := config.LoadConfig()
	if cfg == nil {
		log.Fatal().Msg("Konfiguration konnte nicht geladen werden")
	}
	if level, err := zerolog.ParseLevel(cfg.APP.LogLevel); err == nil && cfg.APP.LogLevel != "" {
		zerolog.SetGlobalLevel(level)
	}
	if cfg.IsProd() {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	dbPool, err := db.ConnectPool(db.PostgresOptions{
		DSN:      cfg.DATABASE.Postgres.DSN,
		MaxConns: cfg.DATABASE.Postgres.MaxConns,
		MinConns: cfg.DATABASE.Postgres.MinConns,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Postgres-Pool konnte nicht erstellt werden")
	}
	defer dbPool.Close()

	redisPool, err := db.RedisPool(db.RedisOptions{
		Addr:     cfg.DATABASE.Redis.Addr,
		Password: cfg.DATABASE.Redis.Password,
		DB:       cfg.DATABASE.Redis.DB,
		PoolSize: cfg.DATABASE.Redis.PoolSize,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Redis-Pool konnte nicht erstellt werden")
	}
	defer redisPool.Close()

	mongoClient, mdb, err := db.MongoConnect(cfg.DATABASE.Mongo.URI, cfg.DATABASE.Mongo.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("MongoDB nicht erreichbar")
	}
	defer mongoClient.Disconnect(context.Background())

	handler := worker_handler.NewWorkerHandler(dbPool, mdb, redisPool, mail.NewMailer(cfg), worker_handler.Options{
		ClientURL:         cfg.APP.ClientURL,
		MaterializeFailed: cfg.JOBS.MaterializeFailed,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info().Msg("Starting worker server...")
	if err := worker.RunWorker(ctx, redisPool, handler, worker.RunOptions{
		Location:          cfg.Location(),
		MaterializeFailed: cfg.JOBS.MaterializeFailed,
	}); err != nil {
		log.Fatal().Err(err).Msg("worker crashed")
	}
	log.Info().Msg("worker shutdown complete")
}
