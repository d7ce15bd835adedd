package main

// Package main startet die HTTP-API von "aufgaben-team": Konfiguration, Datenbanken,
// Paseto, Job-Queue, Bild-Hosting, Fiber mit Middleware und Routern, Graceful Shutdown.

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Xenn-00/aufgaben-team/internal/config"
	"github.com/Xenn-00/aufgaben-team/internal/db"
	"github.com/Xenn-00/aufgaben-team/internal/i18n"
	"github.com/Xenn-00/aufgaben-team/internal/media"
	"github.com/Xenn-00/aufgaben-team/internal/middleware"
	"github.com/Xenn-00/aufgaben-team/internal/queue"
	"github.com/Xenn-00/aufgaben-team/internal/routers"
	"github.com/Xenn-00/aufgaben-team/internal/utils"
	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func setupLogger(cfg *config.AppConfig) {
	level, err := zerolog.ParseLevel(cfg.APP.LogLevel)
	if err != nil || cfg.APP.LogLevel == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	// JSON in prod, sonst lesbar auf der Konsole
	if !cfg.IsProd() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	startedAt := time.Now()

	// 1. Konfiguration und Logger
	cfg := config.LoadConfig()
	if cfg == nil {
		log.Fatal().Msg("Konfiguration konnte nicht geladen werden")
	}
	setupLogger(cfg)
	i18nSvc := i18n.NewInitI18nService()

	// 2. Postgres (inkl. Migrationen), Redis, MongoDB
	if cfg.DATABASE.Postgres.Migrate {
		if err := db.Migrate(cfg.DATABASE.Postgres.DSN); err != nil {
			log.Fatal().Err(err).Msg("Migrationen fehlgeschlagen")
		}
	}
	dbPool, err := db.ConnectPool(db.PostgresOptions{
		DSN:      cfg.DATABASE.Postgres.DSN,
		MaxConns: cfg.DATABASE.Postgres.MaxConns,
		MinConns: cfg.DATABASE.Postgres.MinConns,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Postgres-Pool konnte nicht erstellt werden")
	}
	redisPool, err := db.RedisPool(db.RedisOptions{
		Addr:     cfg.DATABASE.Redis.Addr,
		Password: cfg.DATABASE.Redis.Password,
		DB:       cfg.DATABASE.Redis.DB,
		PoolSize: cfg.DATABASE.Redis.PoolSize,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Redis-Pool konnte nicht erstellt werden")
	}
	mongoClient, mdb, err := db.MongoConnect(cfg.DATABASE.Mongo.URI, cfg.DATABASE.Mongo.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("MongoDB nicht erreichbar")
	}

	// 3. Paseto, Job-Queue, Bild-Hosting
	paseto, err := utils.NewPasetoMaker(cfg.APP_SECRET.Paseto.HexKey)
	if err != nil {
		log.Fatal().Err(err).Msg("Paseto-Maker konnte nicht initialisiert werden")
	}
	taskQueue := queue.NewTaskQueue(redisPool)

	var images media.ImageHost = media.DisabledHost{}
	c := cfg.MEDIA.Cloudinary
	if host, err := media.NewCloudinaryHost(c.CloudName, c.APIKey, c.APISecret, c.Folder); err == nil {
		images = host
	} else if errors.Is(err, media.ErrNotConfigured) {
		log.Warn().Msg("Cloudinary ist nicht konfiguriert, Avatar-Uploads sind deaktiviert")
	} else {
		log.Fatal().Err(err).Msg("Cloudinary konnte nicht initialisiert werden")
	}

	// 4. Fiber mit ErrorHandler und Middleware
	app := fiber.New(fiber.Config{
		AppName:      cfg.APP.Name,
		ErrorHandler: middleware.ErrorHandlerMiddleware(i18nSvc),
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
		BodyLimit:    6 * 1024 * 1024,
	})
	app.Use(recover.New())
	app.Use(middleware.RequestIDMiddleware())
	app.Use(middleware.AcceptLanguageMiddleware())
	app.Use(middleware.LoggerMiddleware())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowOrigins,
		AllowCredentials: cfg.CORS.AllowCredentials,
		AllowHeaders:     "Origin, Content-Type, Accept, Accept-Language, Authorization, X-Request-ID",
		ExposeHeaders:    "X-Request-ID",
	}))

	// 5. Routen
	routers.SetupRoutes(app, routers.Dependencies{
		DB:        dbPool,
		Redis:     redisPool,
		Mongo:     mdb,
		I18n:      i18nSvc,
		Paseto:    paseto,
		TaskQueue: taskQueue,
		Images:    images,
		Config:    cfg,
		StartedAt: startedAt,
	})

	go func() {
		log.Info().Msgf("Starte %s auf Port %s", cfg.APP.Name, cfg.APP.Port)
		if err := app.Listen(fmt.Sprintf(":%s", cfg.APP.Port)); err != nil {
			if errors.Is(err, http.ErrServerClosed) {
				log.Info().Msg("Server ordnungsgemäß herunterfahren.")
			} else {
				log.Fatal().Err(err).Msg("Der Server konnte nicht gestartet werden")
			}
		}
	}()

	// 6. Graceful Shutdown bei SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	<-ctx.Done()
	stop()
	log.Warn().Msg("Shutdown-Signal empfangen... Vorbereitung zum Herunterfahren.")

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Error().Err(err).Msg("Beim Herunterfahren ist ein Fehler aufgetreten")
	}

	if err := taskQueue.Close(); err != nil {
		log.Error().Err(err).Msg("Queue-Client konnte nicht geschlossen werden")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := mongoClient.Disconnect(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("MongoDB-Verbindung konnte nicht geschlossen werden")
	}

	redisPool.Close()
	dbPool.Close()
	log.Info().Msg("Server ordnungsgemäß herunterfahren.")
}
