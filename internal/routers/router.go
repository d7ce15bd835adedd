package routers

import (
	"net"
	"strconv"
	"time"

	"github.com/Xenn-00/aufgaben-team/internal/config"
	app_errors "github.com/Xenn-00/aufgaben-team/internal/errors"
	"github.com/Xenn-00/aufgaben-team/internal/i18n"
	"github.com/Xenn-00/aufgaben-team/internal/media"
	"github.com/Xenn-00/aufgaben-team/internal/middleware"
	"github.com/Xenn-00/aufgaben-team/internal/queue"
	auth_case "github.com/Xenn-00/aufgaben-team/internal/use-cases/auth-case"
	"github.com/Xenn-00/aufgaben-team/internal/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	redisstore "github.com/gofiber/storage/redis/v3"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
)

// Dependencies bündelt alle Verbindungen und Clients, die die Router brauchen.
type Dependencies struct {
	DB        *pgxpool.Pool
	Redis     *redis.Client
	Mongo     *mongo.Database
	I18n      *i18n.I18nService
	Paseto    *utils.PasetoMaker
	TaskQueue queue.TaskQueueClient
	Images    media.ImageHost
	Config    *config.AppConfig
	StartedAt time.Time
}

// limiters hält die drei Rate-Limit-Stufen.
type limiters struct {
	general fiber.Handler
	auth    fiber.Handler
	user    fiber.Handler
}

// newLimiterStorage legt den Fiber-Storage auf DB 1 derselben Redis-Instanz an.
func newLimiterStorage(rdb *redis.Client) *redisstore.Storage {
	host, portStr, err := net.SplitHostPort(rdb.Options().Addr)
	if err != nil {
		host, portStr = rdb.Options().Addr, "6379"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		log.Warn().Str("addr", rdb.Options().Addr).Msg("Ungültiger Redis-Port, nutze 6379")
		port = 6379
	}

	return redisstore.New(redisstore.Config{
		Host:     host,
		Port:     port,
		Password: rdb.Options().Password,
		Database: 1,
	})
}

func limitReached(c *fiber.Ctx) error {
	return app_errors.NewAppError(fiber.StatusTooManyRequests, app_errors.ErrRateLimited, "rate_limited", nil)
}

func newLimiters(cfg *config.AppConfig, rdb *redis.Client) limiters {
	storage := newLimiterStorage(rdb)
	window := cfg.RATE_LIMIT.Window

	return limiters{
		general: limiter.New(limiter.Config{
			Max:        cfg.RATE_LIMIT.General,
			Expiration: window,
			KeyGenerator: func(c *fiber.Ctx) string {
				return "rl:general:" + c.IP()
			},
			LimitReached: limitReached,
			Storage:      storage,
		}),
		auth: limiter.New(limiter.Config{
			Max:        cfg.RATE_LIMIT.Auth,
			Expiration: window,
			KeyGenerator: func(c *fiber.Ctx) string {
				return "rl:auth:" + c.IP()
			},
			LimitReached: limitReached,
			Storage:      storage,
		}),
		user: limiter.New(limiter.Config{
			Max:        cfg.RATE_LIMIT.User,
			Expiration: window,
			KeyGenerator: func(c *fiber.Ctx) string {
				userID, ok := c.Locals("user_id").(string)
				if !ok || userID == "" {
					return "rl:user:ip:" + c.IP() // fallback to ip
				}
				return "rl:user:" + userID
			},
			LimitReached: limitReached,
			Storage:      storage,
		}),
	}
}

// SetupRoutes richtet die API-Routen unter /api ein.
func SetupRoutes(app *fiber.App, deps Dependencies) {
	api := app.Group("/api")
	HealthRouter(api, deps)

	rl := newLimiters(deps.Config, deps.Redis)
	api.Use(rl.general)

	sessions := auth_case.NewRedisSessionStore(deps.Redis)
	authMW := middleware.AuthMiddleware(deps.Paseto, sessions, deps.Config.SESSION.CookieName)
	protected := []fiber.Handler{authMW, rl.user}

	s := newServices(deps)

	AuthRouter(api, deps, s, rl.auth, authMW)
	UserRouter(api, deps, s, protected)
	TaskRouter(api, deps, s, protected)
	TeamRouter(api, deps, s, protected)
	InvitationRouter(api, deps, s, protected)
	ProjectRouter(api, deps, s, protected)
	NotificationRouter(api, deps, s, protected)
	AchievementRouter(api, deps, s, protected)
	UploadRouter(api, deps, s, protected)
}
