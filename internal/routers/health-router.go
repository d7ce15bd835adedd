package routers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"golang.org/x/sync/errgroup"
)

type healthChecks struct {
	Postgres string `json:"postgres"`
	Redis    string `json:"redis"`
	Mongo    string `json:"mongo"`
}

func (h healthChecks) ok() bool {
	return h.Postgres == "up" && h.Redis == "up" && h.Mongo == "up"
}

func status(err error) string {
	if err != nil {
		return "down"
	}
	return "up"
}

// checkDependencies pingt Postgres, Redis und Mongo parallel.
func checkDependencies(ctx context.Context, deps Dependencies) healthChecks {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	var checks healthChecks
	var g errgroup.Group
	g.Go(func() error {
		checks.Postgres = status(deps.DB.Ping(ctx))
		return nil
	})
	g.Go(func() error {
		checks.Redis = status(deps.Redis.Ping(ctx).Err())
		return nil
	})
	g.Go(func() error {
		checks.Mongo = status(deps.Mongo.Client().Ping(ctx, readpref.Primary()))
		return nil
	})
	_ = g.Wait()

	return checks
}

// HealthRouter registriert Health-, Liveness- und Readiness-Endpoints.
func HealthRouter(api fiber.Router, deps Dependencies) {
	api.Get("/health", func(c *fiber.Ctx) error {
		checks := checkDependencies(c.Context(), deps)
		overall := "ok"
		if !checks.ok() {
			overall = "degraded"
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":    overall,
			"uptime":    time.Since(deps.StartedAt).Round(time.Second).Seconds(),
			"timestamp": time.Now().UTC(),
			"checks":    checks,
		})
	})

	api.Get("/livez", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).SendString("Lebt.")
	})

	api.Get("/readyz", func(c *fiber.Ctx) error {
		checks := checkDependencies(c.Context(), deps)
		if !checks.ok() {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status": "not_ready",
				"checks": checks,
			})
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "ready",
			"checks": checks,
		})
	})
}
