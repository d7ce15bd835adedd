package routers

import (
	auth_handlers "github.com/Xenn-00/aufgaben-team/internal/handlers/auth"
	user_handlers "github.com/Xenn-00/aufgaben-team/internal/handlers/user"
	"github.com/gofiber/fiber/v2"
)

// AuthRouter richtet die Authentifizierungsrouten ein.
func AuthRouter(api fiber.Router, deps Dependencies, s *services, authLimiter, authMW fiber.Handler) {
	r := api.Group("/auth")
	authHandler := auth_handlers.NewAuthHandler(s.auth, deps.I18n, auth_handlers.CookieConfig{
		Name:   deps.Config.SESSION.CookieName,
		Secure: deps.Config.SESSION.Secure,
		TTL:    deps.Config.SESSION.TTL,
	})
	userHandler := user_handlers.NewUserHandler(s.users, s.tasks, deps.I18n)

	r.Post("/register", authLimiter, authHandler.RegisterUser)
	r.Post("/login", authLimiter, authHandler.LoginUser)
	r.Post("/logout", authMW, authHandler.LogoutUser)
	r.Get("/me", authMW, userHandler.FetchSelfProfile)
	r.Get("/sessions", authMW, authHandler.ListSessions)
	r.Delete("/sessions", authMW, authHandler.LogoutAllDevices)
}
