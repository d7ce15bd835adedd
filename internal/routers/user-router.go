package routers

import (
	user_handlers "github.com/Xenn-00/aufgaben-team/internal/handlers/user"
	"github.com/gofiber/fiber/v2"
)

func UserRouter(api fiber.Router, deps Dependencies, s *services, protected []fiber.Handler) {
	r := api.Group("/users", protected...)
	userHandler := user_handlers.NewUserHandler(s.users, s.tasks, deps.I18n)

	// /profile vor /:userId registrieren
	r.Get("/profile", userHandler.FetchSelfProfile)
	r.Put("/profile", userHandler.UpdateSelfProfile)
	r.Put("/profile/password", userHandler.ChangePassword)
	r.Put("/profile/avatar", userHandler.UpdateAvatarURL)

	r.Get("/:userId", userHandler.FetchUserProfile)
	r.Put("/:userId", userHandler.UpdateUser)
	r.Delete("/:userId", userHandler.DeleteUser)
	r.Get("/:userId/stats", userHandler.UserStats)
	r.Get("/:userId/tasks", userHandler.UserTasks)
}
