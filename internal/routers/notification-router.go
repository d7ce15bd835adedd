package routers

import (
	achievement_handlers "github.com/Xenn-00/aufgaben-team/internal/handlers/achievement"
	notification_handlers "github.com/Xenn-00/aufgaben-team/internal/handlers/notification"
	upload_handlers "github.com/Xenn-00/aufgaben-team/internal/handlers/upload"
	"github.com/gofiber/fiber/v2"
)

func NotificationRouter(api fiber.Router, deps Dependencies, s *services, protected []fiber.Handler) {
	r := api.Group("/notifications", protected...)
	notificationHandler := notification_handlers.NewNotificationHandler(s.notifications, deps.I18n)

	r.Get("/", notificationHandler.ListNotifications)
	r.Get("/unread-count", notificationHandler.UnreadCount)
	r.Patch("/read-all", notificationHandler.MarkAllRead)
	r.Patch("/:notificationId/read", notificationHandler.MarkRead)
	r.Delete("/:notificationId", notificationHandler.DeleteNotification)
}

func AchievementRouter(api fiber.Router, deps Dependencies, s *services, protected []fiber.Handler) {
	r := api.Group("/achievements", protected...)
	achievementHandler := achievement_handlers.NewAchievementHandler(s.achievements, deps.I18n)

	r.Get("/", achievementHandler.Catalog)
	r.Get("/me", achievementHandler.MyAchievements)
	r.Post("/check", achievementHandler.CheckAchievements)
}

func UploadRouter(api fiber.Router, deps Dependencies, s *services, protected []fiber.Handler) {
	r := api.Group("/upload", protected...)
	uploadHandler := upload_handlers.NewUploadHandler(s.uploads, deps.I18n)

	r.Post("/avatar", uploadHandler.UploadAvatar)
	r.Delete("/avatar", uploadHandler.DeleteAvatar)
}
