package achievement_handlers

import (
	"github.com/Xenn-00/aufgaben-team/internal/handlers"
	internal_i18n "github.com/Xenn-00/aufgaben-team/internal/i18n"
	achievement_case "github.com/Xenn-00/aufgaben-team/internal/use-cases/achievement-case"
	"github.com/gofiber/fiber/v2"
)

type AchievementHandler struct {
	service achievement_case.AchievementServiceContract
	i18n    internal_i18n.Service
}

func NewAchievementHandler(service achievement_case.AchievementServiceContract, i18n internal_i18n.Service) *AchievementHandler {
	return &AchievementHandler{
		service: service,
		i18n:    i18n,
	}
}

func (h *AchievementHandler) Catalog(c *fiber.Ctx) error {
	resp, err := h.service.Catalog(c.Context())
	if err != nil {
		return err
	}

	return handlers.Respond(c, h.i18n, fiber.StatusOK, "response.success_list_achievements", resp)
}

func (h *AchievementHandler) MyAchievements(c *fiber.Ctx) error {
	userID, err := handlers.GetUserID(c)
	if err != nil {
		return err
	}

	resp, err := h.service.MyAchievements(c.Context(), userID)
	if err != nil {
		return err
	}

	return handlers.Respond(c, h.i18n, fiber.StatusOK, "response.success_list_achievements", resp)
}

func (h *AchievementHandler) CheckAchievements(c *fiber.Ctx) error {
	userID, err := handlers.GetUserID(c)
	if err != nil {
		return err
	}

	resp, err := h.service.CheckAchievements(c.Context(), userID)
	if err != nil {
		return err
	}

	return handlers.Respond(c, h.i18n, fiber.StatusOK, "response.success_check_achievements", resp)
}
