package achievement_case

import (
	"context"

	achievement_dto "github.com/Xenn-00/aufgaben-team/internal/dtos/achievement-dto"
	app_errors "github.com/Xenn-00/aufgaben-team/internal/errors"
)

type AchievementServiceContract interface {
	Catalog(ctx context.Context) ([]achievement_dto.AchievementResponse, *app_errors.AppError)
	MyAchievements(ctx context.Context, userID string) (*achievement_dto.MyAchievementsResponse, *app_errors.AppError)
	CheckAchievements(ctx context.Context, userID string) (*achievement_dto.CheckAchievementsResponse, *app_errors.AppError)
}
