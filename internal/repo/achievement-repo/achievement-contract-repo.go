package achievement_repo

import (
	"context"
	"time"

	"github.com/Xenn-00/aufgaben-team/internal/entity"
	app_errors "github.com/Xenn-00/aufgaben-team/internal/errors"
)

type AchievementRepoContract interface {
	ListUnlocked(ctx context.Context, userID string) ([]entity.UserAchievement, *app_errors.AppError)
	// Unlock ist idempotent; inserted ist false, wenn das Achievement schon freigeschaltet war.
	Unlock(ctx context.Context, userID, achievementID string, at time.Time) (inserted bool, appErr *app_errors.AppError)
	UnlockCounts(ctx context.Context) (map[string]int, *app_errors.AppError)
}
