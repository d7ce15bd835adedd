package achievement_repo

import (
	"context"
	"time"

	"github.com/Xenn-00/aufgaben-team/internal/entity"
	app_errors "github.com/Xenn-00/aufgaben-team/internal/errors"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AchievementRepo struct {
	db *pgxpool.Pool
}

func NewAchievementRepo(db *pgxpool.Pool) AchievementRepoContract {
	return &AchievementRepo{db: db}
}

func (r *AchievementRepo) ListUnlocked(ctx context.Context, userID string) ([]entity.UserAchievement, *app_errors.AppError) {
	rows, err := r.db.Query(ctx, `SELECT user_id, achievement_id, unlocked_at FROM user_achievements WHERE user_id = $1 ORDER BY unlocked_at`, userID)
	if err != nil {
		return nil, app_errors.Internal(err)
	}
	defer rows.Close()

	out := []entity.UserAchievement{}
	for rows.Next() {
		var ua entity.UserAchievement
		if err := rows.Scan(&ua.UserID, &ua.AchievementID, &ua.UnlockedAt); err != nil {
			return nil, app_errors.Internal(err)
		}
		out = append(out, ua)
	}
	if err := rows.Err(); err != nil {
		return nil, app_errors.Internal(err)
	}
	return out, nil
}

func (r *AchievementRepo) Unlock(ctx context.Context, userID, achievementID string, at time.Time) (bool, *app_errors.AppError) {
	query := `
		INSERT INTO user_achievements (user_id, achievement_id, unlocked_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, achievement_id) DO NOTHING
	`
	tag, err := r.db.Exec(ctx, query, userID, achievementID, at)
	if err != nil {
		return false, app_errors.MapPgxError(err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *AchievementRepo) UnlockCounts(ctx context.Context) (map[string]int, *app_errors.AppError) {
	rows, err := r.db.Query(ctx, `SELECT achievement_id, COUNT(*) FROM user_achievements GROUP BY achievement_id`)
	if err != nil {
		return nil, app_errors.Internal(err)
	}
	defer rows.Close()

	out := map[string]int{}
	for rows.Next() {
		var id string
		var n int
		if err := rows.Scan(&id, &n); err != nil {
			return nil, app_errors.Internal(err)
		}
		out[id] = n
	}
	if err := rows.Err(); err != nil {
		return nil, app_errors.Internal(err)
	}
	return out, nil
}
