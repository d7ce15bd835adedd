package achievement_case

import (
	"context"
	"math"
	"time"

	achievement_dto "github.com/Xenn-00/aufgaben-team/internal/dtos/achievement-dto"
	"github.com/Xenn-00/aufgaben-team/internal/entity"
	app_errors "github.com/Xenn-00/aufgaben-team/internal/errors"
	achievement_repo "github.com/Xenn-00/aufgaben-team/internal/repo/achievement-repo"
	notification_repo "github.com/Xenn-00/aufgaben-team/internal/repo/notification-repo"
	team_repo "github.com/Xenn-00/aufgaben-team/internal/repo/team-repo"
	user_repo "github.com/Xenn-00/aufgaben-team/internal/repo/user-repo"
	use_cases "github.com/Xenn-00/aufgaben-team/internal/use-cases"
	user_case "github.com/Xenn-00/aufgaben-team/internal/use-cases/user-case"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.mongodb.org/mongo-driver/mongo"
)

type AchievementService struct {
	repo          achievement_repo.AchievementRepoContract
	users         user_repo.UserRepoContract
	teams         team_repo.TeamRepoContract
	stats         user_case.StatsProvider
	notifications notification_repo.NotificationRepoContract
	catalog       []entity.Achievement
}

func NewAchievementService(db *pgxpool.Pool, mdb *mongo.Database, stats user_case.StatsProvider) AchievementServiceContract {
	return &AchievementService{
		repo:          achievement_repo.NewAchievementRepo(db),
		users:         user_repo.NewUserRepo(db),
		teams:         team_repo.NewTeamRepo(db),
		stats:         stats,
		notifications: notification_repo.NewNotificationRepo(mdb),
		catalog:       entity.Catalog,
	}
}

func (s *AchievementService) entries() []entity.Achievement {
	if s.catalog != nil {
		return s.catalog
	}
	return entity.Catalog
}

func (s *AchievementService) find(id string) (entity.Achievement, bool) {
	for _, a := range s.entries() {
		if a.ID == id {
			return a, true
		}
	}
	return entity.Achievement{}, false
}

// Catalog liefert alle Einträge samt Freischalt-Statistik über alle Benutzer.
func (s *AchievementService) Catalog(ctx context.Context) ([]achievement_dto.AchievementResponse, *app_errors.AppError) {
	counts, err := s.repo.UnlockCounts(ctx)
	if err != nil {
		return nil, err
	}

	total, err := s.users.CountUsers(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	out := make([]achievement_dto.AchievementResponse, 0, len(s.entries()))
	for _, a := range s.entries() {
		n := counts[a.ID]
		out = append(out, achievement_dto.AchievementResponse{
			Achievement:   a,
			Available:     a.AvailableAt(now),
			UnlockedCount: n,
			UnlockedBy:    unlockPercent(n, total),
		})
	}
	return out, nil
}

func (s *AchievementService) MyAchievements(ctx context.Context, userID string) (*achievement_dto.MyAchievementsResponse, *app_errors.AppError) {
	unlocked, err := s.repo.ListUnlocked(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := &achievement_dto.MyAchievementsResponse{Achievements: []achievement_dto.UnlockedAchievement{}}
	for _, u := range unlocked {
		// aus dem Katalog entfernte Einträge werden übersprungen
		a, ok := s.find(u.AchievementID)
		if !ok {
			continue
		}
		resp.Achievements = append(resp.Achievements, achievement_dto.UnlockedAchievement{Achievement: a, UnlockedAt: u.UnlockedAt})
		resp.TotalPoints += a.Points
	}
	return resp, nil
}

// CheckAchievements prüft alle verfügbaren, noch gesperrten Einträge gegen die Live-Statistik.
func (s *AchievementService) CheckAchievements(ctx context.Context, userID string) (*achievement_dto.CheckAchievementsResponse, *app_errors.AppError) {
	mine, err := s.MyAchievements(ctx, userID)
	if err != nil {
		return nil, err
	}
	have := make(map[string]struct{}, len(mine.Achievements))
	for _, a := range mine.Achievements {
		have[a.ID] = struct{}{}
	}

	userStats, err := s.stats.Stats(ctx, userID)
	if err != nil {
		return nil, err
	}
	teamsJoined, err := s.teams.CountMemberships(ctx, userID)
	if err != nil {
		return nil, err
	}

	progress := entity.AchievementProgress{
		Completed:      userStats.Completed,
		Failed:         userStats.Failed,
		Streak:         userStats.Streak,
		CompletionRate: userStats.CompletionRate,
		TeamsJoined:    teamsJoined,
	}

	now := time.Now()
	resp := &achievement_dto.CheckAchievementsResponse{
		NewlyUnlocked: []achievement_dto.UnlockedAchievement{},
		TotalPoints:   mine.TotalPoints,
	}
	for _, a := range s.entries() {
		if _, ok := have[a.ID]; ok {
			continue
		}
		if !a.AvailableAt(now) || !a.Condition.Satisfied(progress) {
			continue
		}

		inserted, err := s.repo.Unlock(ctx, userID, a.ID, now)
		if err != nil {
			return nil, err
		}
		// parallel freigeschaltet
		if !inserted {
			continue
		}

		resp.NewlyUnlocked = append(resp.NewlyUnlocked, achievement_dto.UnlockedAchievement{Achievement: a, UnlockedAt: now})
		resp.TotalPoints += a.Points

		use_cases.Notify(ctx, s.notifications, &entity.NotificationEntity{
			RecipientID: userID,
			Type:        entity.NotifyAchievementUnlocked,
			Title:       a.Name,
			Message:     a.Description,
			Data:        map[string]any{"achievementId": a.ID, "points": a.Points, "rarity": a.Rarity},
		})
	}

	return resp, nil
}

func unlockPercent(unlocked, users int) float64 {
	if users == 0 {
		return 0
	}
	return math.Round(float64(unlocked)/float64(users)*10000) / 100
}
