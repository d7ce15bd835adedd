package achievement_dto

import (
	"time"

	"github.com/Xenn-00/aufgaben-team/internal/entity"
)

type AchievementResponse struct {
	entity.Achievement
	Available     bool    `json:"available"`
	UnlockedCount int     `json:"unlockedCount"`
	UnlockedBy    float64 `json:"unlockedByPercent"`
}

type UnlockedAchievement struct {
	entity.Achievement
	UnlockedAt time.Time `json:"unlockedAt"`
}

type MyAchievementsResponse struct {
	Achievements []UnlockedAchievement `json:"achievements"`
	TotalPoints  int                   `json:"totalPoints"`
}

type CheckAchievementsResponse struct {
	NewlyUnlocked []UnlockedAchievement `json:"newlyUnlocked"`
	TotalPoints   int                   `json:"totalPoints"`
}
