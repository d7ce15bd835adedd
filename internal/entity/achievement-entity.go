package entity

import "time"

type AchievementCategory string
type AchievementRarity string
type ConditionType string

const (
	CategoryTasks   AchievementCategory = "tasks"
	CategoryStreak  AchievementCategory = "streak"
	CategoryQuality AchievementCategory = "quality"
	CategorySocial  AchievementCategory = "social"

	RarityCommon    AchievementRarity = "common"
	RarityRare      AchievementRarity = "rare"
	RarityEpic      AchievementRarity = "epic"
	RarityLegendary AchievementRarity = "legendary"

	ConditionTasksCompleted ConditionType = "tasks_completed"
	ConditionStreakDays     ConditionType = "streak_days"
	ConditionCompletionRate ConditionType = "completion_rate"
	ConditionTeamsJoined    ConditionType = "teams_joined"
)

// MinDecidedTasksForRate ist die Mindestzahl entschiedener Aufgaben für completion_rate.
const MinDecidedTasksForRate = 10

type Achievement struct {
	ID             string              `json:"id"`
	Name           string              `json:"name"`
	Description    string              `json:"description"`
	Category       AchievementCategory `json:"category"`
	Rarity         AchievementRarity   `json:"rarity"`
	Points         int                 `json:"points"`
	Condition      Condition           `json:"condition"`
	AvailableFrom  *time.Time          `json:"availableFrom,omitempty"`
	AvailableUntil *time.Time          `json:"availableUntil,omitempty"`
}

type Condition struct {
	Type      ConditionType `json:"type"`
	Threshold float64       `json:"threshold"`
}

func (a Achievement) AvailableAt(now time.Time) bool {
	if a.AvailableFrom != nil && now.Before(*a.AvailableFrom) {
		return false
	}
	if a.AvailableUntil != nil && now.After(*a.AvailableUntil) {
		return false
	}
	return true
}

type UserAchievement struct {
	UserID        string    `json:"userId"`
	AchievementID string    `json:"achievementId"`
	UnlockedAt    time.Time `json:"unlockedAt"`
}

// AchievementProgress ist die Eingabe für den Bedingungs-Check.
type AchievementProgress struct {
	Completed      int
	Failed         int
	Streak         int
	CompletionRate float64
	TeamsJoined    int
}

// Catalog ist der statische Achievement-Katalog.
var Catalog = []Achievement{
	{ID: "first-task", Name: "First Steps", Description: "Complete your first task", Category: CategoryTasks, Rarity: RarityCommon, Points: 10, Condition: Condition{Type: ConditionTasksCompleted, Threshold: 1}},
	{ID: "task-10", Name: "Getting Things Done", Description: "Complete 10 tasks", Category: CategoryTasks, Rarity: RarityCommon, Points: 25, Condition: Condition{Type: ConditionTasksCompleted, Threshold: 10}},
	{ID: "task-50", Name: "Productive", Description: "Complete 50 tasks", Category: CategoryTasks, Rarity: RarityRare, Points: 50, Condition: Condition{Type: ConditionTasksCompleted, Threshold: 50}},
	{ID: "task-100", Name: "Centurion", Description: "Complete 100 tasks", Category: CategoryTasks, Rarity: RarityEpic, Points: 100, Condition: Condition{Type: ConditionTasksCompleted, Threshold: 100}},
	{ID: "streak-3", Name: "On a Roll", Description: "Complete tasks 3 days in a row", Category: CategoryStreak, Rarity: RarityCommon, Points: 15, Condition: Condition{Type: ConditionStreakDays, Threshold: 3}},
	{ID: "streak-7", Name: "Week Warrior", Description: "Complete tasks 7 days in a row", Category: CategoryStreak, Rarity: RarityRare, Points: 40, Condition: Condition{Type: ConditionStreakDays, Threshold: 7}},
	{ID: "streak-30", Name: "Unstoppable", Description: "Complete tasks 30 days in a row", Category: CategoryStreak, Rarity: RarityLegendary, Points: 200, Condition: Condition{Type: ConditionStreakDays, Threshold: 30}},
	{ID: "rate-80", Name: "Reliable", Description: "Keep a completion rate of 80% or more", Category: CategoryQuality, Rarity: RarityRare, Points: 50, Condition: Condition{Type: ConditionCompletionRate, Threshold: 80}},
	{ID: "rate-95", Name: "Perfectionist", Description: "Keep a completion rate of 95% or more", Category: CategoryQuality, Rarity: RarityEpic, Points: 120, Condition: Condition{Type: ConditionCompletionRate, Threshold: 95}},
	{ID: "team-1", Name: "Team Player", Description: "Join your first team", Category: CategorySocial, Rarity: RarityCommon, Points: 10, Condition: Condition{Type: ConditionTeamsJoined, Threshold: 1}},
	{ID: "team-3", Name: "Networker", Description: "Be a member of 3 teams", Category: CategorySocial, Rarity: RarityRare, Points: 30, Condition: Condition{Type: ConditionTeamsJoined, Threshold: 3}},
}

func FindAchievement(id string) (Achievement, bool) {
	for _, a := range Catalog {
		if a.ID == id {
			return a, true
		}
	}
	return Achievement{}, false
}

// Satisfied prüft die Freischaltbedingung gegen den aktuellen Fortschritt.
func (c Condition) Satisfied(p AchievementProgress) bool {
	switch c.Type {
	case ConditionTasksCompleted:
		return float64(p.Completed) >= c.Threshold
	case ConditionStreakDays:
		return float64(p.Streak) >= c.Threshold
	case ConditionCompletionRate:
		if p.Completed+p.Failed < MinDecidedTasksForRate {
			return false
		}
		return p.CompletionRate >= c.Threshold
	case ConditionTeamsJoined:
		return float64(p.TeamsJoined) >= c.Threshold
	}
	return false
}
