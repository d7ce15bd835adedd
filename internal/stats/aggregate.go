package stats

import (
	"math"
	"time"

	"github.com/Xenn-00/aufgaben-team/internal/entity"
)

type Overview struct {
	Total          int `json:"total"`
	Completed      int `json:"completed"`
	Failed         int `json:"failed"`
	InProgress     int `json:"inProgress"`
	CompletionRate int `json:"completionRate"`
	FailureRate    int `json:"failureRate"`
}

type TaskProgress struct {
	ByPriority map[entity.TaskPriority]int `json:"byPriority"`
	// Overdue zählt in-progress Aufgaben, deren Fälligkeit verstrichen ist.
	Overdue int `json:"overdue"`
}

type MemberStat struct {
	UserID         string `json:"userId"`
	Role           string `json:"role"`
	Assigned       int    `json:"assigned"`
	Completed      int    `json:"completed"`
	InProgress     int    `json:"inProgress"`
	Failed         int    `json:"failed"`
	CompletionRate int    `json:"completionRate"`
}

type Trend struct {
	Last7Days  int `json:"last7Days"`
	Last30Days int `json:"last30Days"`
	Last90Days int `json:"last90Days"`
	WeeklyAvg  int `json:"weeklyAvg"`
	MonthlyAvg int `json:"monthlyAvg"`
}

type TeamHealth struct {
	Score  int    `json:"score"`
	Status string `json:"status"`
}

type ProjectHealth struct {
	Score     int    `json:"score"`
	Status    string `json:"status"`
	RiskLevel string `json:"riskLevel"`
}

type Timeline struct {
	ElapsedDays   int `json:"elapsedDays"`
	TotalDays     int `json:"totalDays"`
	RemainingDays int `json:"remainingDays"`
	Progress      int `json:"timelineProgress"`
}

type TeamStats struct {
	Overview          Overview     `json:"overview"`
	TaskProgress      TaskProgress `json:"taskProgress"`
	MemberActivity    []MemberStat `json:"memberActivity"`
	ProductivityTrend Trend        `json:"productivityTrend"`
	Health            TeamHealth   `json:"health"`
	ComputedAt        time.Time    `json:"computedAt"`
}

type ProjectStats struct {
	Overview           Overview      `json:"overview"`
	TaskProgress       TaskProgress  `json:"taskProgress"`
	MemberContribution []MemberStat  `json:"memberContribution"`
	Timeline           *Timeline     `json:"timeline,omitempty"`
	Health             ProjectHealth `json:"health"`
	ComputedAt         time.Time     `json:"computedAt"`
}

// Attribution ordnet eine Aufgabe einem Mitglied zu.
type Attribution func(t *entity.TaskEntity) string

// ByOwner wird für Teams verwendet.
func ByOwner(t *entity.TaskEntity) string { return t.OwnerID }

// ByAssigneeOrOwner wird für Projekte verwendet.
func ByAssigneeOrOwner(t *entity.TaskEntity) string {
	if t.AssigneeID != nil && *t.AssigneeID != "" {
		return *t.AssigneeID
	}
	return t.OwnerID
}

// ComputeOverview zählt nach gespeichertem Status.
func ComputeOverview(tasks []entity.TaskEntity) Overview {
	var ov Overview
	ov.Total = len(tasks)
	for i := range tasks {
		switch tasks[i].Status {
		case entity.TaskCompleted:
			ov.Completed++
		case entity.TaskFailed:
			ov.Failed++
		case entity.TaskInProgress:
			ov.InProgress++
		}
	}
	ov.CompletionRate = percent(ov.Completed, ov.Total)
	ov.FailureRate = percent(ov.Failed, ov.Total)
	return ov
}

func ComputeTaskProgress(tasks []entity.TaskEntity, now time.Time) TaskProgress {
	tp := TaskProgress{ByPriority: map[entity.TaskPriority]int{
		entity.PriorityLow:    0,
		entity.PriorityMedium: 0,
		entity.PriorityHigh:   0,
	}}
	for i := range tasks {
		tp.ByPriority[tasks[i].Priority]++
		if IsOverdue(&tasks[i], now) {
			tp.Overdue++
		}
	}
	return tp
}

// MemberBreakdown liefert für jedes Mitglied die Zählungen; Mitglieder ohne Aufgaben erhalten Rate 0.
func MemberBreakdown[M entity.Member](members []M, tasks []entity.TaskEntity, attribute Attribution) []MemberStat {
	out := make([]MemberStat, 0, len(members))
	index := make(map[string]int, len(members))
	for _, m := range members {
		index[m.MemberUserID()] = len(out)
		out = append(out, MemberStat{UserID: m.MemberUserID(), Role: m.MemberRole()})
	}

	for i := range tasks {
		pos, ok := index[attribute(&tasks[i])]
		if !ok {
			continue
		}
		ms := &out[pos]
		ms.Assigned++
		switch tasks[i].Status {
		case entity.TaskCompleted:
			ms.Completed++
		case entity.TaskInProgress:
			ms.InProgress++
		case entity.TaskFailed:
			ms.Failed++
		}
	}

	for i := range out {
		out[i].CompletionRate = percent(out[i].Completed, out[i].Assigned)
	}
	return out
}

// ComputeTrend zählt abgeschlossene Aufgaben nach updatedAt in festen Fenstern.
func ComputeTrend(tasks []entity.TaskEntity, now time.Time) Trend {
	w7 := now.AddDate(0, 0, -7)
	w30 := now.AddDate(0, 0, -30)
	w90 := now.AddDate(0, 0, -90)

	var tr Trend
	for i := range tasks {
		if tasks[i].Status != entity.TaskCompleted {
			continue
		}
		u := tasks[i].UpdatedAt
		if !u.Before(w7) {
			tr.Last7Days++
		}
		if !u.Before(w30) {
			tr.Last30Days++
		}
		if !u.Before(w90) {
			tr.Last90Days++
		}
	}
	tr.WeeklyAvg = tr.Last30Days / 4
	tr.MonthlyAvg = tr.Last90Days / 3
	return tr
}

func ComputeTeamHealth(ov Overview) TeamHealth {
	h := TeamHealth{Score: max(0, 100-ov.FailureRate)}
	switch {
	case ov.FailureRate < 10:
		h.Status = "excellent"
	case ov.FailureRate < 20:
		h.Status = "good"
	case ov.FailureRate < 30:
		h.Status = "fair"
	default:
		h.Status = "needs-improvement"
	}
	return h
}

func ComputeProjectHealth(ov Overview) ProjectHealth {
	h := ProjectHealth{Score: max(0, 100-ov.Failed*5)}
	switch {
	case ov.CompletionRate >= 75:
		h.Status = "on-track"
	case ov.CompletionRate >= 50:
		h.Status = "at-risk"
	default:
		h.Status = "behind-schedule"
	}
	switch {
	case ov.Failed > 5:
		h.RiskLevel = "high"
	case ov.Failed > 2:
		h.RiskLevel = "medium"
	default:
		h.RiskLevel = "low"
	}
	return h
}

// ComputeTimeline rechnet in ganzen Tagen. Progress wird nicht auf 100 begrenzt.
func ComputeTimeline(start, end *time.Time, now time.Time) *Timeline {
	if start == nil || end == nil {
		return nil
	}
	tl := &Timeline{
		ElapsedDays: wholeDays(now.Sub(*start)),
		TotalDays:   wholeDays(end.Sub(*start)),
	}
	tl.RemainingDays = tl.TotalDays - tl.ElapsedDays
	if tl.TotalDays > 0 {
		tl.Progress = int(math.Round(float64(tl.ElapsedDays) / float64(tl.TotalDays) * 100))
	}
	return tl
}

func ComputeTeamStats(team *entity.TeamEntity, tasks []entity.TaskEntity, now time.Time) TeamStats {
	ov := ComputeOverview(tasks)
	return TeamStats{
		Overview:          ov,
		TaskProgress:      ComputeTaskProgress(tasks, now),
		MemberActivity:    MemberBreakdown(team.Members, tasks, ByOwner),
		ProductivityTrend: ComputeTrend(tasks, now),
		Health:            ComputeTeamHealth(ov),
		ComputedAt:        now,
	}
}

func ComputeProjectStats(project *entity.ProjectEntity, tasks []entity.TaskEntity, now time.Time) ProjectStats {
	ov := ComputeOverview(tasks)
	return ProjectStats{
		Overview:           ov,
		TaskProgress:       ComputeTaskProgress(tasks, now),
		MemberContribution: MemberBreakdown(project.Members, tasks, ByAssigneeOrOwner),
		Timeline:           ComputeTimeline(project.StartDate, project.EndDate, now),
		Health:             ComputeProjectHealth(ov),
		ComputedAt:         now,
	}
}

func percent(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}

func wholeDays(d time.Duration) int {
	return int(math.Floor(d.Hours() / 24))
}
