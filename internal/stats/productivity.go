package stats

import (
	"math"
	"sort"
	"time"
)

// StatusCounts sind die Zählungen nach gespeichertem Status.
type StatusCounts struct {
	Completed int
	Failed    int
	Ongoing   int
}

// CompletedSample ist die Projektion einer abgeschlossenen Aufgabe.
type CompletedSample struct {
	CreatedAt   time.Time
	UpdatedAt   time.Time
	CompletedAt *time.Time
}

func (s CompletedSample) completionDate() time.Time {
	if s.CompletedAt != nil {
		return *s.CompletedAt
	}
	return s.UpdatedAt
}

type UserStats struct {
	Completed      int       `json:"completed"`
	Failed         int       `json:"failed"`
	Ongoing        int       `json:"ongoing"`
	CompletionRate float64   `json:"completionRate"`
	Streak         int       `json:"streak"`
	AvgTime        float64   `json:"avgTime"` // Stunden
	Overdue        int       `json:"overdue"`
	ComputedAt     time.Time `json:"computedAt"`
}

// Productivity fasst Zählungen und abgeschlossene Aufgaben zu UserStats zusammen.
// loc bestimmt, in welcher Zeitzone Kalendertage für die Serie gebildet werden.
func Productivity(counts StatusCounts, completed []CompletedSample, loc *time.Location, now time.Time) UserStats {
	return UserStats{
		Completed:      counts.Completed,
		Failed:         counts.Failed,
		Ongoing:        counts.Ongoing,
		CompletionRate: CompletionRate(counts.Completed, counts.Failed),
		Streak:         Streak(completed, loc),
		AvgTime:        AverageCompletionHours(completed),
		ComputedAt:     now,
	}
}

// CompletionRate = completed / (completed + failed) * 100, zwei Nachkommastellen. 0 ohne Nenner.
func CompletionRate(completed, failed int) float64 {
	decided := completed + failed
	if decided == 0 {
		return 0
	}
	return round2(float64(completed) / float64(decided) * 100)
}

// AverageCompletionHours mittelt updatedAt - createdAt in Stunden.
func AverageCompletionHours(completed []CompletedSample) float64 {
	if len(completed) == 0 {
		return 0
	}
	var total time.Duration
	for _, s := range completed {
		total += s.UpdatedAt.Sub(s.CreatedAt)
	}
	return round2(total.Hours() / float64(len(completed)))
}

// Streak zählt aufeinanderfolgende Kalendertage ab dem jüngsten Abschlussdatum.
// Die erste Lücke von mehr als einem Tag beendet die Serie.
func Streak(completed []CompletedSample, loc *time.Location) int {
	if len(completed) == 0 {
		return 0
	}
	if loc == nil {
		loc = time.Local
	}

	seen := make(map[int64]struct{}, len(completed))
	days := make([]int64, 0, len(completed))
	for _, s := range completed {
		d := dayNumber(s.completionDate(), loc)
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i] > days[j] })

	streak := 1
	for i := 1; i < len(days); i++ {
		if days[i-1]-days[i] != 1 {
			break
		}
		streak++
	}
	return streak
}

// dayNumber bildet das lokale Datum auf eine fortlaufende Tageszahl ab (DST-neutral).
func dayNumber(t time.Time, loc *time.Location) int64 {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / 86400
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
