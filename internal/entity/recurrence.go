package entity

import (
	"errors"
	"fmt"
	"time"
)

type RecurrencePattern string

const (
	RecurrenceDaily   RecurrencePattern = "daily"
	RecurrenceWeekly  RecurrencePattern = "weekly"
	RecurrenceMonthly RecurrencePattern = "monthly"
	RecurrenceYearly  RecurrencePattern = "yearly"
)

func (p RecurrencePattern) IsValid() bool {
	switch p {
	case RecurrenceDaily, RecurrenceWeekly, RecurrenceMonthly, RecurrenceYearly:
		return true
	}
	return false
}

var (
	ErrInvalidRecurrencePattern  = errors.New("entity: invalid recurrence pattern")
	ErrInvalidRecurrenceInterval = errors.New("entity: invalid recurrence interval")
)

// Recurrence beschreibt, wie aus einer abgeschlossenen Aufgabe die nächste entsteht.
type Recurrence struct {
	Pattern     RecurrencePattern `json:"pattern"`
	Interval    int               `json:"interval"`
	EndDate     *time.Time        `json:"endDate,omitempty"`
	NextDueDate *time.Time        `json:"nextDueDate,omitempty"`
}

func (r Recurrence) Validate() error {
	if !r.Pattern.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidRecurrencePattern, r.Pattern)
	}
	if r.Interval <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidRecurrenceInterval, r.Interval)
	}
	return nil
}

// NextAfter liefert das nächste Fälligkeitsdatum nach due. ok ist false, wenn die
// Serie durch EndDate beendet ist oder die Regel ungültig ist.
func (r Recurrence) NextAfter(due time.Time) (next time.Time, ok bool) {
	if err := r.Validate(); err != nil {
		return time.Time{}, false
	}

	switch r.Pattern {
	case RecurrenceDaily:
		next = due.AddDate(0, 0, r.Interval)
	case RecurrenceWeekly:
		next = due.AddDate(0, 0, 7*r.Interval)
	case RecurrenceMonthly:
		next = addMonthsClamped(due, r.Interval)
	case RecurrenceYearly:
		next = addMonthsClamped(due, 12*r.Interval)
	}

	if r.EndDate != nil && next.After(*r.EndDate) {
		return time.Time{}, false
	}
	return next, true
}

// addMonthsClamped verhindert den Überlauf von time.AddDate (31. Jan + 1 Monat = 3. März).
func addMonthsClamped(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	firstOfTarget := time.Date(y, m+time.Month(months), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	lastDay := firstOfTarget.AddDate(0, 1, -1).Day()
	if d > lastDay {
		d = lastDay
	}
	return firstOfTarget.AddDate(0, 0, d-1)
}
