package entity

import "time"

type TaskEntity struct {
	ID             string       `json:"id"`
	OwnerID        string       `json:"ownerId"`
	ProjectID      *string      `json:"projectId,omitempty"`
	AssigneeID     *string      `json:"assigneeId,omitempty"`
	Title          string       `json:"title"`
	Description    *string      `json:"description,omitempty"`
	DueDate        time.Time    `json:"due"`
	Priority       TaskPriority `json:"priority"`
	Status         TaskStatus   `json:"status"`
	Tags           []string     `json:"tags"`
	Labels         []string     `json:"labels"`
	Subtasks       []Subtask    `json:"subtasks"`
	TimeEntries    []TimeEntry  `json:"timeEntries"`
	Comments       []Comment    `json:"comments"`
	Recurrence     *Recurrence  `json:"recurrence,omitempty"`
	CompletedAt    *time.Time   `json:"completedAt,omitempty"`
	CompletionTime *float64     `json:"completionTime,omitempty"` // Stunden zwischen Erstellung und Abschluss
	Archived       bool         `json:"archived"`
	ArchivedAt     *time.Time   `json:"archivedAt,omitempty"`
	LastReminderAt *time.Time   `json:"-"`
	CreatedAt      time.Time    `json:"createdAt"`
	UpdatedAt      time.Time    `json:"updatedAt"`
}

type Subtask struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

type TimeEntry struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	Duration  int       `json:"duration"` // Minuten
	Note      *string   `json:"note,omitempty"`
}

type Comment struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

// TaskListFilter wird vom Repository in eine WHERE-Klausel übersetzt.
type TaskListFilter struct {
	OwnerID   string
	ProjectID *string
	Priority  *TaskPriority
	Tag       *string
	Search    *string
	Archived  bool
	// EffectiveStatus filtert nach dem abgeleiteten Status, nicht nach der Spalte.
	EffectiveStatus *TaskStatus
	Now             time.Time
	Limit           int
	Offset          int
}

// OverdueTask ist die Projektion für den Überfälligkeits-Job.
type OverdueTask struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	OwnerID   string    `json:"ownerId"`
	ProjectID *string   `json:"projectId,omitempty"`
	DueDate   time.Time `json:"due"`
}

type TaskStatus string

const (
	TaskInProgress TaskStatus = "in-progress"
	TaskFailed     TaskStatus = "failed"
	TaskCompleted  TaskStatus = "completed"
)

func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskInProgress, TaskFailed, TaskCompleted:
		return true
	}
	return false
}

type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
)

func (p TaskPriority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}
