package task_dto

import (
	"time"

	"github.com/Xenn-00/aufgaben-team/internal/dtos"
)

type ParamTaskID struct {
	ID string `params:"taskId" validate:"required,uuid"`
}

type ParamSubtaskID struct {
	TaskID    string `params:"taskId" validate:"required,uuid"`
	SubtaskID string `params:"subtaskId" validate:"required,uuid"`
}

type RecurrenceRequest struct {
	Pattern  string     `json:"pattern" validate:"required,recurrencePattern"`
	Interval int        `json:"interval" validate:"required,min=1,max=365"`
	EndDate  *time.Time `json:"endDate,omitempty"`
}

type CreateTaskRequest struct {
	Title       string             `json:"title" validate:"required,min=1,max=200"`
	Description *string            `json:"description,omitempty" validate:"omitempty,max=2000"`
	Due         time.Time          `json:"due" validate:"required"`
	Priority    string             `json:"priority,omitempty" validate:"omitempty,taskPriority"`
	Tags        []string           `json:"tags,omitempty" validate:"omitempty,max=20,dive,min=1,max=30"`
	Labels      []string           `json:"labels,omitempty" validate:"omitempty,max=20,dive,min=1,max=30"`
	ProjectID   *string            `json:"projectId,omitempty" validate:"omitempty,uuid"`
	AssigneeID  *string            `json:"assigneeId,omitempty" validate:"omitempty,uuid"`
	Recurrence  *RecurrenceRequest `json:"recurrence,omitempty"`
}

// UpdateTaskRequest ist ein "explizites Speichern": nil-Felder bleiben unverändert.
type UpdateTaskRequest struct {
	Title       *string            `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Description *string            `json:"description,omitempty" validate:"omitempty,max=2000"`
	Due         *time.Time         `json:"due,omitempty"`
	Priority    *string            `json:"priority,omitempty" validate:"omitempty,taskPriority"`
	Tags        []string           `json:"tags,omitempty" validate:"omitempty,max=20,dive,min=1,max=30"`
	Labels      []string           `json:"labels,omitempty" validate:"omitempty,max=20,dive,min=1,max=30"`
	AssigneeID  *string            `json:"assigneeId,omitempty" validate:"omitempty,uuid"`
	Recurrence  *RecurrenceRequest `json:"recurrence,omitempty"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,taskStatus"`
}

type ListTasksQuery struct {
	dtos.PageQuery
	Status    string `query:"status" validate:"omitempty,taskStatus"`
	Priority  string `query:"priority" validate:"omitempty,taskPriority"`
	ProjectID string `query:"projectId" validate:"omitempty,uuid"`
	Tag       string `query:"tag" validate:"omitempty,max=30"`
	Search    string `query:"search" validate:"omitempty,max=100"`
	Archived  bool   `query:"archived"`
}

type AddSubtaskRequest struct {
	Title string `json:"title" validate:"required,min=1,max=200"`
}

type UpdateSubtaskRequest struct {
	Completed *bool   `json:"completed" validate:"required"`
	Title     *string `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
}

type AddCommentRequest struct {
	Text string `json:"text" validate:"required,min=1,max=1000"`
}

type AddTimeEntryRequest struct {
	StartTime time.Time `json:"startTime" validate:"required"`
	EndTime   time.Time `json:"endTime" validate:"required,gtfield=StartTime"`
	Note      *string   `json:"note,omitempty" validate:"omitempty,max=300"`
}
