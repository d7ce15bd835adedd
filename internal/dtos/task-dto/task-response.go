package task_dto

import (
	"time"

	"github.com/Xenn-00/aufgaben-team/internal/entity"
	"github.com/Xenn-00/aufgaben-team/internal/stats"
)

// TaskResponse ist die gespeicherte Aufgabe plus der abgeleitete Status zum Lesezeitpunkt.
type TaskResponse struct {
	entity.TaskEntity
	DynamicStatus entity.TaskStatus `json:"dynamicStatus"`
}

func NewTaskResponse(t *entity.TaskEntity, now time.Time) TaskResponse {
	return TaskResponse{
		TaskEntity:    *t,
		DynamicStatus: stats.EffectiveStatusOf(t, now),
	}
}

func NewTaskResponses(tasks []entity.TaskEntity, now time.Time) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for i := range tasks {
		out = append(out, NewTaskResponse(&tasks[i], now))
	}
	return out
}

// CompleteTaskResponse enthält bei wiederkehrenden Aufgaben die neu angelegte Folgeaufgabe.
type CompleteTaskResponse struct {
	Task TaskResponse  `json:"task"`
	Next *TaskResponse `json:"nextOccurrence,omitempty"`
}
