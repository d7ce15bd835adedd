// Package stats berechnet abgeleitete Aufgabenstatus und Statistiken über bereits geladene Daten.
// Alle Funktionen sind rein und bekommen die aktuelle Zeit übergeben.
package stats

import (
	"time"

	"github.com/Xenn-00/aufgaben-team/internal/entity"
)

// EffectiveStatus leitet den angezeigten Status aus dem gespeicherten ab.
// Eine in-progress Aufgabe mit due strikt vor now gilt als failed; due == now noch nicht.
func EffectiveStatus(status entity.TaskStatus, due, now time.Time) entity.TaskStatus {
	if status == entity.TaskCompleted {
		return entity.TaskCompleted
	}
	if status == entity.TaskInProgress && due.Before(now) {
		return entity.TaskFailed
	}
	return status
}

func EffectiveStatusOf(t *entity.TaskEntity, now time.Time) entity.TaskStatus {
	return EffectiveStatus(t.Status, t.DueDate, now)
}

// IsOverdue meldet Aufgaben, deren gespeicherter Status noch nicht nachgezogen wurde.
func IsOverdue(t *entity.TaskEntity, now time.Time) bool {
	return t.Status == entity.TaskInProgress && EffectiveStatusOf(t, now) == entity.TaskFailed
}
