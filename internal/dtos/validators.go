package dtos

import (
	"github.com/Xenn-00/aufgaben-team/internal/entity"
	"github.com/go-playground/validator/v10"
)

func IsValidTaskStatus(fl validator.FieldLevel) bool {
	return entity.TaskStatus(fl.Field().String()).IsValid()
}

func IsValidTaskPriority(fl validator.FieldLevel) bool {
	return entity.TaskPriority(fl.Field().String()).IsValid()
}

func IsValidTeamRole(fl validator.FieldLevel) bool {
	return entity.TeamRole(fl.Field().String()).IsValid()
}

func IsValidProjectRole(fl validator.FieldLevel) bool {
	return entity.ProjectRole(fl.Field().String()).IsValid()
}

func IsValidProjectStatus(fl validator.FieldLevel) bool {
	return entity.ProjectStatus(fl.Field().String()).IsValid()
}

func IsValidVisibility(fl validator.FieldLevel) bool {
	return entity.ProjectVisibility(fl.Field().String()).IsValid()
}

func IsValidInvitePolicy(fl validator.FieldLevel) bool {
	return entity.InvitePolicy(fl.Field().String()).IsValid()
}

func IsValidRecurrencePattern(fl validator.FieldLevel) bool {
	return entity.RecurrencePattern(fl.Field().String()).IsValid()
}

func IsValidInvitationStatus(fl validator.FieldLevel) bool {
	return entity.InvitationStatus(fl.Field().String()).IsValid()
}

// RegisterEnumValidators registriert die Enum-Tags, die in den Request-DTOs verwendet werden.
func RegisterEnumValidators(v *validator.Validate) {
	tags := map[string]validator.Func{
		"taskStatus":        IsValidTaskStatus,
		"taskPriority":      IsValidTaskPriority,
		"teamRole":          IsValidTeamRole,
		"projectRole":       IsValidProjectRole,
		"projectStatus":     IsValidProjectStatus,
		"visibility":        IsValidVisibility,
		"invitePolicy":      IsValidInvitePolicy,
		"recurrencePattern": IsValidRecurrencePattern,
		"invitationStatus":  IsValidInvitationStatus,
	}
	for tag, fn := range tags {
		// Fehler nur bei leerem Tag-Namen möglich
		_ = v.RegisterValidation(tag, fn)
	}
}
