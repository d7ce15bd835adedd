package project_dto

import "time"

type ParamProjectID struct {
	ID string `params:"projectId" validate:"required,uuid"`
}

type ParamProjectMember struct {
	ProjectID string `params:"projectId" validate:"required,uuid"`
	UserID    string `params:"userId" validate:"required,uuid"`
}

type ProjectSettingsRequest struct {
	DefaultPriority *string `json:"defaultPriority,omitempty" validate:"omitempty,taskPriority"`
	Visibility      *string `json:"visibility,omitempty" validate:"omitempty,visibility"`
	RequireApproval *bool   `json:"requireApproval,omitempty"`
}

type CreateProjectRequest struct {
	Name        string                  `json:"name" validate:"required,min=2,max=100"`
	Description *string                 `json:"description,omitempty" validate:"omitempty,max=1000"`
	Color       string                  `json:"color,omitempty" validate:"omitempty,hexcolor"`
	Icon        string                  `json:"icon,omitempty" validate:"omitempty,max=50"`
	TeamID      *string                 `json:"teamId,omitempty" validate:"omitempty,uuid"`
	Settings    *ProjectSettingsRequest `json:"settings,omitempty"`
	StartDate   *time.Time              `json:"startDate,omitempty"`
	EndDate     *time.Time              `json:"endDate,omitempty" validate:"omitempty"`
}

type UpdateProjectRequest struct {
	Name        *string                 `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Description *string                 `json:"description,omitempty" validate:"omitempty,max=1000"`
	Color       *string                 `json:"color,omitempty" validate:"omitempty,hexcolor"`
	Icon        *string                 `json:"icon,omitempty" validate:"omitempty,max=50"`
	Status      *string                 `json:"status,omitempty" validate:"omitempty,projectStatus"`
	Settings    *ProjectSettingsRequest `json:"settings,omitempty"`
	StartDate   *time.Time              `json:"startDate,omitempty"`
	EndDate     *time.Time              `json:"endDate,omitempty"`
}

type ListProjectsQuery struct {
	Archived bool   `query:"archived"`
	TeamID   string `query:"teamId" validate:"omitempty,uuid"`
}

type AddProjectMemberRequest struct {
	UserID string `json:"userId" validate:"required,uuid"`
	Role   string `json:"role,omitempty" validate:"omitempty,projectRole,ne=owner"`
}

type UpdateProjectMemberRequest struct {
	Role        string          `json:"role" validate:"required,projectRole,ne=owner"`
	Permissions map[string]bool `json:"permissions,omitempty"`
}
