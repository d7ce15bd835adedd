package team_dto

type ParamTeamID struct {
	ID string `params:"teamId" validate:"required,uuid"`
}

type ParamTeamMember struct {
	TeamID string `params:"teamId" validate:"required,uuid"`
	UserID string `params:"userId" validate:"required,uuid"`
}

type ParamInviteCode struct {
	Code string `params:"inviteCode" validate:"required,len=8,alphanum"`
}

type TeamSettingsRequest struct {
	MaxMembers   *int    `json:"maxMembers,omitempty" validate:"omitempty,min=1,max=500"`
	InvitePolicy *string `json:"invitePolicy,omitempty" validate:"omitempty,invitePolicy"`
	DefaultRole  *string `json:"defaultRole,omitempty" validate:"omitempty,teamRole,ne=owner"`
}

type CreateTeamRequest struct {
	Name        string               `json:"name" validate:"required,min=2,max=100"`
	Description *string              `json:"description,omitempty" validate:"omitempty,max=500"`
	Settings    *TeamSettingsRequest `json:"settings,omitempty"`
}

type UpdateTeamRequest struct {
	Name        *string              `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Description *string              `json:"description,omitempty" validate:"omitempty,max=500"`
	Settings    *TeamSettingsRequest `json:"settings,omitempty"`
}

type AddMemberRequest struct {
	UserID string `json:"userId" validate:"required,uuid"`
	Role   string `json:"role,omitempty" validate:"omitempty,teamRole,ne=owner"`
}

// UpdateMemberRequest: Permissions enthält nur Abweichungen von den Rollen-Defaults.
type UpdateMemberRequest struct {
	Role        string          `json:"role" validate:"required,teamRole,ne=owner"`
	Permissions map[string]bool `json:"permissions,omitempty"`
}

type TransferOwnershipRequest struct {
	UserID string `json:"userId" validate:"required,uuid"`
}
