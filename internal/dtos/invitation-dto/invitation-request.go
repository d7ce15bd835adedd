package invitation_dto

type ParamInvitationID struct {
	ID string `params:"invitationId" validate:"required,uuid"`
}

// SendInvitationRequest: entweder Email oder UserID muss gesetzt sein.
type SendInvitationRequest struct {
	Email   string  `json:"email,omitempty" validate:"omitempty,email"`
	UserID  string  `json:"userId,omitempty" validate:"omitempty,uuid"`
	Role    string  `json:"role,omitempty" validate:"omitempty,teamRole,ne=owner"`
	Message *string `json:"message,omitempty" validate:"omitempty,max=500"`
}

func (r SendInvitationRequest) HasTarget() bool {
	return r.Email != "" || r.UserID != ""
}

type ListTeamInvitationsQuery struct {
	Status string `query:"status" validate:"omitempty,invitationStatus"`
}
