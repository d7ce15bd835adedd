package invitation_dto

import "github.com/Xenn-00/aufgaben-team/internal/entity"

type InvitationResponse struct {
	entity.InvitationDetail
	Expired bool `json:"expired"`
}

// AcceptInvitationResponse liefert die Einladung und die neue Mitgliedschaft.
type AcceptInvitationResponse struct {
	Invitation InvitationResponse `json:"invitation"`
	TeamID     string             `json:"teamId"`
	Role       entity.TeamRole    `json:"role"`
}
