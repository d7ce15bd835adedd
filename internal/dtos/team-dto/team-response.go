package team_dto

import (
	"time"

	"github.com/Xenn-00/aufgaben-team/internal/entity"
	"github.com/Xenn-00/aufgaben-team/internal/permission"
)

type MemberResponse struct {
	entity.UserSummary
	Role        entity.TeamRole     `json:"role"`
	Permissions []permission.Action `json:"permissions"`
	JoinedAt    time.Time           `json:"joinedAt"`
}

type TeamResponse struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Description *string             `json:"description,omitempty"`
	OwnerID     string              `json:"ownerId"`
	InviteCode  string              `json:"inviteCode,omitempty"`
	Settings    entity.TeamSettings `json:"settings"`
	Members     []MemberResponse    `json:"members"`
	MemberCount int                 `json:"memberCount"`
	MyRole      entity.TeamRole     `json:"myRole"`
	CreatedAt   time.Time           `json:"createdAt"`
	UpdatedAt   time.Time           `json:"updatedAt"`
}

type InviteCodeResponse struct {
	InviteCode string `json:"inviteCode"`
}
