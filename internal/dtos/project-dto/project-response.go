package project_dto

import (
	"time"

	"github.com/Xenn-00/aufgaben-team/internal/entity"
	"github.com/Xenn-00/aufgaben-team/internal/permission"
	"github.com/Xenn-00/aufgaben-team/internal/stats"
)

type ProjectMemberResponse struct {
	entity.UserSummary
	Role        entity.ProjectRole  `json:"role"`
	Permissions []permission.Action `json:"permissions"`
	JoinedAt    time.Time           `json:"joinedAt"`
}

type ProjectResponse struct {
	ID             string                  `json:"id"`
	Name           string                  `json:"name"`
	Description    *string                 `json:"description,omitempty"`
	Color          string                  `json:"color"`
	Icon           string                  `json:"icon"`
	OwnerID        string                  `json:"ownerId"`
	TeamID         *string                 `json:"teamId,omitempty"`
	Members        []ProjectMemberResponse `json:"members"`
	Settings       entity.ProjectSettings  `json:"settings"`
	Status         entity.ProjectStatus    `json:"status"`
	StartDate      *time.Time              `json:"startDate,omitempty"`
	EndDate        *time.Time              `json:"endDate,omitempty"`
	LastActivityAt time.Time               `json:"lastActivityAt"`
	Archived       bool                    `json:"archived"`
	ArchivedAt     *time.Time              `json:"archivedAt,omitempty"`
	ArchivedBy     *string                 `json:"archivedBy,omitempty"`
	MyRole         entity.ProjectRole      `json:"myRole,omitempty"`
	CreatedAt      time.Time               `json:"createdAt"`
	UpdatedAt      time.Time               `json:"updatedAt"`
}

// ProjectProgressResponse ist die leichte Variante von /stats.
type ProjectProgressResponse struct {
	Overview   stats.Overview  `json:"overview"`
	Timeline   *stats.Timeline `json:"timeline,omitempty"`
	ComputedAt time.Time       `json:"computedAt"`
}
