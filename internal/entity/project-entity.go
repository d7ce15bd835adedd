package entity

import (
	"time"
)

type ProjectEntity struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Description    *string         `json:"description,omitempty"`
	Color          string          `json:"color"`
	Icon           string          `json:"icon"`
	OwnerID        string          `json:"ownerId"`
	TeamID         *string         `json:"teamId,omitempty"`
	Members        []ProjectMember `json:"members"`
	Settings       ProjectSettings `json:"settings"`
	Status         ProjectStatus   `json:"status"`
	StartDate      *time.Time      `json:"startDate,omitempty"`
	EndDate        *time.Time      `json:"endDate,omitempty"`
	LastActivityAt time.Time       `json:"lastActivityAt"`
	Archived       bool            `json:"archived"`
	ArchivedAt     *time.Time      `json:"archivedAt,omitempty"`
	ArchivedBy     *string         `json:"archivedBy,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

type ProjectMember struct {
	UserID      string          `json:"userId"`
	Role        ProjectRole     `json:"role"`
	Permissions map[string]bool `json:"permissions,omitempty"`
	JoinedAt    time.Time       `json:"joinedAt"`
}

func (m ProjectMember) MemberUserID() string                 { return m.UserID }
func (m ProjectMember) MemberRole() string                   { return string(m.Role) }
func (m ProjectMember) PermissionOverrides() map[string]bool { return m.Permissions }

type ProjectSettings struct {
	DefaultPriority TaskPriority      `json:"defaultPriority"`
	Visibility      ProjectVisibility `json:"visibility"`
	RequireApproval bool              `json:"requireApproval"`
}

type ProjectListFilter struct {
	UserID   string
	TeamID   *string
	Archived bool
}

type ProjectRole string
type ProjectVisibility string
type ProjectStatus string

const (
	ProjectRoleOwner  ProjectRole = "owner"
	ProjectRoleAdmin  ProjectRole = "admin"
	ProjectRoleMember ProjectRole = "member"
	ProjectRoleViewer ProjectRole = "viewer"

	VisibilityPrivate ProjectVisibility = "private"
	VisibilityTeam    ProjectVisibility = "team"
	VisibilityPublic  ProjectVisibility = "public"

	ProjectPlanning  ProjectStatus = "planning"
	ProjectActive    ProjectStatus = "active"
	ProjectOnHold    ProjectStatus = "on-hold"
	ProjectCompleted ProjectStatus = "completed"
	ProjectArchived  ProjectStatus = "archived"
)

func (r ProjectRole) IsValid() bool {
	switch r {
	case ProjectRoleOwner, ProjectRoleAdmin, ProjectRoleMember, ProjectRoleViewer:
		return true
	}
	return false
}

func (v ProjectVisibility) IsValid() bool {
	switch v {
	case VisibilityPrivate, VisibilityTeam, VisibilityPublic:
		return true
	}
	return false
}

func (s ProjectStatus) IsValid() bool {
	switch s {
	case ProjectPlanning, ProjectActive, ProjectOnHold, ProjectCompleted, ProjectArchived:
		return true
	}
	return false
}

func DefaultProjectSettings() ProjectSettings {
	return ProjectSettings{
		DefaultPriority: PriorityMedium,
		Visibility:      VisibilityTeam,
	}
}

func (p *ProjectEntity) FindMember(userID string) *ProjectMember {
	for i := range p.Members {
		if p.Members[i].UserID == userID {
			return &p.Members[i]
		}
	}
	return nil
}
