package entity

import "time"

type TeamEntity struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description *string      `json:"description,omitempty"`
	OwnerID     string       `json:"ownerId"`
	Members     []TeamMember `json:"members"`
	InviteCode  string       `json:"inviteCode"`
	Settings    TeamSettings `json:"settings"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

type TeamMember struct {
	UserID string   `json:"userId"`
	Role   TeamRole `json:"role"`
	// Permissions enthält nur explizite Abweichungen von den Rollen-Defaults.
	Permissions map[string]bool `json:"permissions,omitempty"`
	JoinedAt    time.Time       `json:"joinedAt"`
}

func (m TeamMember) MemberUserID() string                 { return m.UserID }
func (m TeamMember) MemberRole() string                   { return string(m.Role) }
func (m TeamMember) PermissionOverrides() map[string]bool { return m.Permissions }

type TeamSettings struct {
	MaxMembers   int          `json:"maxMembers"`
	InvitePolicy InvitePolicy `json:"invitePolicy"`
	DefaultRole  TeamRole     `json:"defaultRole"`
}

// TeamSummary ist die Listenansicht mit der Rolle des Aufrufers.
type TeamSummary struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	OwnerID     string    `json:"ownerId"`
	MemberCount int       `json:"memberCount"`
	Role        TeamRole  `json:"role"`
	CreatedAt   time.Time `json:"createdAt"`
}

type TeamRole string

const (
	TeamRoleOwner  TeamRole = "owner"
	TeamRoleAdmin  TeamRole = "admin"
	TeamRoleMember TeamRole = "member"
)

func (r TeamRole) IsValid() bool {
	switch r {
	case TeamRoleOwner, TeamRoleAdmin, TeamRoleMember:
		return true
	}
	return false
}

type InvitePolicy string

const (
	InviteOpen       InvitePolicy = "open"
	InviteCode       InvitePolicy = "code"
	InviteInviteOnly InvitePolicy = "invite-only"
)

func (p InvitePolicy) IsValid() bool {
	switch p {
	case InviteOpen, InviteCode, InviteInviteOnly:
		return true
	}
	return false
}

const DefaultTeamMaxMembers = 50

func DefaultTeamSettings() TeamSettings {
	return TeamSettings{
		MaxMembers:   DefaultTeamMaxMembers,
		InvitePolicy: InviteCode,
		DefaultRole:  TeamRoleMember,
	}
}

// FindMember liefert das Mitglied mit userID oder nil.
func (t *TeamEntity) FindMember(userID string) *TeamMember {
	for i := range t.Members {
		if t.Members[i].UserID == userID {
			return &t.Members[i]
		}
	}
	return nil
}

func (t *TeamEntity) IsFull() bool {
	return t.Settings.MaxMembers > 0 && len(t.Members) >= t.Settings.MaxMembers
}
