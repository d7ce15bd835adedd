package permission

import (
	"testing"

	"github.com/Xenn-00/aufgaben-team/internal/entity"
	"github.com/stretchr/testify/assert"
)

func teamMembers() []entity.TeamMember {
	return []entity.TeamMember{
		{UserID: "owner", Role: entity.TeamRoleOwner},
		{UserID: "admin", Role: entity.TeamRoleAdmin},
		{UserID: "member", Role: entity.TeamRoleMember},
		{UserID: "inviter", Role: entity.TeamRoleMember, Permissions: map[string]bool{"invite_members": true, "create_projects": false}},
		{UserID: "sneaky-admin", Role: entity.TeamRoleAdmin, Permissions: map[string]bool{"delete_team": true}},
	}
}

func TestRoleOf(t *testing.T) {
	members := teamMembers()

	assert.Equal(t, "owner", RoleOf("owner", members))
	assert.Equal(t, "member", RoleOf("member", members))
	assert.Equal(t, "", RoleOf("nobody", members))
	assert.Equal(t, "", RoleOf("", members))
}

func TestHas_Team(t *testing.T) {
	members := teamMembers()

	cases := []struct {
		user   string
		action Action
		want   bool
	}{
		{"owner", DeleteTeam, true},
		{"owner", ManageMembers, true},
		{"admin", ManageMembers, true},
		{"admin", ManageSettings, true},
		{"admin", DeleteTeam, false},
		{"sneaky-admin", DeleteTeam, false},
		{"member", CreateProjects, true},
		{"member", InviteMembers, false},
		{"member", ManageMembers, false},
		{"inviter", InviteMembers, true},
		{"inviter", CreateProjects, false},
		{"nobody", CreateProjects, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, Has(TeamPolicy, tc.user, members, tc.action), "%s/%s", tc.user, tc.action)
	}
}

func TestHas_Project(t *testing.T) {
	members := []entity.ProjectMember{
		{UserID: "owner", Role: entity.ProjectRoleOwner},
		{UserID: "admin", Role: entity.ProjectRoleAdmin},
		{UserID: "member", Role: entity.ProjectRoleMember},
		{UserID: "viewer", Role: entity.ProjectRoleViewer},
	}

	assert.True(t, Has(ProjectPolicy, "owner", members, DeleteProject))
	assert.True(t, Has(ProjectPolicy, "admin", members, ManageMembers))
	assert.False(t, Has(ProjectPolicy, "admin", members, DeleteProject))
	assert.True(t, Has(ProjectPolicy, "member", members, EditAssignedTasks))
	assert.False(t, Has(ProjectPolicy, "member", members, ManageSettings))
	assert.True(t, Has(ProjectPolicy, "viewer", members, View))
	assert.False(t, Has(ProjectPolicy, "viewer", members, CreateTasks))
	assert.False(t, Has(ProjectPolicy, "ghost", members, View))
}

func TestAllowed(t *testing.T) {
	members := teamMembers()

	assert.Equal(t, TeamPolicy.Actions, Allowed(TeamPolicy, "owner", members))
	assert.Equal(t, []Action{CreateProjects}, Allowed(TeamPolicy, "member", members))
	assert.Equal(t, []Action{InviteMembers}, Allowed(TeamPolicy, "inviter", members))
	assert.Nil(t, Allowed(TeamPolicy, "nobody", members))
}

func TestSanitizeOverrides(t *testing.T) {
	got := SanitizeOverrides(TeamPolicy, "member", map[string]bool{
		"invite_members": true,
		"delete_team":    true,
	})
	assert.Equal(t, map[string]bool{"invite_members": true}, got)

	assert.Nil(t, SanitizeOverrides(TeamPolicy, "admin", map[string]bool{"invite_members": false}))
	assert.Nil(t, SanitizeOverrides(TeamPolicy, "member", nil))

	// gleich dem Rollen-Default: wird nicht gespeichert
	assert.Nil(t, SanitizeOverrides(TeamPolicy, "member", map[string]bool{"create_projects": true, "invite_members": false}))
	got = SanitizeOverrides(TeamPolicy, "member", map[string]bool{"create_projects": false, "manage_projects": false})
	assert.Equal(t, map[string]bool{"create_projects": false}, got)

	assert.Equal(t, map[string]bool{"create_tasks": true},
		SanitizeOverrides(ProjectPolicy, "viewer", map[string]bool{"create_tasks": true, "view": true}))
}

func TestCanDestroyProject(t *testing.T) {
	teamID := "team-1"
	project := &entity.ProjectEntity{OwnerID: "p-owner", TeamID: &teamID}
	team := &entity.TeamEntity{ID: teamID, OwnerID: "t-owner"}

	assert.True(t, CanDestroyProject("p-owner", project, team))
	assert.True(t, CanDestroyProject("t-owner", project, team))
	assert.False(t, CanDestroyProject("t-owner", project, nil))
	assert.False(t, CanDestroyProject("someone", project, team))
	assert.False(t, CanDestroyProject("", project, team))
}
