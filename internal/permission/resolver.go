// Package permission löst Rollen und erlaubte Aktionen aus eingebetteten Mitgliedslisten auf.
// Team und Projekt teilen sich dieselbe Logik, nur die Policy unterscheidet sich.
package permission

import (
	"slices"

	"github.com/Xenn-00/aufgaben-team/internal/entity"
)

type Action string

const (
	// Team
	ManageMembers  Action = "manage_members"
	ManageProjects Action = "manage_projects"
	ManageSettings Action = "manage_settings"
	InviteMembers  Action = "invite_members"
	CreateProjects Action = "create_projects"
	DeleteTeam     Action = "delete_team"

	// Projekt
	View              Action = "view"
	CreateTasks       Action = "create_tasks"
	EditAllTasks      Action = "edit_all_tasks"
	EditAssignedTasks Action = "edit_assigned_tasks"
	DeleteProject     Action = "delete_project"
)

// Policy beschreibt die Rechte je Rolle.
type Policy struct {
	// Superuser darf alles, unabhängig von Grants.
	Superuser string
	// Actions ist die vollständige Aktionsmenge in Anzeige-Reihenfolge.
	Actions []Action
	Grants  map[string][]Action
	// Overridable: je Rolle die Aktionen, die per Mitglied abweichend gesetzt werden dürfen.
	Overridable map[string][]Action
}

var TeamPolicy = Policy{
	Superuser: string(entity.TeamRoleOwner),
	Actions:   []Action{ManageMembers, ManageProjects, ManageSettings, InviteMembers, CreateProjects, DeleteTeam},
	Grants: map[string][]Action{
		string(entity.TeamRoleAdmin):  {ManageMembers, ManageProjects, ManageSettings, InviteMembers, CreateProjects},
		string(entity.TeamRoleMember): {CreateProjects},
	},
	Overridable: map[string][]Action{
		string(entity.TeamRoleMember): {InviteMembers, CreateProjects, ManageProjects},
	},
}

var ProjectPolicy = Policy{
	Superuser: string(entity.ProjectRoleOwner),
	Actions:   []Action{View, CreateTasks, EditAssignedTasks, EditAllTasks, ManageMembers, ManageSettings, DeleteProject},
	Grants: map[string][]Action{
		string(entity.ProjectRoleAdmin):  {View, ManageMembers, ManageSettings, CreateTasks, EditAllTasks, EditAssignedTasks},
		string(entity.ProjectRoleMember): {View, CreateTasks, EditAssignedTasks},
		string(entity.ProjectRoleViewer): {View},
	},
	Overridable: map[string][]Action{
		string(entity.ProjectRoleMember): {EditAllTasks},
		string(entity.ProjectRoleViewer): {CreateTasks, EditAssignedTasks},
	},
}

// RoleOf liefert die Rolle des principal oder "" für Nichtmitglieder.
func RoleOf[M entity.Member](principal string, members []M) string {
	if principal == "" {
		return ""
	}
	for _, m := range members {
		if m.MemberUserID() == principal {
			return m.MemberRole()
		}
	}
	return ""
}

func find[M entity.Member](principal string, members []M) (M, bool) {
	for _, m := range members {
		if m.MemberUserID() == principal {
			return m, true
		}
	}
	var zero M
	return zero, false
}

// Has prüft eine einzelne Aktion. Nichtmitglieder erhalten immer false.
func Has[M entity.Member](p Policy, principal string, members []M, action Action) bool {
	if principal == "" {
		return false
	}
	m, ok := find(principal, members)
	if !ok {
		return false
	}
	return p.allows(m.MemberRole(), m.PermissionOverrides(), action)
}

// Allowed liefert die effektive Aktionsmenge eines Mitglieds.
func Allowed[M entity.Member](p Policy, principal string, members []M) []Action {
	m, ok := find(principal, members)
	if !ok {
		return nil
	}
	out := []Action{}
	for _, a := range p.Actions {
		if p.allows(m.MemberRole(), m.PermissionOverrides(), a) {
			out = append(out, a)
		}
	}
	return out
}

func (p Policy) allows(role string, overrides map[string]bool, action Action) bool {
	if role == p.Superuser {
		return true
	}
	if slices.Contains(p.Overridable[role], action) {
		if v, ok := overrides[string(action)]; ok {
			return v
		}
	}
	return slices.Contains(p.Grants[role], action)
}

// SanitizeOverrides behält nur Overrides, die für die Rolle zulässig sind und vom
// Rollen-Default abweichen. Rollen ohne Overridable-Eintrag verlieren alle Overrides.
func SanitizeOverrides(p Policy, role string, overrides map[string]bool) map[string]bool {
	allowed := p.Overridable[role]
	if len(allowed) == 0 || len(overrides) == 0 {
		return nil
	}
	out := make(map[string]bool)
	for k, v := range overrides {
		a := Action(k)
		if !slices.Contains(allowed, a) {
			continue
		}
		if v == slices.Contains(p.Grants[role], a) {
			continue
		}
		out[k] = v
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// CanDestroyProject: Projektbesitzer, ersatzweise der Besitzer des zugehörigen Teams.
func CanDestroyProject(principal string, project *entity.ProjectEntity, team *entity.TeamEntity) bool {
	if principal == "" || project == nil {
		return false
	}
	if project.OwnerID == principal {
		return true
	}
	return team != nil && team.OwnerID == principal
}
