package entity

// Member ist die gemeinsame Sicht auf eingebettete Mitgliedslisten von Team und Projekt.
type Member interface {
	MemberUserID() string
	MemberRole() string
	PermissionOverrides() map[string]bool
}

var (
	_ Member = TeamMember{}
	_ Member = ProjectMember{}
)

// MemberIDs sammelt die User-IDs einer Mitgliedsliste.
func MemberIDs[M Member](members []M) []string {
	ids := make([]string, 0, len(members))
	for _, m := range members {
		ids = append(ids, m.MemberUserID())
	}
	return ids
}
