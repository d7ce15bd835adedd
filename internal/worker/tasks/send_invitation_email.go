package worker_task

const TaskSendTeamInvitationEmail = "email:team_invitation"

// TeamInvitationEmailPayload: der Worker lädt Team- und Empfängerdaten selbst nach,
// damit die Mail den Stand zum Versandzeitpunkt zeigt.
type TeamInvitationEmailPayload struct {
	InvitationID string `json:"invitation_id"`
}
