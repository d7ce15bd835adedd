package mail

import (
	"bytes"
	"html/template"
)

var welcomeTemplate = template.Must(template.New("welcome").Parse(`<!doctype html>
<html>
<body style="font-family: sans-serif; color: #1f2937;">
  <h2>Hi {{.FullName}},</h2>
  <p>your account <strong>@{{.Username}}</strong> is ready.</p>
  <p>Create your first task, start a team or join one with an invite code.</p>
  <p><a href="{{.ClientURL}}" style="color: #3B82F6;">Open Aufgaben Team</a></p>
  <p>Viel Erfolg!</p>
</body>
</html>`))

var teamInvitationTemplate = template.Must(template.New("team_invitation").Parse(`<!doctype html>
<html>
<body style="font-family: sans-serif; color: #1f2937;">
  <h2>Hi {{if .InviteeUsername}}{{.InviteeUsername}}{{else}}there{{end}},</h2>
  <p><strong>{{.InviterUsername}}</strong> invited you to join the team <strong>{{.TeamName}}</strong> as <em>{{.Role}}</em>.</p>
  {{if .Message}}<blockquote style="border-left: 3px solid #e5e7eb; padding-left: 12px;">{{.Message}}</blockquote>{{end}}
  <p><a href="{{.Link}}" style="color: #3B82F6;">View invitation</a></p>
  <p style="color: #6b7280;">The invitation expires on {{.ExpiresAt.Format "02 Jan 2006"}}.</p>
</body>
</html>`))

func render(t *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
