package routers

import (
	achievement_case "github.com/Xenn-00/aufgaben-team/internal/use-cases/achievement-case"
	auth_case "github.com/Xenn-00/aufgaben-team/internal/use-cases/auth-case"
	invitation_case "github.com/Xenn-00/aufgaben-team/internal/use-cases/invitation-case"
	notification_case "github.com/Xenn-00/aufgaben-team/internal/use-cases/notification-case"
	project_case "github.com/Xenn-00/aufgaben-team/internal/use-cases/project-case"
	task_case "github.com/Xenn-00/aufgaben-team/internal/use-cases/task-case"
	team_case "github.com/Xenn-00/aufgaben-team/internal/use-cases/team-case"
	upload_case "github.com/Xenn-00/aufgaben-team/internal/use-cases/upload-case"
	user_case "github.com/Xenn-00/aufgaben-team/internal/use-cases/user-case"
)

type services struct {
	auth          auth_case.AuthServiceContract
	users         *user_case.UserService
	tasks         task_case.TaskServiceContract
	teams         team_case.TeamServiceContract
	invitations   invitation_case.InvitationServiceContract
	projects      project_case.ProjectServiceContract
	notifications notification_case.NotificationServiceContract
	achievements  achievement_case.AchievementServiceContract
	uploads       upload_case.UploadServiceContract
}

func newServices(deps Dependencies) *services {
	users := user_case.NewUserService(deps.DB, deps.Redis, deps.Config.Location())

	return &services{
		auth:          auth_case.NewAuthService(deps.DB, deps.Redis, deps.Paseto, deps.TaskQueue, deps.Config.SESSION.TTL),
		users:         users,
		tasks:         task_case.NewTaskService(deps.DB, deps.Redis, deps.Mongo),
		teams:         team_case.NewTeamService(deps.DB, deps.Mongo),
		invitations:   invitation_case.NewInvitationService(deps.DB, deps.Mongo, deps.TaskQueue),
		projects:      project_case.NewProjectService(deps.DB, deps.Mongo),
		notifications: notification_case.NewNotificationService(deps.Mongo),
		achievements:  achievement_case.NewAchievementService(deps.DB, deps.Mongo, users),
		uploads:       upload_case.NewUploadService(deps.DB, deps.Images),
	}
}
