package routers

import (
	invitation_handlers "github.com/Xenn-00/aufgaben-team/internal/handlers/invitation"
	team_handlers "github.com/Xenn-00/aufgaben-team/internal/handlers/team"
	"github.com/gofiber/fiber/v2"
)

func TeamRouter(api fiber.Router, deps Dependencies, s *services, protected []fiber.Handler) {
	r := api.Group("/teams", protected...)
	teamHandler := team_handlers.NewTeamHandler(s.teams, deps.I18n)
	invitationHandler := invitation_handlers.NewInvitationHandler(s.invitations, deps.I18n)

	r.Post("/", teamHandler.CreateTeam)
	r.Get("/", teamHandler.ListMyTeams)
	r.Post("/join/:inviteCode", teamHandler.JoinByInviteCode)

	r.Get("/:teamId", teamHandler.GetTeam)
	r.Put("/:teamId", teamHandler.UpdateTeam)
	r.Delete("/:teamId", teamHandler.DeleteTeam)

	r.Get("/:teamId/members", teamHandler.ListMembers)
	r.Post("/:teamId/members", teamHandler.AddMember)
	r.Patch("/:teamId/members/:userId", teamHandler.UpdateMember)
	r.Delete("/:teamId/members/:userId", teamHandler.RemoveMember)
	r.Post("/:teamId/transfer-ownership", teamHandler.TransferOwnership)
	r.Post("/:teamId/regenerate-invite", teamHandler.RegenerateInviteCode)
	r.Get("/:teamId/stats", teamHandler.TeamStats)

	r.Post("/:teamId/invitations", invitationHandler.SendInvitation)
	r.Get("/:teamId/invitations", invitationHandler.ListTeamInvitations)
}

func InvitationRouter(api fiber.Router, deps Dependencies, s *services, protected []fiber.Handler) {
	r := api.Group("/invitations", protected...)
	invitationHandler := invitation_handlers.NewInvitationHandler(s.invitations, deps.I18n)

	r.Get("/", invitationHandler.ListMyInvitations)
	r.Post("/:invitationId/accept", invitationHandler.AcceptInvitation)
	r.Post("/:invitationId/deny", invitationHandler.DenyInvitation)
	r.Post("/:invitationId/cancel", invitationHandler.CancelInvitation)
}
