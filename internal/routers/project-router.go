package routers

import (
	project_handlers "github.com/Xenn-00/aufgaben-team/internal/handlers/project"
	"github.com/gofiber/fiber/v2"
)

func ProjectRouter(api fiber.Router, deps Dependencies, s *services, protected []fiber.Handler) {
	r := api.Group("/projects", protected...)
	projectHandler := project_handlers.NewProjectHandler(s.projects, deps.I18n)

	r.Post("/", projectHandler.CreateProject)
	r.Get("/", projectHandler.ListProjects)
	r.Get("/:projectId", projectHandler.GetProject)
	r.Put("/:projectId", projectHandler.UpdateProject)
	r.Delete("/:projectId", projectHandler.DeleteProject)
	r.Patch("/:projectId/archive", projectHandler.ArchiveProject)
	r.Patch("/:projectId/unarchive", projectHandler.UnarchiveProject)

	r.Get("/:projectId/members", projectHandler.ListMembers)
	r.Post("/:projectId/members", projectHandler.AddMember)
	r.Patch("/:projectId/members/:userId", projectHandler.UpdateMember)
	r.Delete("/:projectId/members/:userId", projectHandler.RemoveMember)

	r.Get("/:projectId/progress", projectHandler.Progress)
	r.Get("/:projectId/stats", projectHandler.ProjectStats)
}
