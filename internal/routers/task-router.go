package routers

import (
	task_handlers "github.com/Xenn-00/aufgaben-team/internal/handlers/task"
	"github.com/gofiber/fiber/v2"
)

func TaskRouter(api fiber.Router, deps Dependencies, s *services, protected []fiber.Handler) {
	r := api.Group("/tasks", protected...)
	taskHandler := task_handlers.NewTaskHandler(s.tasks, deps.I18n)

	r.Post("/", taskHandler.CreateTask)
	r.Get("/", taskHandler.ListTasks)
	r.Get("/:taskId", taskHandler.GetTask)
	r.Put("/:taskId", taskHandler.UpdateTask)
	r.Delete("/:taskId", taskHandler.DeleteTask)

	r.Patch("/:taskId/archive", taskHandler.ArchiveTask)
	r.Patch("/:taskId/unarchive", taskHandler.UnarchiveTask)
	r.Patch("/:taskId/complete", taskHandler.CompleteTask)
	r.Patch("/:taskId/status", taskHandler.UpdateStatus)

	r.Post("/:taskId/subtasks", taskHandler.AddSubtask)
	r.Patch("/:taskId/subtasks/:subtaskId", taskHandler.UpdateSubtask)
	r.Post("/:taskId/comments", taskHandler.AddComment)
	r.Post("/:taskId/time-entries", taskHandler.AddTimeEntry)
}
