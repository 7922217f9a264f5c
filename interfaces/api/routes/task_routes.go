package routes

import (
	"github.com/gofiber/fiber/v2"

	"task-tracker-api/interfaces/api/handlers"
)

// SetupTaskRoutes mounts /tasks. Routing is not strict, so /tasks and /tasks/ both match.
func SetupTaskRoutes(router fiber.Router, h *handlers.Handlers) {
	tasks := router.Group("/tasks")
	tasks.Post("/", h.TaskHandler.CreateTask)
	tasks.Get("/", h.TaskHandler.ListTasks)
	// registered before /:id so "stats" is not taken for an id
	tasks.Get("/stats/summary", h.TaskHandler.GetStats)
	tasks.Get("/:id", h.TaskHandler.GetTask)
	tasks.Put("/:id", h.TaskHandler.UpdateTask)
	tasks.Patch("/:id/toggle", h.TaskHandler.ToggleTask)
	tasks.Delete("/:id", h.TaskHandler.DeleteTask)
}
