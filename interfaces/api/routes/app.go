package routes

import (
	"github.com/gofiber/fiber/v2"

	"task-tracker-api/interfaces/api/handlers"
	"task-tracker-api/interfaces/api/middleware"
	"task-tracker-api/pkg/config"
)

const maxBodySize = 1 * 1024 * 1024

// NewApp builds the fiber app with middleware and routes.
func NewApp(cfg *config.Config, h *handlers.Handlers) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler:          middleware.ErrorHandler(),
		AppName:               cfg.App.Name,
		BodyLimit:             maxBodySize,
		DisableStartupMessage: cfg.IsProduction(),
	})

	// request id before logger, recover innermost so panics still get logged
	app.Use(middleware.RequestIDMiddleware())
	app.Use(middleware.LoggerMiddleware())
	app.Use(middleware.CorsMiddleware(cfg.CORS.AllowOrigins))
	app.Use(middleware.RecoverMiddleware())

	SetupRoutes(app, h)

	return app
}
