package main

import (
	"context"
	"os"

	gfshutdown "github.com/gelmium/graceful-shutdown"

	"task-tracker-api/interfaces/api/handlers"
	"task-tracker-api/interfaces/api/routes"
	"task-tracker-api/pkg/di"
	"task-tracker-api/pkg/logger"
)

func main() {
	container := di.NewContainer()

	if err := container.Initialize(); err != nil {
		// logger may not be up yet
		panic("Failed to initialize container: " + err.Error())
	}

	cfg := container.GetConfig()
	app := routes.NewApp(cfg, handlers.NewHandlers(container.GetHandlerServices()))

	go func() {
		logger.Info("Server starting",
			"port", cfg.App.Port,
			"env", cfg.App.Env,
			"app", cfg.App.Name,
			"version", cfg.App.Version,
		)
		if err := app.Listen(":" + cfg.App.Port); err != nil {
			logger.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		cfg.App.ShutdownTimeout,
		map[string]gfshutdown.Operation{
			"task-tracker-api": func(ctx context.Context) error {
				logger.Info("Gracefully shutting down...")
				if err := app.ShutdownWithContext(ctx); err != nil {
					logger.Warn("HTTP server shutdown failed", "error", err)
				}
				return container.Cleanup(ctx)
			},
		},
	)

	exitCode := <-wait
	logger.Info("Shutdown complete", "exit_code", exitCode)
	os.Exit(exitCode)
}
