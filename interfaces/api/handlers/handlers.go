package handlers

import (
	"time"

	"task-tracker-api/domain/services"
)

// Services contains all the services needed for handlers
type Services struct {
	TaskService   services.TaskService
	HealthService services.HealthService
	AppVersion    string
	Now           func() time.Time // defaults to time.Now
}

// Handlers contains all HTTP handlers
type Handlers struct {
	TaskHandler   *TaskHandler
	HealthHandler *HealthHandler
}

func NewHandlers(services *Services) *Handlers {
	now := services.Now
	if now == nil {
		now = time.Now
	}
	return &Handlers{
		TaskHandler:   NewTaskHandler(services.TaskService),
		HealthHandler: NewHealthHandler(services.HealthService, services.AppVersion, now),
	}
}
