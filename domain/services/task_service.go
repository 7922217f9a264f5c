package services

import (
	"context"

	"task-tracker-api/domain/dto"
	"task-tracker-api/domain/models"
)

type TaskService interface {
	CreateTask(ctx context.Context, req *dto.CreateTaskRequest) (*models.Task, error)
	GetTask(ctx context.Context, id uint) (*models.Task, error)
	// ListTasks returns one page and the number of tasks matching the filters.
	ListTasks(ctx context.Context, req *dto.TaskFilterRequest) ([]*models.Task, int64, error)
	UpdateTask(ctx context.Context, id uint, req *dto.UpdateTaskRequest) (*models.Task, error)
	ToggleTask(ctx context.Context, id uint) (*models.Task, error)
	DeleteTask(ctx context.Context, id uint) (uint, error)
	GetStats(ctx context.Context) (*models.TaskStats, error)
}

// HealthService reports whether the backing store is reachable.
type HealthService interface {
	CheckDatabase(ctx context.Context) error
}
