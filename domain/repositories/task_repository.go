package repositories

import (
	"context"

	"task-tracker-api/domain/models"
	"task-tracker-api/domain/query"
)

// TaskMutator edits a locked task inside a transaction. Returning an error
// rolls the transaction back.
type TaskMutator func(task *models.Task) error

type TaskRepository interface {
	Create(ctx context.Context, task *models.Task) error
	GetByID(ctx context.Context, id uint) (*models.Task, error)
	List(ctx context.Context, q *query.TaskQuery) ([]*models.Task, error)
	Count(ctx context.Context, q *query.TaskQuery) (int64, error)
	// Mutate loads the task under a row lock, applies fn and saves it, all in one transaction.
	Mutate(ctx context.Context, id uint, fn TaskMutator) (*models.Task, error)
	Delete(ctx context.Context, id uint) error
	CountGroups(ctx context.Context) ([]models.TaskCountRow, error)
	Ping(ctx context.Context) error
}
