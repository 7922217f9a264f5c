package database

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"task-tracker-api/domain/models"
	"task-tracker-api/domain/query"
	"task-tracker-api/domain/repositories"
	"task-tracker-api/pkg/apperror"
)

const msgTaskNotFound = "task not found"

type TaskRepositoryImpl struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) repositories.TaskRepository {
	return &TaskRepositoryImpl{db: db}
}

func (r *TaskRepositoryImpl) Create(ctx context.Context, task *models.Task) error {
	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return storageError("create task", err)
	}
	return nil
}

func (r *TaskRepositoryImpl) GetByID(ctx context.Context, id uint) (*models.Task, error) {
	var task models.Task
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&task).Error
	if err != nil {
		return nil, translate("get task", err)
	}
	return &task, nil
}

func (r *TaskRepositoryImpl) List(ctx context.Context, q *query.TaskQuery) ([]*models.Task, error) {
	tasks := []*models.Task{}
	tx := scope(r.db.WithContext(ctx).Model(&models.Task{}), q)
	for _, term := range query.OrderBy() {
		tx = tx.Order(term)
	}
	err := tx.Offset(q.Skip).Limit(q.Limit).Find(&tasks).Error
	if err != nil {
		return nil, storageError("list tasks", err)
	}
	return tasks, nil
}

func (r *TaskRepositoryImpl) Count(ctx context.Context, q *query.TaskQuery) (int64, error) {
	var count int64
	err := scope(r.db.WithContext(ctx).Model(&models.Task{}), q).Count(&count).Error
	if err != nil {
		return 0, storageError("count tasks", err)
	}
	return count, nil
}

func (r *TaskRepositoryImpl) Mutate(ctx context.Context, id uint, fn repositories.TaskMutator) (*models.Task, error) {
	var task models.Task
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", id).
			First(&task).Error
		if err != nil {
			return err
		}
		if err := fn(&task); err != nil {
			return err
		}
		return tx.Save(&task).Error
	})
	if err != nil {
		return nil, translate("update task", err)
	}
	return &task, nil
}

func (r *TaskRepositoryImpl) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Task{})
	if result.Error != nil {
		return storageError("delete task", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperror.NotFound(msgTaskNotFound)
	}
	return nil
}

func (r *TaskRepositoryImpl) CountGroups(ctx context.Context) ([]models.TaskCountRow, error) {
	var rows []models.TaskCountRow
	err := r.db.WithContext(ctx).
		Model(&models.Task{}).
		Select("completed, priority, category, COUNT(*) AS count").
		Group("completed, priority, category").
		Scan(&rows).Error
	if err != nil {
		return nil, storageError("count task groups", err)
	}
	return rows, nil
}

func (r *TaskRepositoryImpl) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return storageError("ping", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return storageError("ping", err)
	}
	return nil
}

func scope(tx *gorm.DB, q *query.TaskQuery) *gorm.DB {
	for _, p := range q.Predicates {
		sql, args := p.SQL()
		tx = tx.Where(sql, args...)
	}
	return tx
}

// translate keeps errors already classified by the caller (a mutator may
// return a validation error) and maps the rest.
func translate(op string, err error) error {
	var appErr *apperror.Error
	switch {
	case errors.As(err, &appErr):
		return err
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperror.NotFound(msgTaskNotFound)
	default:
		return storageError(op, err)
	}
}

func storageError(op string, err error) error {
	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		return err
	}
	return apperror.Storage(op, err)
}
