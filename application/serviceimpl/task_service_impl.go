package serviceimpl

import (
	"context"
	"errors"
	"strconv"
	"time"

	"golang.org/x/sync/singleflight"

	"task-tracker-api/domain/dto"
	"task-tracker-api/domain/models"
	"task-tracker-api/domain/ports"
	"task-tracker-api/domain/repositories"
	"task-tracker-api/domain/services"
	"task-tracker-api/domain/validation"
	"task-tracker-api/pkg/logger"
)

const defaultStatsTTL = 30 * time.Second

type TaskServiceImpl struct {
	taskRepo  repositories.TaskRepository
	validator *validation.TaskValidator
	events    ports.TaskEventPublisherPort
	cache     ports.StatsCachePort // nil disables caching
	statsTTL  time.Duration
	now       func() time.Time
	group     singleflight.Group
}

// TaskServiceOption configures optional collaborators.
type TaskServiceOption func(*TaskServiceImpl)

func WithClock(now func() time.Time) TaskServiceOption {
	return func(s *TaskServiceImpl) { s.now = now }
}

func WithEventPublisher(p ports.TaskEventPublisherPort) TaskServiceOption {
	return func(s *TaskServiceImpl) { s.events = p }
}

func WithStatsCache(cache ports.StatsCachePort, ttl time.Duration) TaskServiceOption {
	return func(s *TaskServiceImpl) {
		s.cache = cache
		if ttl > 0 {
			s.statsTTL = ttl
		}
	}
}

func NewTaskService(taskRepo repositories.TaskRepository, opts ...TaskServiceOption) *TaskServiceImpl {
	s := &TaskServiceImpl{
		taskRepo: taskRepo,
		statsTTL: defaultStatsTTL,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.validator = validation.NewTaskValidator(s.now)
	return s
}

// timestamp is the current time at the precision the database keeps.
func (s *TaskServiceImpl) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Microsecond)
}

func (s *TaskServiceImpl) CreateTask(ctx context.Context, req *dto.CreateTaskRequest) (*models.Task, error) {
	task, err := s.validator.ValidateCreate(req)
	if err != nil {
		return nil, err
	}

	now := s.timestamp()
	task.CreatedAt = now
	task.UpdatedAt = now

	if err := s.taskRepo.Create(ctx, task); err != nil {
		logger.ErrorContext(ctx, "Failed to create task", "error", err)
		return nil, err
	}

	logger.InfoContext(ctx, "Task created", "task_id", task.ID, "priority", task.Priority)
	s.afterCommit(ctx, ports.TaskCreated, task.ID, task)

	return task, nil
}

func (s *TaskServiceImpl) GetTask(ctx context.Context, id uint) (*models.Task, error) {
	return s.taskRepo.GetByID(ctx, id)
}

func (s *TaskServiceImpl) ListTasks(ctx context.Context, req *dto.TaskFilterRequest) ([]*models.Task, int64, error) {
	q, err := s.validator.ValidateFilter(req)
	if err != nil {
		return nil, 0, err
	}

	tasks, err := s.taskRepo.List(ctx, q)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to list tasks", "error", err)
		return nil, 0, err
	}

	total, err := s.taskRepo.Count(ctx, q)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to count tasks", "error", err)
		return nil, 0, err
	}

	return tasks, total, nil
}

func (s *TaskServiceImpl) UpdateTask(ctx context.Context, id uint, req *dto.UpdateTaskRequest) (*models.Task, error) {
	patch, err := s.validator.ValidateUpdate(req)
	if err != nil {
		return nil, err
	}

	task, err := s.taskRepo.Mutate(ctx, id, func(t *models.Task) error {
		patch.Apply(t)
		t.Touch(s.timestamp())
		return nil
	})
	if err != nil {
		logMutationError(ctx, "update", id, err)
		return nil, err
	}

	logger.InfoContext(ctx, "Task updated", "task_id", id)
	s.afterCommit(ctx, ports.TaskUpdated, id, task)

	return task, nil
}

func (s *TaskServiceImpl) ToggleTask(ctx context.Context, id uint) (*models.Task, error) {
	task, err := s.taskRepo.Mutate(ctx, id, func(t *models.Task) error {
		t.Completed = !t.Completed
		t.Touch(s.timestamp())
		return nil
	})
	if err != nil {
		logMutationError(ctx, "toggle", id, err)
		return nil, err
	}

	logger.InfoContext(ctx, "Task toggled", "task_id", id, "completed", task.Completed)
	s.afterCommit(ctx, ports.TaskToggled, id, task)

	return task, nil
}

func (s *TaskServiceImpl) DeleteTask(ctx context.Context, id uint) (uint, error) {
	if err := s.taskRepo.Delete(ctx, id); err != nil {
		logMutationError(ctx, "delete", id, err)
		return 0, err
	}

	logger.InfoContext(ctx, "Task deleted", "task_id", id)
	s.afterCommit(ctx, ports.TaskDeleted, id, nil)

	return id, nil
}

// GetStats reads through the cache when one is configured. Cache failures
// fall back to the database.
func (s *TaskServiceImpl) GetStats(ctx context.Context) (*models.TaskStats, error) {
	if s.cache == nil {
		return s.computeStats(ctx)
	}

	version, err := s.cache.Version(ctx)
	if err != nil {
		logger.WarnContext(ctx, "Stats cache unavailable", "error", err)
		return s.computeStats(ctx)
	}

	var cached dto.TaskStatsResponse
	switch err := s.cache.Get(ctx, version, &cached); {
	case err == nil:
		return dto.TaskStatsFromResponse(&cached), nil
	case !errors.Is(err, ports.ErrCacheMiss):
		logger.WarnContext(ctx, "Stats cache read failed", "error", err)
	}

	v, err, _ := s.group.Do("stats:"+strconv.FormatInt(version, 10), func() (any, error) {
		stats, err := s.computeStats(ctx)
		if err != nil {
			return nil, err
		}
		if err := s.cache.Set(ctx, version, dto.TaskStatsToResponse(stats), s.statsTTL); err != nil {
			logger.WarnContext(ctx, "Stats cache write failed", "error", err)
		}
		return stats, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*models.TaskStats), nil
}

func (s *TaskServiceImpl) computeStats(ctx context.Context) (*models.TaskStats, error) {
	rows, err := s.taskRepo.CountGroups(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to aggregate task stats", "error", err)
		return nil, err
	}

	stats := models.NewTaskStats()
	for _, row := range rows {
		stats.Add(row)
	}
	return stats, nil
}

func (s *TaskServiceImpl) CheckDatabase(ctx context.Context) error {
	return s.taskRepo.Ping(ctx)
}

// afterCommit invalidates cached stats and publishes the event. Neither can
// fail the mutation that already committed.
func (s *TaskServiceImpl) afterCommit(ctx context.Context, eventType ports.TaskEventType, id uint, task *models.Task) {
	if s.cache != nil {
		if err := s.cache.Bump(ctx); err != nil {
			logger.WarnContext(ctx, "Failed to invalidate stats cache", "task_id", id, "error", err)
		}
	}

	if s.events == nil {
		return
	}

	event := &ports.TaskEvent{
		Type:       eventType,
		TaskID:     id,
		OccurredAt: s.now().UTC(),
	}
	if task != nil {
		event.Task = dto.TaskToTaskResponse(task)
	}
	if err := s.events.PublishTaskEvent(ctx, event); err != nil {
		logger.WarnContext(ctx, "Failed to publish task event", "type", eventType, "task_id", id, "error", err)
	}
}

func logMutationError(ctx context.Context, op string, id uint, err error) {
	logger.WarnContext(ctx, "Task "+op+" failed", "task_id", id, "error", err)
}

var (
	_ services.TaskService   = (*TaskServiceImpl)(nil)
	_ services.HealthService = (*TaskServiceImpl)(nil)
)
