package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"task-tracker-api/domain/dto"
	"task-tracker-api/domain/services"
	"task-tracker-api/pkg/apperror"
	"task-tracker-api/pkg/logger"
	"task-tracker-api/pkg/utils"
)

const (
	msgInvalidBody  = "invalid request body"
	msgInvalidQuery = "invalid query parameters"
	msgInvalidID    = "invalid task id"
)

// TaskHandler returns errors to the app's ErrorHandler, which owns the error envelope.
type TaskHandler struct {
	taskService services.TaskService
}

func NewTaskHandler(taskService services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

func (h *TaskHandler) CreateTask(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req dto.CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		logger.WarnContext(ctx, "Invalid request body", "error", err)
		return apperror.Validation(msgInvalidBody)
	}

	task, err := h.taskService.CreateTask(ctx, &req)
	if err != nil {
		return err
	}

	return utils.CreatedResponse(c, dto.TaskToTaskResponse(task))
}

func (h *TaskHandler) ListTasks(c *fiber.Ctx) error {
	ctx := c.UserContext()

	req := dto.TaskFilterRequest{
		Skip:  dto.DefaultListSkip,
		Limit: dto.DefaultListLimit,
	}
	if err := c.QueryParser(&req); err != nil {
		logger.WarnContext(ctx, "Invalid query parameters", "error", err)
		return apperror.Validation(msgInvalidQuery)
	}

	tasks, total, err := h.taskService.ListTasks(ctx, &req)
	if err != nil {
		return err
	}

	c.Set(utils.TotalCountHeader, strconv.FormatInt(total, 10))
	return utils.SuccessResponse(c, dto.TasksToTaskResponses(tasks))
}

func (h *TaskHandler) GetTask(c *fiber.Ctx) error {
	id, err := taskID(c)
	if err != nil {
		return err
	}

	task, err := h.taskService.GetTask(c.UserContext(), id)
	if err != nil {
		return err
	}

	return utils.SuccessResponse(c, dto.TaskToTaskResponse(task))
}

func (h *TaskHandler) UpdateTask(c *fiber.Ctx) error {
	ctx := c.UserContext()

	id, err := taskID(c)
	if err != nil {
		return err
	}

	var req dto.UpdateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		logger.WarnContext(ctx, "Invalid request body", "task_id", id, "error", err)
		return apperror.Validation(msgInvalidBody)
	}

	task, err := h.taskService.UpdateTask(ctx, id, &req)
	if err != nil {
		return err
	}

	return utils.SuccessResponse(c, dto.TaskToTaskResponse(task))
}

func (h *TaskHandler) ToggleTask(c *fiber.Ctx) error {
	id, err := taskID(c)
	if err != nil {
		return err
	}

	task, err := h.taskService.ToggleTask(c.UserContext(), id)
	if err != nil {
		return err
	}

	return utils.SuccessResponse(c, dto.TaskToTaskResponse(task))
}

func (h *TaskHandler) DeleteTask(c *fiber.Ctx) error {
	id, err := taskID(c)
	if err != nil {
		return err
	}

	deletedID, err := h.taskService.DeleteTask(c.UserContext(), id)
	if err != nil {
		return err
	}

	return utils.SuccessResponse(c, dto.DeleteTaskResponse{
		Message:   utils.Message(c, "task_deleted"),
		DeletedID: deletedID,
	})
}

func (h *TaskHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.taskService.GetStats(c.UserContext())
	if err != nil {
		return err
	}

	return utils.SuccessResponse(c, dto.TaskStatsToResponse(stats))
}

func taskID(c *fiber.Ctx) (uint, error) {
	raw := c.Params("id")
	// ids are stored as signed 64-bit integers
	id, err := strconv.ParseUint(raw, 10, 63)
	if err != nil || id == 0 {
		logger.WarnContext(c.UserContext(), "Invalid task ID", "task_id", raw)
		return 0, apperror.Validation(msgInvalidID)
	}
	return uint(id), nil
}
