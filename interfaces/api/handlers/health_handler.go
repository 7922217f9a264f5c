package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"task-tracker-api/domain/dto"
	"task-tracker-api/domain/services"
	"task-tracker-api/pkg/logger"
)

const healthCheckTimeout = 2 * time.Second

type HealthHandler struct {
	healthService services.HealthService
	version       string
	now           func() time.Time
}

func NewHealthHandler(healthService services.HealthService, version string, now func() time.Time) *HealthHandler {
	return &HealthHandler{
		healthService: healthService,
		version:       version,
		now:           now,
	}
}

func (h *HealthHandler) Root(c *fiber.Ctx) error {
	return c.JSON(dto.RootResponse{
		Message: "Task Tracker API v" + h.version,
		Version: h.version,
		Docs:    "/tasks",
		Status:  "active",
	})
}

// Health answers 503 when the database does not respond.
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), healthCheckTimeout)
	defer cancel()

	resp := dto.HealthResponse{
		Status:    "healthy",
		Database:  "connected",
		Timestamp: h.now().UTC(),
	}
	status := fiber.StatusOK

	if err := h.healthService.CheckDatabase(ctx); err != nil {
		logger.ErrorContext(ctx, "Health check failed", "error", err)
		resp.Status = "unhealthy"
		resp.Database = "disconnected"
		status = fiber.StatusServiceUnavailable
	}

	return c.Status(status).JSON(resp)
}
