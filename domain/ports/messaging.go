package ports

import (
	"context"
	"time"

	"task-tracker-api/domain/dto"
)

// ═══════════════════════════════════════════════════════════════════════════════
// Task Event Port - lifecycle notifications after a mutation commits
// ═══════════════════════════════════════════════════════════════════════════════

type TaskEventType string

const (
	TaskCreated TaskEventType = "created"
	TaskUpdated TaskEventType = "updated"
	TaskToggled TaskEventType = "toggled"
	TaskDeleted TaskEventType = "deleted"
)

// TaskEvent is a plain struct so the service does not depend on NATS.
// Task is nil for deletions.
type TaskEvent struct {
	Type       TaskEventType
	TaskID     uint
	Task       *dto.TaskResponse
	OccurredAt time.Time
}

type TaskEventPublisherPort interface {
	PublishTaskEvent(ctx context.Context, event *TaskEvent) error
}
