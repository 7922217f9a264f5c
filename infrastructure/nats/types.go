package nats

import (
	"time"

	"task-tracker-api/domain/dto"
)

const (
	DefaultSubjectPrefix = "tasks.events"
	StreamName           = "TASK_EVENTS"
)

// ═══════════════════════════════════════════════════════════════════════════════
// TaskEventMessage - API → subscribers
// ═══════════════════════════════════════════════════════════════════════════════
type TaskEventMessage struct {
	Type       string            `json:"type"`
	TaskID     uint              `json:"task_id"`
	Task       *dto.TaskResponse `json:"task,omitempty"`
	OccurredAt time.Time         `json:"occurred_at"`
}
