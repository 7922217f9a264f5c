package messaging

import (
	"context"
	"log/slog"

	"task-tracker-api/domain/ports"
	"task-tracker-api/pkg/logger"
)

// NoopEventPublisher drops task events. Used when NATS_URL is empty.
type NoopEventPublisher struct {
	logger *slog.Logger
}

func NewNoopEventPublisher() *NoopEventPublisher {
	return &NoopEventPublisher{
		logger: logger.GetLogger().With("component", "noop_event_publisher"),
	}
}

func (p *NoopEventPublisher) PublishTaskEvent(ctx context.Context, event *ports.TaskEvent) error {
	if event == nil {
		return nil
	}
	p.logger.DebugContext(ctx, "Task event (noop)",
		"type", event.Type,
		"task_id", event.TaskID,
	)
	return nil
}

var _ ports.TaskEventPublisherPort = (*NoopEventPublisher)(nil)
