package nats

import (
	"context"
	"encoding/json"
	"fmt"

	"task-tracker-api/domain/ports"
	"task-tracker-api/pkg/logger"
)

// Publisher sends task lifecycle events, through JetStream when the client has it.
type Publisher struct {
	client *Client
}

func NewPublisher(client *Client) *Publisher {
	return &Publisher{client: client}
}

func (p *Publisher) PublishTaskEvent(ctx context.Context, event *ports.TaskEvent) error {
	if event == nil {
		return fmt.Errorf("event cannot be nil")
	}

	data, err := json.Marshal(TaskEventMessage{
		Type:       string(event.Type),
		TaskID:     event.TaskID,
		Task:       event.Task,
		OccurredAt: event.OccurredAt,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal task event: %w", err)
	}

	subject := p.client.Subject(string(event.Type))

	if p.client.js != nil {
		ack, err := p.client.js.Publish(ctx, subject, data)
		if err != nil {
			return fmt.Errorf("failed to publish task event: %w", err)
		}
		logger.DebugContext(ctx, "Task event published to JetStream",
			"subject", subject,
			"task_id", event.TaskID,
			"sequence", ack.Sequence,
		)
		return nil
	}

	if err := p.client.conn.Publish(subject, data); err != nil {
		return fmt.Errorf("failed to publish task event: %w", err)
	}
	logger.DebugContext(ctx, "Task event published", "subject", subject, "task_id", event.TaskID)
	return nil
}

var _ ports.TaskEventPublisherPort = (*Publisher)(nil)
