package nats

import (
	"context"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"task-tracker-api/pkg/logger"
)

// Client wraps a NATS connection and, when enabled, a JetStream context.
type Client struct {
	conn          *nats.Conn
	js            jetstream.JetStream
	subjectPrefix string
}

type ClientConfig struct {
	URL           string // nats://localhost:4222
	SubjectPrefix string // tasks.events
	JetStream     bool   // persist events in the TASK_EVENTS stream
}

func NewClient(cfg ClientConfig) (*Client, error) {
	nc, err := nats.Connect(cfg.URL,
		nats.Name("task-tracker-api"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			if err != nil {
				logger.Warn("NATS disconnected", "error", err)
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("NATS reconnected", "url", nc.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	prefix := cfg.SubjectPrefix
	if prefix == "" {
		prefix = DefaultSubjectPrefix
	}
	client := &Client{conn: nc, subjectPrefix: prefix}

	if cfg.JetStream {
		js, err := jetstream.New(nc)
		if err != nil {
			nc.Close()
			return nil, fmt.Errorf("failed to create JetStream context: %w", err)
		}
		client.js = js

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.setupStream(ctx); err != nil {
			nc.Close()
			return nil, fmt.Errorf("failed to setup stream: %w", err)
		}
	}

	logger.Info("NATS client initialized", "url", cfg.URL, "prefix", prefix, "jetstream", cfg.JetStream)
	return client, nil
}

func (c *Client) setupStream(ctx context.Context) error {
	_, err := c.js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:        StreamName,
		Subjects:    []string{c.subjectPrefix + ".>"},
		Storage:     jetstream.FileStorage,
		Retention:   jetstream.LimitsPolicy,
		MaxAge:      7 * 24 * time.Hour,
		Replicas:    1,
		Description: "Task lifecycle events",
	})
	if err != nil {
		return fmt.Errorf("failed to create/update task event stream: %w", err)
	}
	logger.Info("JetStream stream ready", "name", StreamName)
	return nil
}

func (c *Client) Conn() *nats.Conn {
	return c.conn
}

// Subject returns the full subject for an event type, e.g. tasks.events.created.
func (c *Client) Subject(eventType string) string {
	return c.subjectPrefix + "." + eventType
}

// Close drains pending messages before closing the connection.
func (c *Client) Close() error {
	if c.conn == nil || c.conn.IsClosed() {
		return nil
	}
	return c.conn.Drain()
}
