// Package events publishes entity lifecycle events to NATS.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
)

type Action string

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
	ActionDeleted Action = "deleted"
)

const subjectPrefix = "training"

type EntityEvent struct {
	ID         uuid.UUID `json:"id"`
	EventType  string    `json:"eventType"`
	Entity     string    `json:"entity"`
	EntityID   int64     `json:"entityId"`
	OccurredAt time.Time `json:"occurredAt"`
}

func NewEntityEvent(entity string, action Action, entityID int64, at time.Time) EntityEvent {
	return EntityEvent{
		ID:         uuid.New(),
		EventType:  entity + "." + string(action),
		Entity:     entity,
		EntityID:   entityID,
		OccurredAt: at.UTC(),
	}
}

// Subject is the NATS subject the event is published on,
// e.g. training.trainer.created.
func (e EntityEvent) Subject() string {
	return subjectPrefix + "." + e.EventType
}

type EventPublisher interface {
	Publish(ctx context.Context, event EntityEvent) error
}

type conn interface {
	Publish(subject string, data []byte) error
}

type NatsPublisher struct {
	conn conn
}

func NewNatsPublisher(natsURL string) (*NatsPublisher, error) {
	nc, err := nats.Connect(natsURL, nats.Name("training-center"))
	if err != nil {
		return nil, err
	}

	return &NatsPublisher{conn: nc}, nil
}

func (p *NatsPublisher) Publish(ctx context.Context, event EntityEvent) error {
	eventJSON, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", event.EventType, err)
	}

	subject := event.Subject()
	if err := p.conn.Publish(subject, eventJSON); err != nil {
		return fmt.Errorf("publish to %s: %w", subject, err)
	}

	slog.DebugContext(ctx, "Published event to NATS", "subject", subject, "entity_id", event.EntityID)
	return nil
}

// Close drains pending messages and closes the connection.
func (p *NatsPublisher) Close() {
	if nc, ok := p.conn.(*nats.Conn); ok {
		if err := nc.Drain(); err != nil {
			nc.Close()
		}
	}
}

// NoopPublisher discards events. Used when NATS is not configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, EntityEvent) error { return nil }
