package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/nats-io/nats.go"
)

// AllSubjects matches every event this service publishes.
const AllSubjects = subjectPrefix + ".>"

type Handler func(ctx context.Context, event EntityEvent)

// Watch subscribes to subject and hands each decoded event to handle until
// ctx is cancelled. Undecodable messages are logged and skipped.
func Watch(ctx context.Context, natsURL, subject string, handle Handler) error {
	nc, err := nats.Connect(natsURL, nats.Name("training-center-watch"))
	if err != nil {
		return fmt.Errorf("connect to nats: %w", err)
	}
	defer nc.Close()

	sub, err := nc.Subscribe(subject, func(msg *nats.Msg) {
		dispatch(ctx, msg, handle)
	})
	if err != nil {
		return fmt.Errorf("subscribe to %s: %w", subject, err)
	}
	defer func() { _ = sub.Unsubscribe() }()

	slog.InfoContext(ctx, "Watching events", "subject", subject)
	<-ctx.Done()
	return nil
}

func dispatch(ctx context.Context, msg *nats.Msg, handle Handler) {
	var event EntityEvent
	if err := json.Unmarshal(msg.Data, &event); err != nil {
		slog.WarnContext(ctx, "Error unmarshalling event", "subject", msg.Subject, "error", err)
		return
	}
	handle(ctx, event)
}
