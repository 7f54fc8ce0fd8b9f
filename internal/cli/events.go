package cli

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"training-center/internal/config"
	"training-center/internal/events"
)

func eventsCmd(loaded func() *config.Config) *cobra.Command {
	var subject string

	c := &cobra.Command{
		Use:   "events",
		Short: "Print entity events published on NATS until interrupted",
		RunE: func(cmd *cobra.Command, _ []string) error {
			natsURL := loaded().NatsURL
			if natsURL == "" {
				return errors.New("NATS_URL is not set")
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			out := cmd.OutOrStdout()
			return events.Watch(ctx, natsURL, subject, func(_ context.Context, ev events.EntityEvent) {
				fmt.Fprintf(out, "%s %s id=%d event=%s\n", ev.OccurredAt.Format(time.RFC3339), ev.EventType, ev.EntityID, ev.ID)
			})
		},
	}

	c.Flags().StringVar(&subject, "subject", events.AllSubjects, "NATS subject to watch")
	return c
}
