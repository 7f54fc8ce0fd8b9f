package cli

import (
	"os"

	"github.com/spf13/cobra"

	"training-center/internal/api"
	"training-center/internal/config"
)

func Execute() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfg *config.Config

	cmd := &cobra.Command{
		Use:          "training-center",
		Short:        "Training center API: trainers, students, courses and classrooms",
		SilenceUsage: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			cfg = config.Load()
			api.SetupGlobalHandler(cfg.ServiceName, cfg.LogLevel)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServer(cmd.Context(), cfg)
		},
	}

	loaded := func() *config.Config { return cfg }
	cmd.AddCommand(serveCmd(loaded))
	cmd.AddCommand(migrateCmd(loaded))
	cmd.AddCommand(tokenCmd(loaded))
	cmd.AddCommand(eventsCmd(loaded))
	return cmd
}
