package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"training-center/internal/config"
	"training-center/internal/database"
	_ "training-center/migrations"
)

func migrateCmd(loaded func() *config.Config) *cobra.Command {
	var dir string

	c := &cobra.Command{
		Use:       "migrate [up|down|status|reset]",
		Short:     "Apply or inspect database migrations",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"up", "down", "status", "reset"},
		RunE: func(cmd *cobra.Command, args []string) error {
			command := "up"
			if len(args) == 1 {
				command = args[0]
			}

			db, err := database.Connect(cmd.Context(), loaded().DB)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := database.Migrate(cmd.Context(), db.DB, dir, command); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "goose %s finished\n", command)
			return nil
		},
	}

	c.Flags().StringVarP(&dir, "dir", "d", "migrations", "Directory holding the migration sources")
	return c
}
