package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"training-center/internal/config"
	"training-center/internal/jwt"
)

func tokenCmd(loaded func() *config.Config) *cobra.Command {
	var subject string
	var ttl time.Duration

	c := &cobra.Command{
		Use:   "token",
		Short: "Issue a bearer token for the write endpoints",
		RunE: func(cmd *cobra.Command, _ []string) error {
			secret := loaded().JWTSecret
			if secret == "" {
				return errors.New("JWT_SECRET is not set; write endpoints are unauthenticated")
			}

			token, err := jwt.GenerateToken([]byte(secret), subject, ttl)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	c.Flags().StringVarP(&subject, "subject", "s", "admin", "Token subject")
	c.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "Token lifetime")
	return c
}
