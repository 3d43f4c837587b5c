package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"evenza/internal/adapters/httpapi"
	"evenza/internal/domain/entities"
)

// newTokenCmd signs an access token with JWT_SECRET for local testing.
func newTokenCmd() *cobra.Command {
	var (
		user entities.User
		role string
		ttl  time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Sign a development access token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			user.Role = entities.Role(role)
			if user.Role != entities.RoleAdmin && user.Role != entities.RoleParticipant {
				return fmt.Errorf("--role must be %s or %s", entities.RoleAdmin, entities.RoleParticipant)
			}
			tok, err := httpapi.IssueToken(cfg.JWTSecret, user, ttl)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), tok)
			return err
		},
	}
	cmd.Flags().StringVar(&user.ID, "sub", "", "user id")
	cmd.Flags().StringVar(&user.Email, "email", "", "user email")
	cmd.Flags().StringVar(&role, "role", string(entities.RoleParticipant), "ADMIN or PARTICIPANT")
	cmd.Flags().DurationVar(&ttl, "ttl", time.Hour, "token lifetime")
	_ = cmd.MarkFlagRequired("sub")
	return cmd
}
