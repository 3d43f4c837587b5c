package main

import (
	"context"
	"encoding/json"

	"github.com/spf13/cobra"

	"evenza/internal/application"
)

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print the admin statistics as JSON",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			st, err := openStores(ctx, cfg, false)
			if err != nil {
				return err
			}
			defer st.close()

			stats, err := application.NewAdminService(st.events, st.reservations).Stats(ctx)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(stats)
		},
	}
}
