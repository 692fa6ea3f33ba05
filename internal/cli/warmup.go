package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmfalke/trendline/internal/service"
	"github.com/dmfalke/trendline/internal/store"
)

// NewWarmupCommand creates the warmup command: run the warm-up queries once
// against the configured database and report timings. Useful for checking a
// freshly loaded database before deploying.
func NewWarmupCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "warmup",
		Short: "Run the cache warm-up queries once and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup(rootOpts)
			if err != nil {
				return err
			}

			st, err := store.Open(cfg.Database.Path)
			if err != nil {
				return fmt.Errorf("open store: %w", err)
			}
			defer st.Close()

			svc := service.NewSized(st, log, service.CacheSizing{
				SnapshotSize: cfg.Cache.UpcomingSize,
				SnapshotTTL:  cfg.Cache.UpcomingTTL(),
				ResultsSize:  cfg.Cache.ResultsSize,
			})
			if err := svc.WarmUp(cmd.Context()); err != nil {
				return err
			}

			for name, stats := range svc.CacheStats() {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %d entries\n", name, stats.CurrentSize)
			}
			return nil
		},
	}
}
