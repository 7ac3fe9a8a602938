package cli

import (
	"github.com/spf13/cobra"

	"github.com/unleaded-cli/unleaded/internal/config"
	"github.com/unleaded-cli/unleaded/internal/engine/cache"
)

// newCacheCmd creates the cache maintenance command group.
func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and clear the local listings cache",
	}
	cmd.AddCommand(newCacheClearCmd(), newCacheStatsCmd())
	return cmd
}

func newCacheClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached listings snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}
			if err := store.Clear(); err != nil {
				return err
			}
			cmd.Println("Cache cleared.")
			return nil
		},
	}
}

func newCacheStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show cache location and entry count",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}
			count, err := store.Count()
			if err != nil {
				return err
			}
			cmd.Printf("Directory: %s\n", store.Directory())
			cmd.Printf("Entries:   %d\n", count)
			return nil
		},
	}
}

func openStore() (*cache.Store, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return cache.NewStore(cfg.CacheDir)
}
