package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/LavishGent/wordbook/pkg/wordbook"
)

func newCacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and maintain the lookup cache",
	}
	cmd.AddCommand(
		newCacheStatsCommand(),
		newCacheClearCommand(),
		newCacheCleanupCommand(),
	)
	return cmd
}

func newCacheStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show cache tier statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			defer client.Close()

			stats := client.GetStatistics()
			memory := stats.Cache.Memory
			persistent := stats.Cache.Persistent

			fmt.Printf("Memory tier:     %d entries (%d active), max %d\n",
				memory.Total, memory.Active, memory.MaxSize)
			if persistent.Available {
				fmt.Printf("Persistent tier: %s, %d entries (%d active)\n",
					persistent.Backend, persistent.Total, persistent.Active)
			} else {
				fmt.Printf("Persistent tier: %s, %s\n",
					persistent.Backend, color.RedString("unavailable"))
			}
			return nil
		},
	}
}

func newCacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached entry from both tiers",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			defer client.Close()

			if err := client.ClearCache(cmd.Context()); err != nil {
				return err
			}
			color.Green("Cache cleared")
			return nil
		},
	}
}

func newCacheCleanupCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "cleanup",
		Short: "Evict expired entries from both tiers",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			defer client.Close()

			result, err := client.CleanupCache(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("Removed %d expired entries (%d memory, %d persistent)\n",
				result.TotalCleaned, result.MemoryCleaned, result.PersistentCleaned)
			return nil
		},
	}
}

// newClient builds a client from the resolved configuration.
func newClient() (*wordbook.Client, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return wordbook.NewFromConfig(cfg)
}
