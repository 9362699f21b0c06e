package cmd

import (
	"context"
	"fmt"

	"mapsync/core/cms"
	"mapsync/core/config"
	"mapsync/core/hashcache"
	"mapsync/core/logger"
	"mapsync/core/storage"
	"mapsync/feature/maps"

	"github.com/spf13/cobra"
)

var dryRunSync bool

// syncCmd runs one synchronization pass against the destination collections.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Synchronize the map pool into the destination collections",
	Long: `Synchronize the source-of-truth map list into the destination maps,
tags and terrain collections: create missing items, update changed ones,
publish them, and remove items that left the pool.

Examples:
  # Show what would change without touching the destination
  mapsync sync --dry-run

  # Full synchronization
  mapsync sync`,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().BoolVar(&dryRunSync, "dry-run", false, "Compute and print changes without performing any mutation")
	RootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	l.Info("Starting map pool synchronization")

	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to connect to storage: %w", err)
	}

	cache := hashcache.New(cfg.Cache, l)
	defer cache.Save()

	syncer := maps.NewSyncer(
		l,
		cms.NewClient(cfg.CMS),
		maps.NewStorageSource(client, cfg.Storage),
		cache,
		cfg.CMS.SiteID,
		dryRunSync,
	)

	return syncer.Run(ctx)
}
