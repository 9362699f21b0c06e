package cmd

import (
	"context"
	"fmt"
	"os"

	"mapsync/core/cms"
	"mapsync/core/config"
	"mapsync/core/logger"
	"mapsync/feature/maps"

	"github.com/spf13/cobra"
)

// dumpCmd prints the current destination state without mutating anything.
var dumpCmd = &cobra.Command{
	Use:   "dump-data",
	Short: "Print the current destination collection state as JSON",
	Long: `Fetch every item of the maps, tags and terrain collections and print
them as JSON to stdout. Performs only read calls.`,
	RunE: runDump,
}

func init() {
	RootCmd.AddCommand(dumpCmd)
}

func runDump(cmd *cobra.Command, args []string) error {
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

	// Dumping needs no source data or hash cache; the syncer only touches
	// them during Run.
	syncer := maps.NewSyncer(l, cms.NewClient(cfg.CMS), nil, nil, cfg.CMS.SiteID, false)

	return syncer.DumpData(ctx, os.Stdout)
}
