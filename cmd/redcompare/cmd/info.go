package cmd

import (
	"fmt"

	"github.com/dbsmedya/redcompare/internal/config"
	"github.com/dbsmedya/redcompare/internal/keyspace"
	"github.com/dbsmedya/redcompare/internal/logger"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show server engine and version for both keyspaces",
	Long: `Info reports the engine (redis or valkey), version, mode, and OS of
both configured servers. Useful for checking engine compatibility before
a migration.

Example:
  redcompare info --config redcompare.yaml`,
	RunE: runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	configFile := GetConfigFile()

	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	overrides := GetCLIOverrides()
	cfg.ApplyOverrides(overrides.LogLevel, overrides.LogFormat,
		overrides.IntervalSeconds, overrides.ScanCount,
		overrides.Pattern, overrides.Delimiter)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	log, err := logger.New(&cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer log.Sync()

	ctx := keyspace.SetupSignalHandler()

	manager := keyspace.NewManager(cfg)
	if err := manager.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to keyspaces: %w", err)
	}
	defer manager.Close()

	srcInfo, err := keyspace.GetServerInfo(ctx, manager.Source)
	if err != nil {
		return fmt.Errorf("failed to read source server info: %w", err)
	}

	dstInfo, err := keyspace.GetServerInfo(ctx, manager.Destination)
	if err != nil {
		return fmt.Errorf("failed to read destination server info: %w", err)
	}

	cmd.Printf("%-14s %s (%s)\n", cfg.Source.Label()+":", srcInfo.String(), cfg.Source.Addr())
	cmd.Printf("%-14s %s (%s)\n", cfg.Destination.Label()+":", dstInfo.String(), cfg.Destination.Addr())

	if srcInfo.Engine != dstInfo.Engine {
		cmd.Printf("\nNote: engines differ (%s -> %s); verify data-structure compatibility.\n",
			srcInfo.Engine, dstInfo.Engine)
	}

	return nil
}
