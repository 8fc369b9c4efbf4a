package cmd

import (
	"fmt"

	"github.com/dbsmedya/redcompare/internal/config"
	"github.com/dbsmedya/redcompare/internal/keyspace"
	"github.com/dbsmedya/redcompare/internal/logger"
	"github.com/spf13/cobra"
)

var preflightCmd = &cobra.Command{
	Use:   "preflight",
	Short: "Run migration preflight checks",
	Long: `Preflight verifies both keyspaces are ready for a live migration.

Checks performed:
  - Connectivity (PING on both sides)
  - Engine and version readable on both sides
  - Keyspace notifications enabled on the source
  - Key-count baseline (warns if the destination is not empty)

Exits non-zero on the first failed check.

Example:
  redcompare preflight --config redcompare.yaml`,
	RunE: runPreflight,
}

func init() {
	rootCmd.AddCommand(preflightCmd)
}

func runPreflight(cmd *cobra.Command, args []string) error {
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

	checker, err := keyspace.NewPreflightChecker(manager, log)
	if err != nil {
		return fmt.Errorf("failed to create preflight checker: %w", err)
	}

	if err := checker.RunAllChecks(ctx); err != nil {
		return fmt.Errorf("preflight checks failed: %w", err)
	}

	cmd.Printf("All preflight checks passed\n")
	return nil
}
