package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/dbsmedya/redcompare/internal/compare"
	"github.com/dbsmedya/redcompare/internal/config"
	"github.com/dbsmedya/redcompare/internal/keyspace"
	"github.com/dbsmedya/redcompare/internal/logger"
	"github.com/spf13/cobra"
)

var (
	compareNoClear bool
	compareOnce    bool
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Continuously compare source and destination keyspaces",
	Long: `Compare scans both keyspaces, groups keys into tables by prefix,
and renders a side-by-side per-table count diff. The display refreshes
every interval until interrupted with Ctrl+C.

Each cycle follows these steps:
  1. Scan both keyspaces concurrently with cursor-based SCAN
  2. Classify every key into a table by its prefix
  3. Diff the two snapshots (only-in-source, only-in-destination, drift)
  4. Redraw the console display

Example:
  redcompare compare --config redcompare.yaml --interval 5`,
	RunE: runCompare,
}

func init() {
	compareCmd.Flags().BoolVar(&compareNoClear, "no-clear", false,
		"Append each refresh instead of redrawing in place")
	compareCmd.Flags().BoolVar(&compareOnce, "once", false,
		"Run a single comparison cycle and exit")

	rootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, args []string) error {
	configFile := GetConfigFile()

	// Load configuration
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Apply CLI overrides
	overrides := GetCLIOverrides()
	cfg.ApplyOverrides(overrides.LogLevel, overrides.LogFormat,
		overrides.IntervalSeconds, overrides.ScanCount,
		overrides.Pattern, overrides.Delimiter)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// Initialize logger
	log, err := logger.New(&cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer log.Sync()

	log.Infow("Starting keyspace comparison",
		"source", cfg.Source.Addr(),
		"destination", cfg.Destination.Addr(),
		"interval_seconds", cfg.Compare.IntervalSeconds,
	)

	// Connect to both keyspaces
	manager := keyspace.NewManager(cfg)

	ctx := keyspace.SetupSignalHandlerWithCallback(func(sig os.Signal) {
		log.Warnf("Received %s - stopping at the next cycle boundary", sig)
	})

	if err := manager.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to keyspaces: %w", err)
	}
	defer manager.Close()

	if err := manager.Ping(ctx); err != nil {
		return fmt.Errorf("keyspace connection failed: %w", err)
	}

	source := compare.NewScanner(manager.Source, cfg.Source.Label(), cfg.Scan, log)
	destination := compare.NewScanner(manager.Destination, cfg.Destination.Label(), cfg.Scan, log)

	sink := compare.NewConsoleSink(os.Stdout,
		cfg.Source.Label(), cfg.Destination.Label(), !compareNoClear)

	if compareOnce {
		return runSingleCycle(ctx, source, destination, sink)
	}

	loop := compare.NewLoop(source, destination, sink,
		cfg.Compare.Interval(), cfg.Compare.MaxConsecutiveFailures, log)

	if err := loop.Run(ctx); err != nil {
		return fmt.Errorf("comparison loop failed: %w", err)
	}

	log.Infow("Comparison finished", "cycles", loop.Cycles())
	return nil
}

// runSingleCycle scans both sides once, renders the diff, and exits.
func runSingleCycle(ctx context.Context, source, destination *compare.Scanner, sink *compare.ConsoleSink) error {
	srcSnap, err := source.Scan(ctx)
	if err != nil {
		return fmt.Errorf("%s scan: %w", source.Name(), err)
	}

	dstSnap, err := destination.Scan(ctx)
	if err != nil {
		return fmt.Errorf("%s scan: %w", destination.Name(), err)
	}

	diff := compare.Diff(srcSnap, dstSnap)
	sink.Render(diff, srcSnap, dstSnap, srcSnap.TakenAt())

	if !diff.InSync() {
		return fmt.Errorf("keyspaces differ")
	}
	return nil
}
