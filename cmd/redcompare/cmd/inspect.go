package cmd

import (
	"fmt"
	"time"

	"github.com/dbsmedya/redcompare/internal/compare"
	"github.com/dbsmedya/redcompare/internal/config"
	"github.com/dbsmedya/redcompare/internal/keyspace"
	"github.com/dbsmedya/redcompare/internal/logger"
	"github.com/spf13/cobra"
)

var (
	inspectSide    string
	inspectSamples int
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Analyze a single keyspace in detail",
	Long: `Inspect runs one scan pass over a single keyspace and reports
per-table key counts, per-type counts, and sampled keys with their
type and TTL.

Example:
  redcompare inspect --config redcompare.yaml --side source --samples 20`,
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().StringVar(&inspectSide, "side", "source",
		"Which keyspace to inspect (source or destination)")
	inspectCmd.Flags().IntVar(&inspectSamples, "samples", 10,
		"Number of keys to show with full type/TTL details")

	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
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
	client, keyspaceCfg, err := connectSide(ctx, manager, cfg, inspectSide)
	if err != nil {
		return err
	}
	defer manager.Close()

	scanner := compare.NewScanner(client, keyspaceCfg.Label(), cfg.Scan, log)

	report, err := scanner.Inspect(ctx, inspectSamples)
	if err != nil {
		return fmt.Errorf("inspect failed: %w", err)
	}

	printInspectReport(cmd, keyspaceCfg.Label(), report)
	return nil
}

func printInspectReport(cmd *cobra.Command, label string, report *compare.InspectReport) {
	cmd.Printf("\n=== Keyspace: %s ===\n", label)
	cmd.Printf("Total keys: %d\n", report.Snapshot.Total())
	cmd.Printf("Tables: %d\n\n", report.Snapshot.Len())

	cmd.Printf("--- Tables ---\n")
	for _, summary := range report.Snapshot.Tables() {
		cmd.Printf("  %-30s %d\n", summary.Table, summary.KeyCount)
	}

	cmd.Printf("\n--- Types ---\n")
	for _, kt := range compare.KeyTypes {
		if count := report.TypeCounts[kt]; count > 0 {
			cmd.Printf("  %-10s %d\n", kt.String(), count)
		}
	}
	if report.Unclassified > 0 {
		cmd.Printf("  %-10s %d (introspection failed)\n", "unknown", report.Unclassified)
	}

	if len(report.Samples) > 0 {
		cmd.Printf("\n--- Sampled keys ---\n")
		for _, sample := range report.Samples {
			cmd.Printf("  %-40s type=%-7s ttl=%s\n",
				sample.Key, sample.Type, formatTTL(sample.TTL))
		}
	}
}

// formatTTL renders a PTTL result for display. Redis reports -1ms for keys
// without an expiry.
func formatTTL(ttl time.Duration) string {
	if ttl < 0 {
		return "none"
	}
	return ttl.Round(time.Second).String()
}
