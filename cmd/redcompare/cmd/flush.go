package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/dbsmedya/redcompare/internal/config"
	"github.com/dbsmedya/redcompare/internal/keyspace"
	"github.com/dbsmedya/redcompare/internal/logger"
	"github.com/spf13/cobra"
)

var (
	flushSide string
	flushAll  bool
	flushYes  bool
)

var flushCmd = &cobra.Command{
	Use:   "flush",
	Short: "Delete all keys from a keyspace",
	Long: `Flush deletes every key from the selected logical database (or the
entire server with --all). Typically used to reset the destination
before re-running a migration.

This is destructive and cannot be undone. The command asks you to type
the keyspace name to confirm unless --yes is given.

Example:
  redcompare flush --config redcompare.yaml --side destination`,
	RunE: runFlush,
}

func init() {
	flushCmd.Flags().StringVar(&flushSide, "side", "destination",
		"Which keyspace to flush (source or destination)")
	flushCmd.Flags().BoolVar(&flushAll, "all", false,
		"FLUSHALL: delete keys from every logical database, not just the configured one")
	flushCmd.Flags().BoolVar(&flushYes, "yes", false,
		"Skip the interactive confirmation prompt")

	rootCmd.AddCommand(flushCmd)
}

func runFlush(cmd *cobra.Command, args []string) error {
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
	client, keyspaceCfg, err := connectSide(ctx, manager, cfg, flushSide)
	if err != nil {
		return err
	}
	defer manager.Close()

	label := keyspaceCfg.Label()

	if !flushYes {
		if err := confirmFlush(cmd, label, keyspaceCfg.Addr(), flushAll); err != nil {
			return err
		}
	}

	log.Warnw("Flushing keyspace",
		"keyspace", label,
		"addr", keyspaceCfg.Addr(),
		"all", flushAll,
	)

	result, err := keyspace.Flush(ctx, client, flushAll)
	if err != nil {
		return fmt.Errorf("flush failed: %w", err)
	}

	cmd.Printf("\n=== Flush Complete ===\n")
	cmd.Printf("Keyspace: %s\n", label)
	cmd.Printf("Keys before: %d\n", result.KeysBefore)
	cmd.Printf("Keys after: %d\n", result.KeysAfter)

	return nil
}

// confirmFlush makes the operator type the keyspace name before a flush.
func confirmFlush(cmd *cobra.Command, label, addr string, all bool) error {
	scope := "the configured database"
	if all {
		scope = "ALL databases"
	}
	cmd.Printf("About to delete %s on %q (%s).\n", scope, label, addr)
	cmd.Printf("Type the keyspace name to confirm: ")

	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("failed to read confirmation: %w", err)
	}

	if strings.TrimSpace(line) != label {
		return fmt.Errorf("confirmation did not match %q, aborting", label)
	}
	return nil
}
