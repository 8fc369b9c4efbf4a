package cmd

import (
	"fmt"

	"github.com/dbsmedya/redcompare/internal/config"
	"github.com/dbsmedya/redcompare/internal/keyspace"
	"github.com/dbsmedya/redcompare/internal/logger"
	"github.com/spf13/cobra"
)

var (
	notificationsEnable bool
	notificationsFlags  string
)

var notificationsCmd = &cobra.Command{
	Use:   "notifications",
	Short: "Show or enable keyspace notifications on the source",
	Long: `Notifications reads the notify-keyspace-events setting on the source
server, or sets it with --enable. Live replication tooling subscribes to
key events to replicate writes that land during the bulk copy, so the
source must have notifications enabled before a live migration.

Some managed services lock this parameter server-side; in that case
enable it through the provider's parameter group instead.

Example:
  redcompare notifications --config redcompare.yaml --enable`,
	RunE: runNotifications,
}

func init() {
	notificationsCmd.Flags().BoolVar(&notificationsEnable, "enable", false,
		"Set notify-keyspace-events on the source")
	notificationsCmd.Flags().StringVar(&notificationsFlags, "flags", keyspace.DefaultNotificationFlags,
		"Notification flags to set with --enable")

	rootCmd.AddCommand(notificationsCmd)
}

func runNotifications(cmd *cobra.Command, args []string) error {
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
	if err := manager.ConnectSource(ctx); err != nil {
		return fmt.Errorf("failed to connect to source keyspace: %w", err)
	}
	defer manager.Close()

	if notificationsEnable {
		if err := keyspace.EnableNotifications(ctx, manager.Source, notificationsFlags); err != nil {
			return fmt.Errorf("failed to enable notifications: %w", err)
		}
		cmd.Printf("notify-keyspace-events set to %q on %s\n",
			notificationsFlags, cfg.Source.Label())
		return nil
	}

	flags, err := keyspace.NotificationConfig(ctx, manager.Source)
	if err != nil {
		return fmt.Errorf("failed to read notification config: %w", err)
	}

	if flags == "" {
		cmd.Printf("Keyspace notifications are disabled on %s\n", cfg.Source.Label())
		cmd.Printf("Enable with: redcompare notifications --enable\n")
		return nil
	}

	cmd.Printf("notify-keyspace-events = %q on %s\n", flags, cfg.Source.Label())
	return nil
}
