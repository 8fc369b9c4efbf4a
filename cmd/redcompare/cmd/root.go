package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// Version information (set via ldflags at build time)
var (
	Version = "0.0.1-dev"
	Commit  = "unknown"
)

// CLI flags that override config file values
var (
	cfgFile         string
	logLevel        string
	logFormat       string
	intervalSeconds float64
	scanCount       int
	scanPattern     string
	scanDelimiter   string
)

var rootCmd = &cobra.Command{
	Use:   "redcompare",
	Short: "Redis/Valkey Keyspace Comparison Tool",
	Long: `A CLI tool for comparing two Redis or Valkey keyspaces during a live
migration: per-table key counts on both sides, refreshed continuously
until the keyspaces converge.

Features:
  - Cursor-based SCAN keyspace analysis (never KEYS *)
  - Table classification by key prefix with configurable delimiter
  - Live side-by-side diff with drift highlighting
  - Migration preflight checks (connectivity, engines, notifications)
  - Keyspace notification management for live replication tooling`,
	Version: Version,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Config file flag
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "redcompare.yaml",
		"Path to configuration file")

	// Logging overrides
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"Override log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "",
		"Override log format (json, text)")

	// Scan and refresh overrides
	rootCmd.PersistentFlags().Float64Var(&intervalSeconds, "interval", 0,
		"Override refresh interval in seconds between comparison cycles")
	rootCmd.PersistentFlags().IntVar(&scanCount, "scan-count", 0,
		"Override SCAN count hint (keys requested per cursor call)")
	rootCmd.PersistentFlags().StringVar(&scanPattern, "pattern", "",
		"Override scan pattern (glob restricting which keys are counted)")
	rootCmd.PersistentFlags().StringVar(&scanDelimiter, "delimiter", "",
		"Override table delimiter (prefix separator, default \":\")")
}

// GetConfigFile returns the config file path
func GetConfigFile() string {
	return cfgFile
}

// CLIOverrides contains flag values that override config file settings
type CLIOverrides struct {
	LogLevel        string
	LogFormat       string
	IntervalSeconds float64
	ScanCount       int
	Pattern         string
	Delimiter       string
}

// GetCLIOverrides returns the CLI flag override values
func GetCLIOverrides() CLIOverrides {
	return CLIOverrides{
		LogLevel:        logLevel,
		LogFormat:       logFormat,
		IntervalSeconds: intervalSeconds,
		ScanCount:       scanCount,
		Pattern:         scanPattern,
		Delimiter:       scanDelimiter,
	}
}
