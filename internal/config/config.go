// Package config provides configuration structures and loading for redcompare.
package config

import (
	"fmt"
	"time"
)

// Config represents the complete application configuration.
type Config struct {
	Source      KeyspaceConfig `yaml:"source" mapstructure:"source"`
	Destination KeyspaceConfig `yaml:"destination" mapstructure:"destination"`
	Scan        ScanConfig     `yaml:"scan" mapstructure:"scan"`
	Compare     CompareConfig  `yaml:"compare" mapstructure:"compare"`
	Logging     LoggingConfig  `yaml:"logging" mapstructure:"logging"`
}

// KeyspaceConfig represents a Redis/Valkey connection configuration.
type KeyspaceConfig struct {
	Name           string `yaml:"name" mapstructure:"name"`
	Host           string `yaml:"host" mapstructure:"host"`
	Port           int    `yaml:"port" mapstructure:"port"`
	Password       string `yaml:"password" mapstructure:"password"`
	TLS            bool   `yaml:"tls" mapstructure:"tls"`
	DB             int    `yaml:"db" mapstructure:"db"`
	TimeoutSeconds int    `yaml:"timeout_seconds" mapstructure:"timeout_seconds"`
}

// ScanConfig represents keyspace scan settings.
type ScanConfig struct {
	Count          int    `yaml:"count" mapstructure:"count"`                       // SCAN COUNT hint per cursor call
	Pattern        string `yaml:"pattern" mapstructure:"pattern"`                   // optional glob restricting the scan
	Delimiter      string `yaml:"delimiter" mapstructure:"delimiter"`               // table prefix delimiter
	MaxRetries     int    `yaml:"max_retries" mapstructure:"max_retries"`           // attempts per scan call
	RetryBackoffMS int    `yaml:"retry_backoff_ms" mapstructure:"retry_backoff_ms"` // initial backoff, doubles per retry
}

// CompareConfig represents the live comparison loop settings.
type CompareConfig struct {
	IntervalSeconds        float64 `yaml:"interval_seconds" mapstructure:"interval_seconds"`
	MaxConsecutiveFailures int     `yaml:"max_consecutive_failures" mapstructure:"max_consecutive_failures"`
}

// LoggingConfig represents logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`   // debug, info, warn, error
	Format string `yaml:"format" mapstructure:"format"` // json or text
	Output string `yaml:"output" mapstructure:"output"` // stdout, stderr, or file path
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	return &Config{
		Source: KeyspaceConfig{
			Name:           "source",
			Port:           6379,
			TimeoutSeconds: 10,
		},
		Destination: KeyspaceConfig{
			Name:           "destination",
			Port:           6379,
			TimeoutSeconds: 10,
		},
		Scan: ScanConfig{
			Count:          1000,
			Delimiter:      ":",
			MaxRetries:     3,
			RetryBackoffMS: 100,
		},
		Compare: CompareConfig{
			IntervalSeconds:        5,
			MaxConsecutiveFailures: 3,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
	}
}

// Interval returns the refresh interval as a duration.
func (c *CompareConfig) Interval() time.Duration {
	return time.Duration(c.IntervalSeconds * float64(time.Second))
}

// Label returns the display name for a keyspace, falling back to host:port.
func (k *KeyspaceConfig) Label() string {
	if k.Name != "" {
		return k.Name
	}
	return k.Addr()
}

// Addr returns the host:port address for the keyspace.
func (k *KeyspaceConfig) Addr() string {
	return fmt.Sprintf("%s:%d", k.Host, k.Port)
}
