package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}

// Validate checks the configuration for required fields and valid values.
func (c *Config) Validate() error {
	var errors ValidationErrors

	// Validate source keyspace
	if err := c.validateKeyspace("source", &c.Source); err != nil {
		errors = append(errors, err...)
	}

	// Validate destination keyspace
	if err := c.validateKeyspace("destination", &c.Destination); err != nil {
		errors = append(errors, err...)
	}

	// Validate scan settings
	if err := c.validateScan(); err != nil {
		errors = append(errors, err...)
	}

	// Validate compare settings
	if err := c.validateCompare(); err != nil {
		errors = append(errors, err...)
	}

	// Validate logging settings
	if err := c.validateLogging(); err != nil {
		errors = append(errors, err...)
	}

	if len(errors) > 0 {
		return errors
	}
	return nil
}

func (c *Config) validateKeyspace(prefix string, ks *KeyspaceConfig) ValidationErrors {
	var errors ValidationErrors

	if ks.Host == "" {
		errors = append(errors, ValidationError{
			Field:   prefix + ".host",
			Message: "host is required",
		})
	}

	if ks.Port <= 0 || ks.Port > 65535 {
		errors = append(errors, ValidationError{
			Field:   prefix + ".port",
			Message: "port must be between 1 and 65535",
		})
	}

	if ks.DB < 0 || ks.DB > 15 {
		errors = append(errors, ValidationError{
			Field:   prefix + ".db",
			Message: "db must be between 0 and 15",
		})
	}

	if ks.TimeoutSeconds < 0 {
		errors = append(errors, ValidationError{
			Field:   prefix + ".timeout_seconds",
			Message: "timeout_seconds cannot be negative",
		})
	}

	return errors
}

func (c *Config) validateScan() ValidationErrors {
	var errors ValidationErrors

	if c.Scan.Count <= 0 {
		errors = append(errors, ValidationError{
			Field:   "scan.count",
			Message: "count must be positive",
		})
	}

	if c.Scan.Delimiter == "" {
		errors = append(errors, ValidationError{
			Field:   "scan.delimiter",
			Message: "delimiter is required",
		})
	}

	if c.Scan.MaxRetries <= 0 {
		errors = append(errors, ValidationError{
			Field:   "scan.max_retries",
			Message: "max_retries must be positive",
		})
	}

	if c.Scan.RetryBackoffMS < 0 {
		errors = append(errors, ValidationError{
			Field:   "scan.retry_backoff_ms",
			Message: "retry_backoff_ms cannot be negative",
		})
	}

	return errors
}

func (c *Config) validateCompare() ValidationErrors {
	var errors ValidationErrors

	if c.Compare.IntervalSeconds <= 0 {
		errors = append(errors, ValidationError{
			Field:   "compare.interval_seconds",
			Message: "interval_seconds must be positive",
		})
	}

	if c.Compare.MaxConsecutiveFailures <= 0 {
		errors = append(errors, ValidationError{
			Field:   "compare.max_consecutive_failures",
			Message: "max_consecutive_failures must be positive",
		})
	}

	return errors
}

func (c *Config) validateLogging() ValidationErrors {
	var errors ValidationErrors

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true, "": true}
	if !validLevels[c.Logging.Level] {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Message: "level must be 'debug', 'info', 'warn', or 'error'",
		})
	}

	validFormats := map[string]bool{"json": true, "text": true, "": true}
	if !validFormats[c.Logging.Format] {
		errors = append(errors, ValidationError{
			Field:   "logging.format",
			Message: "format must be 'json' or 'text'",
		})
	}

	return errors
}
