package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dbsmedya/redcompare/internal/config"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected string // String representation of zapcore.Level
	}{
		{"debug", "debug"},
		{"info", "info"},
		{"", "info"}, // empty defaults to info
		{"warn", "warn"},
		{"error", "error"},
		{"unknown", "info"}, // unknown defaults to info
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			level := parseLevel(tt.input)
			if level.String() != tt.expected {
				t.Errorf("parseLevel(%q) = %v, expected %v", tt.input, level.String(), tt.expected)
			}
		})
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name string
		cfg  *config.LoggingConfig
	}{
		{
			name: "json format info level",
			cfg: &config.LoggingConfig{
				Level:  "info",
				Format: "json",
				Output: "stderr",
			},
		},
		{
			name: "text format debug level",
			cfg: &config.LoggingConfig{
				Level:  "debug",
				Format: "text",
				Output: "stdout",
			},
		},
		{
			name: "file output",
			cfg: &config.LoggingConfig{
				Level:  "warn",
				Format: "json",
				Output: filepath.Join(os.TempDir(), "redcompare-test-log.json"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, err := New(tt.cfg)
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			if log == nil {
				t.Fatal("expected non-nil logger")
			}
		})
	}
}

func TestNewDefault(t *testing.T) {
	log := NewDefault()
	if log == nil {
		t.Fatal("expected non-nil default logger")
	}
}

func TestWithKeyspace(t *testing.T) {
	log := NewDefault()
	child := log.WithKeyspace("source")
	if child == nil {
		t.Fatal("expected non-nil child logger")
	}
	// Parent is untouched
	if child == log {
		t.Fatal("expected a new logger instance")
	}
}

func TestWithCycle(t *testing.T) {
	log := NewDefault()
	if log.WithCycle(7) == nil {
		t.Fatal("expected non-nil child logger")
	}
}

func TestWithFields(t *testing.T) {
	log := NewDefault()
	child := log.WithFields(map[string]interface{}{"side": "destination", "cursor": 42})
	if child == nil {
		t.Fatal("expected non-nil child logger")
	}
}
