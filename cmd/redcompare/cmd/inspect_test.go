package cmd

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestInspectCommandStructure(t *testing.T) {
	assert.NotNil(t, inspectCmd)
	assert.Equal(t, "inspect", inspectCmd.Use)
	assert.NotEmpty(t, inspectCmd.Short)
	assert.NotEmpty(t, inspectCmd.Long)
	assert.NotNil(t, inspectCmd.RunE)
}

func TestInspectCommandFlags(t *testing.T) {
	flags := inspectCmd.Flags()

	sideFlag := flags.Lookup("side")
	assert.NotNil(t, sideFlag)
	assert.Equal(t, "source", sideFlag.DefValue)

	samplesFlag := flags.Lookup("samples")
	assert.NotNil(t, samplesFlag)
	assert.Equal(t, "10", samplesFlag.DefValue)
}

func TestInspectIsAddedToRoot(t *testing.T) {
	found := false
	for _, cmd := range rootCmd.Commands() {
		if cmd.Name() == "inspect" {
			found = true
			break
		}
	}
	assert.True(t, found, "inspect command should be added to root command")
}

func TestInspectCommandExample(t *testing.T) {
	assert.Contains(t, inspectCmd.Long, "Example:")
	assert.Contains(t, inspectCmd.Long, "redcompare inspect")
}

func TestInspectCmd_Execute_InvalidSide(t *testing.T) {
	origCfgFile := cfgFile
	origSide := inspectSide
	defer func() {
		cfgFile = origCfgFile
		inspectSide = origSide
		rootCmd.SetArgs(nil)
	}()

	configFile := createTempTestConfig(t, map[string]interface{}{
		"source": map[string]interface{}{
			"host": "src.example.com",
		},
		"destination": map[string]interface{}{
			"host": "dst.example.com",
		},
	})

	rootCmd.SetArgs([]string{"inspect", "--side", "bogus", "--config", configFile})
	err := rootCmd.Execute()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid side")
}

func TestInspectCmd_Execute_MissingConfig(t *testing.T) {
	origCfgFile := cfgFile
	defer func() {
		cfgFile = origCfgFile
		rootCmd.SetArgs(nil)
	}()

	rootCmd.SetArgs([]string{"inspect", "--config", "/tmp/nonexistent_redcompare_config.yaml"})
	err := rootCmd.Execute()
	assert.Error(t, err)
}

func TestFormatTTL(t *testing.T) {
	tests := []struct {
		name string
		ttl  time.Duration
		want string
	}{
		{
			name: "no expiry",
			ttl:  -1 * time.Millisecond,
			want: "none",
		},
		{
			name: "round seconds",
			ttl:  90 * time.Second,
			want: "1m30s",
		},
		{
			name: "sub-second rounds",
			ttl:  1499 * time.Millisecond,
			want: "1s",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatTTL(tt.ttl))
		})
	}
}
