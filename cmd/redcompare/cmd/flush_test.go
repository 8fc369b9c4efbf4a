package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlushCommandStructure(t *testing.T) {
	assert.NotNil(t, flushCmd)
	assert.Equal(t, "flush", flushCmd.Use)
	assert.NotEmpty(t, flushCmd.Short)
	assert.NotEmpty(t, flushCmd.Long)
	assert.NotNil(t, flushCmd.RunE)
}

func TestFlushCommandFlags(t *testing.T) {
	flags := flushCmd.Flags()

	sideFlag := flags.Lookup("side")
	assert.NotNil(t, sideFlag)
	assert.Equal(t, "destination", sideFlag.DefValue, "flush should target the destination by default")

	allFlag := flags.Lookup("all")
	assert.NotNil(t, allFlag)
	assert.Equal(t, "false", allFlag.DefValue)

	yesFlag := flags.Lookup("yes")
	assert.NotNil(t, yesFlag)
	assert.Equal(t, "false", yesFlag.DefValue)
}

func TestFlushIsAddedToRoot(t *testing.T) {
	found := false
	for _, cmd := range rootCmd.Commands() {
		if cmd.Name() == "flush" {
			found = true
			break
		}
	}
	assert.True(t, found, "flush command should be added to root command")
}

func TestFlushCommandWarnsDestructive(t *testing.T) {
	// The long help must make the destructive nature explicit
	assert.Contains(t, flushCmd.Long, "destructive")
	assert.Contains(t, flushCmd.Long, "cannot be undone")
}

func TestFlushCmd_Execute_InvalidSide(t *testing.T) {
	origCfgFile := cfgFile
	origSide := flushSide
	defer func() {
		cfgFile = origCfgFile
		flushSide = origSide
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

	rootCmd.SetArgs([]string{"flush", "--side", "bogus", "--config", configFile})
	err := rootCmd.Execute()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid side")
}

func TestFlushCmd_Execute_MissingConfig(t *testing.T) {
	origCfgFile := cfgFile
	defer func() {
		cfgFile = origCfgFile
		rootCmd.SetArgs(nil)
	}()

	rootCmd.SetArgs([]string{"flush", "--config", "/tmp/nonexistent_redcompare_config.yaml"})
	err := rootCmd.Execute()
	assert.Error(t, err)
}
