package cmd

import (
	"testing"

	"github.com/dbsmedya/redcompare/internal/keyspace"
	"github.com/stretchr/testify/assert"
)

func TestNotificationsCommandStructure(t *testing.T) {
	assert.NotNil(t, notificationsCmd)
	assert.Equal(t, "notifications", notificationsCmd.Use)
	assert.NotEmpty(t, notificationsCmd.Short)
	assert.NotEmpty(t, notificationsCmd.Long)
	assert.NotNil(t, notificationsCmd.RunE)
}

func TestNotificationsCommandFlags(t *testing.T) {
	flags := notificationsCmd.Flags()

	enableFlag := flags.Lookup("enable")
	assert.NotNil(t, enableFlag)
	assert.Equal(t, "false", enableFlag.DefValue)

	flagsFlag := flags.Lookup("flags")
	assert.NotNil(t, flagsFlag)
	assert.Equal(t, keyspace.DefaultNotificationFlags, flagsFlag.DefValue)
}

func TestNotificationsIsAddedToRoot(t *testing.T) {
	found := false
	for _, cmd := range rootCmd.Commands() {
		if cmd.Name() == "notifications" {
			found = true
			break
		}
	}
	assert.True(t, found, "notifications command should be added to root command")
}

func TestNotificationsCmd_Execute_MissingConfig(t *testing.T) {
	origCfgFile := cfgFile
	defer func() {
		cfgFile = origCfgFile
		rootCmd.SetArgs(nil)
	}()

	rootCmd.SetArgs([]string{"notifications", "--config", "/tmp/nonexistent_redcompare_config.yaml"})
	err := rootCmd.Execute()
	assert.Error(t, err)
}
