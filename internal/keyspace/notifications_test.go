package keyspace

import (
	"context"
	"testing"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationConfig(t *testing.T) {
	client, mock := redismock.NewClientMock()
	mock.ExpectConfigGet(notifyParam).SetVal(map[string]string{notifyParam: "KEA"})

	flags, err := NotificationConfig(context.Background(), client)

	require.NoError(t, err)
	assert.Equal(t, "KEA", flags)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationConfig_Disabled(t *testing.T) {
	client, mock := redismock.NewClientMock()
	mock.ExpectConfigGet(notifyParam).SetVal(map[string]string{notifyParam: ""})

	flags, err := NotificationConfig(context.Background(), client)

	require.NoError(t, err)
	assert.Empty(t, flags)
}

func TestEnableNotifications(t *testing.T) {
	client, mock := redismock.NewClientMock()
	mock.ExpectConfigSet(notifyParam, "KEA").SetVal("OK")
	mock.ExpectConfigGet(notifyParam).SetVal(map[string]string{notifyParam: "KEA"})

	err := EnableNotifications(context.Background(), client, "")

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnableNotifications_CustomFlags(t *testing.T) {
	client, mock := redismock.NewClientMock()
	mock.ExpectConfigSet(notifyParam, "Kxe").SetVal("OK")
	mock.ExpectConfigGet(notifyParam).SetVal(map[string]string{notifyParam: "Kxe"})

	err := EnableNotifications(context.Background(), client, "Kxe")

	require.NoError(t, err)
}

func TestEnableNotifications_SetRejected(t *testing.T) {
	client, mock := redismock.NewClientMock()
	mock.ExpectConfigSet(notifyParam, "KEA").SetErr(assert.AnError)

	err := EnableNotifications(context.Background(), client, "KEA")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to set")
}

func TestEnableNotifications_SilentlyIgnored(t *testing.T) {
	// ElastiCache with a locked parameter group accepts the write
	// but the setting stays empty.
	client, mock := redismock.NewClientMock()
	mock.ExpectConfigSet(notifyParam, "KEA").SetVal("OK")
	mock.ExpectConfigGet(notifyParam).SetVal(map[string]string{notifyParam: ""})

	err := EnableNotifications(context.Background(), client, "KEA")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "was not applied")
}
