package keyspace

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// notifyParam is the server config key controlling keyspace notifications.
const notifyParam = "notify-keyspace-events"

// DefaultNotificationFlags enables keyspace and keyevent notifications for
// all event classes, the setting live-migration tooling (RIOT-X) requires.
const DefaultNotificationFlags = "KEA"

// NotificationConfig returns the current notify-keyspace-events setting.
// An empty string means notifications are disabled.
func NotificationConfig(ctx context.Context, client *redis.Client) (string, error) {
	values, err := client.ConfigGet(ctx, notifyParam).Result()
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", notifyParam, err)
	}

	return values[notifyParam], nil
}

// EnableNotifications sets notify-keyspace-events and verifies the write by
// reading the setting back. Some managed services (ElastiCache with a locked
// parameter group) accept the CONFIG SET but silently ignore it.
func EnableNotifications(ctx context.Context, client *redis.Client, flags string) error {
	if flags == "" {
		flags = DefaultNotificationFlags
	}

	if err := client.ConfigSet(ctx, notifyParam, flags).Err(); err != nil {
		return fmt.Errorf("failed to set %s: %w", notifyParam, err)
	}

	applied, err := NotificationConfig(ctx, client)
	if err != nil {
		return fmt.Errorf("failed to verify %s: %w", notifyParam, err)
	}

	if applied == "" {
		return fmt.Errorf("%s was not applied (server may use a locked parameter group)", notifyParam)
	}

	return nil
}
