package cmd

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/dbsmedya/redcompare/internal/config"
	"github.com/dbsmedya/redcompare/internal/keyspace"
)

// connectSide connects the named side only and returns its client and config.
func connectSide(ctx context.Context, manager *keyspace.Manager, cfg *config.Config, side string) (*redis.Client, *config.KeyspaceConfig, error) {
	switch side {
	case "source":
		if err := manager.ConnectSource(ctx); err != nil {
			return nil, nil, err
		}
		return manager.Source, &cfg.Source, nil
	case "destination":
		if err := manager.ConnectDestination(ctx); err != nil {
			return nil, nil, err
		}
		return manager.Destination, &cfg.Destination, nil
	default:
		return nil, nil, fmt.Errorf("invalid side %q (must be source or destination)", side)
	}
}
