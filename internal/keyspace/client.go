// Package keyspace provides Redis/Valkey connection management for redcompare.
package keyspace

import (
	"context"
	"crypto/tls"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dbsmedya/redcompare/internal/config"
)

// Manager handles client connections for the source and destination keyspaces.
type Manager struct {
	Source      *redis.Client
	Destination *redis.Client
	config      *config.Config
}

// NewManager creates a new keyspace manager from configuration.
func NewManager(cfg *config.Config) *Manager {
	return &Manager{
		config: cfg,
	}
}

// Connect establishes connections to both keyspaces.
func (m *Manager) Connect(ctx context.Context) error {
	var err error

	m.Source, err = m.connectWithRetry(ctx, &m.config.Source)
	if err != nil {
		return fmt.Errorf("failed to connect to source keyspace: %w", err)
	}

	m.Destination, err = m.connectWithRetry(ctx, &m.config.Destination)
	if err != nil {
		m.Source.Close()
		return fmt.Errorf("failed to connect to destination keyspace: %w", err)
	}

	return nil
}

// ConnectSource establishes a connection to the source keyspace only.
func (m *Manager) ConnectSource(ctx context.Context) error {
	var err error

	m.Source, err = m.connectWithRetry(ctx, &m.config.Source)
	if err != nil {
		return fmt.Errorf("failed to connect to source keyspace: %w", err)
	}

	return nil
}

// ConnectDestination establishes a connection to the destination keyspace only.
func (m *Manager) ConnectDestination(ctx context.Context) error {
	var err error

	m.Destination, err = m.connectWithRetry(ctx, &m.config.Destination)
	if err != nil {
		return fmt.Errorf("failed to connect to destination keyspace: %w", err)
	}

	return nil
}

// connectWithRetry attempts to connect with exponential backoff.
func (m *Manager) connectWithRetry(ctx context.Context, cfg *config.KeyspaceConfig) (*redis.Client, error) {
	var err error

	maxRetries := 3
	backoff := time.Second

	for i := 0; i < maxRetries; i++ {
		client := redis.NewClient(BuildOptions(cfg))

		if pingErr := client.Ping(ctx).Err(); pingErr == nil {
			return client, nil
		} else {
			client.Close()
			err = pingErr
		}

		if i < maxRetries-1 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
				backoff *= 2 // Exponential backoff
			}
		}
	}

	return nil, fmt.Errorf("failed after %d retries: %w", maxRetries, err)
}

// BuildOptions constructs go-redis client options from configuration.
func BuildOptions(cfg *config.KeyspaceConfig) *redis.Options {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	opts := &redis.Options{
		Addr:         cfg.Addr(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  timeout,
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
	}

	if cfg.TLS {
		// Managed services (ElastiCache, Redis Cloud) terminate TLS with
		// certificates that rarely match the configured endpoint name.
		opts.TLSConfig = &tls.Config{
			InsecureSkipVerify: true, //nolint:gosec
		}
	}

	return opts
}

// Close closes all client connections gracefully.
func (m *Manager) Close() error {
	var errs []error

	if m.Destination != nil {
		if err := m.Destination.Close(); err != nil {
			errs = append(errs, fmt.Errorf("destination close: %w", err))
		}
	}

	if m.Source != nil {
		if err := m.Source.Close(); err != nil {
			errs = append(errs, fmt.Errorf("source close: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors closing connections: %v", errs)
	}
	return nil
}

// Ping verifies all connections are alive.
func (m *Manager) Ping(ctx context.Context) error {
	if m.Source != nil {
		if err := m.Source.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("source ping failed: %w", err)
		}
	}

	if m.Destination != nil {
		if err := m.Destination.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("destination ping failed: %w", err)
		}
	}

	return nil
}
