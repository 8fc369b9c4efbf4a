package keyspace

import (
	"context"
	"fmt"

	"github.com/dbsmedya/redcompare/internal/logger"
)

// PreflightError represents a preflight check failure.
type PreflightError struct {
	Check   string
	Message string
	Details map[string]string
}

func (e *PreflightError) Error() string {
	if len(e.Details) > 0 {
		return fmt.Sprintf("%s: %s %v", e.Check, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Check, e.Message)
}

// PreflightChecker validates both keyspaces are ready for a live migration
// run: reachable endpoints, readable engine versions, and keyspace
// notifications enabled on the source (required by RIOT-X live replication).
type PreflightChecker struct {
	manager *Manager
	logger  *logger.Logger
}

// NewPreflightChecker creates a preflight checker over connected keyspaces.
func NewPreflightChecker(manager *Manager, log *logger.Logger) (*PreflightChecker, error) {
	if manager == nil {
		return nil, fmt.Errorf("keyspace manager is nil")
	}
	if log == nil {
		log = logger.NewDefault()
	}

	return &PreflightChecker{
		manager: manager,
		logger:  log,
	}, nil
}

// RunAllChecks runs every preflight check, stopping at the first failure.
func (p *PreflightChecker) RunAllChecks(ctx context.Context) error {
	p.logger.Info("Running migration preflight checks...")

	if err := p.CheckConnectivity(ctx); err != nil {
		return err
	}

	if err := p.CheckEngines(ctx); err != nil {
		return err
	}

	if err := p.CheckNotifications(ctx); err != nil {
		return err
	}

	if err := p.CheckKeyCounts(ctx); err != nil {
		return err
	}

	p.logger.Info("All preflight checks PASSED")
	return nil
}

// CheckConnectivity verifies both keyspaces respond to PING.
func (p *PreflightChecker) CheckConnectivity(ctx context.Context) error {
	p.logger.Debug("Checking keyspace connectivity...")

	if err := p.manager.Ping(ctx); err != nil {
		return &PreflightError{
			Check:   "CONNECTIVITY_CHECK",
			Message: fmt.Sprintf("keyspace unreachable: %v", err),
		}
	}

	p.logger.Debug("Connectivity check PASSED")
	return nil
}

// CheckEngines reads both server versions and logs them. A source engine
// newer than the destination engine is reported as a warning, not an error;
// data-structure compatibility is the operator's call.
func (p *PreflightChecker) CheckEngines(ctx context.Context) error {
	p.logger.Debug("Checking server engines...")

	src, err := GetServerInfo(ctx, p.manager.Source)
	if err != nil {
		return &PreflightError{
			Check:   "ENGINE_CHECK",
			Message: fmt.Sprintf("cannot read source server info: %v", err),
		}
	}

	dst, err := GetServerInfo(ctx, p.manager.Destination)
	if err != nil {
		return &PreflightError{
			Check:   "ENGINE_CHECK",
			Message: fmt.Sprintf("cannot read destination server info: %v", err),
		}
	}

	p.logger.Infow("Engine check PASSED",
		"source", src.String(),
		"destination", dst.String(),
	)

	if src.Engine != dst.Engine {
		p.logger.Warnf("Engines differ (%s -> %s); verify data-structure compatibility", src.Engine, dst.Engine)
	}

	return nil
}

// CheckNotifications verifies keyspace notifications are enabled on the
// source. Live migration tooling subscribes to key events to replicate
// writes that land during the bulk copy.
func (p *PreflightChecker) CheckNotifications(ctx context.Context) error {
	p.logger.Debug("Checking source keyspace notifications...")

	flags, err := NotificationConfig(ctx, p.manager.Source)
	if err != nil {
		return &PreflightError{
			Check:   "NOTIFICATION_CHECK",
			Message: fmt.Sprintf("cannot read notify-keyspace-events: %v", err),
		}
	}

	if flags == "" {
		return &PreflightError{
			Check:   "NOTIFICATION_CHECK",
			Message: "keyspace notifications are disabled on the source. Enable with: redcompare notifications --enable",
		}
	}

	p.logger.Debugf("Notification check PASSED (notify-keyspace-events=%s)", flags)
	return nil
}

// CheckKeyCounts records the key-count baseline on both sides. A non-empty
// destination is a warning: the migration would merge into existing data.
func (p *PreflightChecker) CheckKeyCounts(ctx context.Context) error {
	p.logger.Debug("Checking key-count baseline...")

	srcKeys, err := p.manager.Source.DBSize(ctx).Result()
	if err != nil {
		return &PreflightError{
			Check:   "KEY_COUNT_CHECK",
			Message: fmt.Sprintf("cannot read source key count: %v", err),
		}
	}

	dstKeys, err := p.manager.Destination.DBSize(ctx).Result()
	if err != nil {
		return &PreflightError{
			Check:   "KEY_COUNT_CHECK",
			Message: fmt.Sprintf("cannot read destination key count: %v", err),
		}
	}

	p.logger.Infow("Key-count baseline",
		"source_keys", srcKeys,
		"destination_keys", dstKeys,
	)

	if dstKeys > 0 {
		p.logger.Warnf("Destination already holds %d keys; migrated data will merge into it", dstKeys)
	}

	return nil
}

// SetLogger sets a custom logger for the preflight checker.
func (p *PreflightChecker) SetLogger(log *logger.Logger) {
	p.logger = log
}
