package compare

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dbsmedya/redcompare/internal/config"
	"github.com/dbsmedya/redcompare/internal/logger"
)

// Client is the keyspace handle the scanner needs: cursor iteration plus
// per-key introspection. *redis.Client satisfies it, as does any
// API-compatible substitute (Valkey, forks).
type Client interface {
	Scan(ctx context.Context, cursor uint64, match string, count int64) *redis.ScanCmd
	Type(ctx context.Context, key string) *redis.StatusCmd
	PTTL(ctx context.Context, key string) *redis.DurationCmd
}

// ScanError reports a scan pass that could not complete after exhausting
// per-call retries. Cursor holds the last cursor position for diagnostics;
// the pass is not resumed from it.
type ScanError struct {
	Keyspace string
	Cursor   uint64
	Attempts int
	Err      error
}

func (e *ScanError) Error() string {
	return fmt.Sprintf("scan of %s failed at cursor %d after %d attempts: %v",
		e.Keyspace, e.Cursor, e.Attempts, e.Err)
}

func (e *ScanError) Unwrap() error {
	return e.Err
}

// Scanner produces keyspace snapshots via cursor-based SCAN passes. It never
// issues a blocking full-keyspace command and retains only per-table counts,
// not the keys themselves.
type Scanner struct {
	client Client
	name   string
	cfg    config.ScanConfig
	log    *logger.Logger
}

// NewScanner creates a scanner for one keyspace. The client connection is
// owned exclusively by the scanner for the duration of each pass; SCAN
// cursors are session-scoped and must not be interleaved with other callers.
func NewScanner(client Client, name string, cfg config.ScanConfig, log *logger.Logger) *Scanner {
	if log == nil {
		log = logger.NewDefault()
	}
	return &Scanner{
		client: client,
		name:   name,
		cfg:    cfg,
		log:    log.WithKeyspace(name),
	}
}

// Name returns the keyspace label this scanner is bound to.
func (s *Scanner) Name() string {
	return s.name
}

// Scan runs one full cursor pass and materializes a snapshot of per-table
// key counts. Batches only ever add to commutative counters, so batch order
// does not matter; duplicate delivery across cursor batches is tolerated as
// approximate counting.
func (s *Scanner) Scan(ctx context.Context) (*Snapshot, error) {
	counts := make(map[string]int64)
	cursor := uint64(0)

	for {
		keys, next, err := s.scanPage(ctx, cursor)
		if err != nil {
			return nil, err
		}

		for _, key := range keys {
			counts[TableFor(key, s.cfg.Delimiter)]++
		}

		cursor = next
		if cursor == 0 {
			break
		}
	}

	snap := NewSnapshot(counts, time.Now())
	s.log.Debugw("Scan pass complete", "tables", snap.Len(), "keys", snap.Total())
	return snap, nil
}

// scanPage issues one SCAN call with bounded retries and exponential backoff.
// A timeout or transient network error consumes one attempt; exhausting all
// attempts aborts the pass with a ScanError.
func (s *Scanner) scanPage(ctx context.Context, cursor uint64) ([]string, uint64, error) {
	backoff := time.Duration(s.cfg.RetryBackoffMS) * time.Millisecond
	var lastErr error

	for attempt := 1; attempt <= s.cfg.MaxRetries; attempt++ {
		keys, next, err := s.client.Scan(ctx, cursor, s.cfg.Pattern, int64(s.cfg.Count)).Result()
		if err == nil {
			return keys, next, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			break
		}

		if attempt < s.cfg.MaxRetries {
			s.log.Warnw("Scan call failed, retrying",
				"cursor", cursor,
				"attempt", attempt,
				"backoff", backoff,
				"error", err,
			)
			select {
			case <-ctx.Done():
				return nil, 0, &ScanError{Keyspace: s.name, Cursor: cursor, Attempts: attempt, Err: ctx.Err()}
			case <-time.After(backoff):
				backoff *= 2
			}
		}
	}

	return nil, 0, &ScanError{Keyspace: s.name, Cursor: cursor, Attempts: s.cfg.MaxRetries, Err: lastErr}
}

// KeySample is a sampled key with its introspected type and TTL.
type KeySample struct {
	Key  string
	Type KeyType
	TTL  time.Duration
}

// InspectReport extends a snapshot with per-type counts and sampled key
// details for one-shot keyspace analysis.
type InspectReport struct {
	Snapshot     *Snapshot
	TypeCounts   map[KeyType]int64
	Unclassified int64
	Samples      []KeySample
}

// Inspect runs one cursor pass like Scan but additionally introspects every
// key's type and TTL. A key whose introspection fails is counted under
// TableUnclassified rather than aborting the pass. Up to sampleLimit keys
// are retained with full details.
func (s *Scanner) Inspect(ctx context.Context, sampleLimit int) (*InspectReport, error) {
	counts := make(map[string]int64)
	typeCounts := make(map[KeyType]int64)
	var unclassified int64
	var samples []KeySample
	cursor := uint64(0)

	for {
		keys, next, err := s.scanPage(ctx, cursor)
		if err != nil {
			return nil, err
		}

		for _, key := range keys {
			rec, err := s.classify(ctx, key)
			if err != nil {
				// One bad key must not invalidate the snapshot.
				s.log.Debugw("Key introspection failed, counting as unclassified", "key", key, "error", err)
				counts[TableUnclassified]++
				unclassified++
				continue
			}

			counts[rec.Table]++
			typeCounts[rec.Type]++

			if len(samples) < sampleLimit {
				samples = append(samples, KeySample{Key: rec.Key, Type: rec.Type, TTL: rec.TTL})
			}
		}

		cursor = next
		if cursor == 0 {
			break
		}
	}

	return &InspectReport{
		Snapshot:     NewSnapshot(counts, time.Now()),
		TypeCounts:   typeCounts,
		Unclassified: unclassified,
		Samples:      samples,
	}, nil
}

// classify builds the full KeyRecord for one key via TYPE and PTTL calls.
func (s *Scanner) classify(ctx context.Context, key string) (*KeyRecord, error) {
	typeName, err := s.client.Type(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("type lookup: %w", err)
	}

	ttl, err := s.client.PTTL(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("ttl lookup: %w", err)
	}

	return &KeyRecord{
		Key:   key,
		Table: TableFor(key, s.cfg.Delimiter),
		Type:  ParseKeyType(typeName),
		TTL:   ttl,
	}, nil
}
