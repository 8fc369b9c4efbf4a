package keyspace

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// FlushResult reports key counts around a flush operation.
type FlushResult struct {
	KeysBefore int64
	KeysAfter  int64
	All        bool // FLUSHALL instead of FLUSHDB
}

// Flush removes all keys from the selected logical database, or from every
// database when all is true. Key counts before and after are returned so the
// caller can report what was removed.
func Flush(ctx context.Context, client *redis.Client, all bool) (*FlushResult, error) {
	before, err := client.DBSize(ctx).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to count keys before flush: %w", err)
	}

	if all {
		err = client.FlushAll(ctx).Err()
	} else {
		err = client.FlushDB(ctx).Err()
	}
	if err != nil {
		return nil, fmt.Errorf("flush failed: %w", err)
	}

	after, err := client.DBSize(ctx).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to count keys after flush: %w", err)
	}

	return &FlushResult{
		KeysBefore: before,
		KeysAfter:  after,
		All:        all,
	}, nil
}
