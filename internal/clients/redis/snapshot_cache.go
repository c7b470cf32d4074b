package redis

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/edutest/edutest-backend/internal/logger"
)

const snapshotKey = "taxonomy:snapshot"

// SnapshotCache keeps the serialized taxonomy snapshot in redis so restarts
// and sibling instances can warm-start without hitting postgres.
type SnapshotCache struct {
	log *logger.Logger
	rdb *goredis.Client
	ttl time.Duration
}

func NewSnapshotCache(log *logger.Logger) (*SnapshotCache, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}

	ttl := 10 * time.Minute
	if v := strings.TrimSpace(os.Getenv("TAXONOMY_CACHE_TTL_SECONDS")); v != "" {
		var sec int
		if _, err := fmt.Sscanf(v, "%d", &sec); err == nil && sec > 0 {
			ttl = time.Duration(sec) * time.Second
		}
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &SnapshotCache{
		log: log.With("service", "RedisSnapshotCache"),
		rdb: rdb,
		ttl: ttl,
	}, nil
}

func (c *SnapshotCache) Get(ctx context.Context) ([]byte, error) {
	raw, err := c.rdb.Get(ctx, snapshotKey).Bytes()
	if err == goredis.Nil {
		return nil, nil
	}
	return raw, err
}

func (c *SnapshotCache) Set(ctx context.Context, raw []byte) error {
	return c.rdb.Set(ctx, snapshotKey, raw, c.ttl).Err()
}

func (c *SnapshotCache) Del(ctx context.Context) error {
	return c.rdb.Del(ctx, snapshotKey).Err()
}

func (c *SnapshotCache) Close() error {
	return c.rdb.Close()
}
