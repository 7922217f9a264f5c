package redis

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"task-tracker-api/domain/ports"
)

const (
	statsVersionKey = "tasks:stats:version"
	statsDataPrefix = "tasks:stats:v"
)

// StatsCache stores statistics snapshots keyed by a version counter.
// Bumping the counter orphans older snapshots, which then expire by TTL.
type StatsCache struct {
	client *Client
}

func NewStatsCache(client *Client) *StatsCache {
	return &StatsCache{client: client}
}

func (s *StatsCache) Version(ctx context.Context) (int64, error) {
	return s.client.GetInt64(ctx, statsVersionKey)
}

func (s *StatsCache) Bump(ctx context.Context) error {
	_, err := s.client.Incr(ctx, statsVersionKey)
	return err
}

func (s *StatsCache) Get(ctx context.Context, version int64, target any) error {
	err := s.client.GetJSON(ctx, dataKey(version), target)
	if errors.Is(err, redis.Nil) {
		return ports.ErrCacheMiss
	}
	return err
}

func (s *StatsCache) Set(ctx context.Context, version int64, value any, ttl time.Duration) error {
	return s.client.SetJSON(ctx, dataKey(version), value, ttl)
}

func dataKey(version int64) string {
	return statsDataPrefix + strconv.FormatInt(version, 10)
}

var _ ports.StatsCachePort = (*StatsCache)(nil)
