package ports

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss is returned by StatsCachePort.Get when nothing is cached.
var ErrCacheMiss = errors.New("cache miss")

// StatsCachePort caches serialized statistics under a version number that is
// bumped on every mutation.
type StatsCachePort interface {
	Version(ctx context.Context) (int64, error)
	Bump(ctx context.Context) error
	Get(ctx context.Context, version int64, target any) error
	Set(ctx context.Context, version int64, value any, ttl time.Duration) error
}
