package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/aaravmahajanofficial/pawpair-storefront/internal/api/middleware"
)

// Cache stores JSON encoded values. A ttl <= 0 uses the configured default.
type Cache interface {
	Get(ctx context.Context, key string, value any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

const ProductKeyPrefix = "catalog:product"

func Key(prefix string, id string) string {
	return prefix + ":" + id
}

// Remember reads key through the cache. On a miss it calls load and stores
// the result. Cache failures are logged and never fail the read.
func Remember[T any](ctx context.Context, c Cache, key string, ttl time.Duration, load func(context.Context) (T, error)) (T, error) {

	logger := middleware.LoggerFromContext(ctx)

	var cached T

	found, err := c.Get(ctx, key, &cached)
	if err != nil {
		logger.Warn("Cache read failed", slog.String("key", key), slog.String("error", err.Error()))
	}

	if found {
		return cached, nil
	}

	value, err := load(ctx)
	if err != nil {
		return value, err
	}

	if err := c.Set(ctx, key, value, ttl); err != nil {
		logger.Warn("Cache write failed", slog.String("key", key), slog.String("error", err.Error()))
	}

	return value, nil
}
