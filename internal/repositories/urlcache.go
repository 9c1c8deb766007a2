package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ayerecipes/recipes-api/internal/logger"
)

const downloadURLPrefix = "download_url:"

// DefaultDownloadURLTTL keeps cached entries well under the 24h validity of
// the presigned URLs they hold.
const DefaultDownloadURLTTL = time.Hour

// DownloadURLCache caches presigned download URLs in redis, keyed by the
// durable blob locator.
type DownloadURLCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewDownloadURLCache(rdb *redis.Client, ttl time.Duration) *DownloadURLCache {
	if ttl <= 0 {
		ttl = DefaultDownloadURLTTL
	}
	return &DownloadURLCache{rdb: rdb, ttl: ttl}
}

// Get returns the cached presigned URL for a locator, or "" on a miss.
func (c *DownloadURLCache) Get(ctx context.Context, locator string) (string, error) {
	url, err := c.rdb.Get(ctx, downloadURLPrefix+locator).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return url, nil
}

// Set stores a presigned URL for a locator with the cache TTL.
func (c *DownloadURLCache) Set(ctx context.Context, locator, url string) error {
	err := c.rdb.Set(ctx, downloadURLPrefix+locator, url, c.ttl).Err()
	if err != nil {
		logger.Log.Errorw("failed to cache download url", "locator", locator, "err", err)
	}
	return err
}
