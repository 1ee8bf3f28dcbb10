package cache

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"time"

	"github.com/go-redis/redis/v8"

	"NewsVerifier/internal/domain"
	"NewsVerifier/internal/ports"
)

const headlinesKey = "newsverifier:headlines"

// RedisHeadlineCache stores the live feed in Redis between refreshes.
// Every failure is treated as a cache miss; the feed degrades to a
// direct API call when Redis is unreachable.
type RedisHeadlineCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

var _ ports.HeadlineCache = (*RedisHeadlineCache)(nil)

// NewRedisHeadlineCache connects a cache with the given TTL.
func NewRedisHeadlineCache(addr string, ttl time.Duration, logger *slog.Logger) *RedisHeadlineCache {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &RedisHeadlineCache{
		client: redis.NewClient(&redis.Options{Addr: addr}),
		ttl:    ttl,
		logger: logger,
	}
}

// Get returns the cached feed, or ok=false on miss or Redis error.
func (c *RedisHeadlineCache) Get(ctx context.Context) ([]domain.Headline, bool) {
	raw, err := c.client.Get(ctx, headlinesKey).Result()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		c.logger.Warn("headline cache read failed", "error", err)
		return nil, false
	}

	var headlines []domain.Headline
	if err := json.Unmarshal([]byte(raw), &headlines); err != nil {
		c.logger.Warn("headline cache payload corrupt", "error", err)
		return nil, false
	}
	return headlines, true
}

// Set stores the feed under the configured TTL.
func (c *RedisHeadlineCache) Set(ctx context.Context, headlines []domain.Headline) error {
	payload, err := json.Marshal(headlines)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, headlinesKey, payload, c.ttl).Err()
}
