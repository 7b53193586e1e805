package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"catalog/internal/models"
)

// snapshotKey is the single cache key holding the full product listing.
const snapshotKey = "products:all"

// RedisConfig holds the configuration for the Redis client.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	CacheTTL time.Duration
}

// RedisSnapshotCache is a SnapshotCache backed by Redis.
type RedisSnapshotCache struct {
	redisClient *redis.Client
	logger      zerolog.Logger
	ttl         time.Duration
}

// NewRedisSnapshotCache creates a RedisSnapshotCache. Connectivity is probed
// with a ping but a failure is only logged: the cache is an optimization, and
// an unreachable backend must never prevent startup. Per-request errors are
// reported as Unavailable lookups instead.
func NewRedisSnapshotCache(ctx context.Context, cfg *RedisConfig, logger zerolog.Logger) *RedisSnapshotCache {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	componentLogger := logger.With().Str("component", "RedisSnapshotCache").Logger()
	if err := rdb.Ping(ctx).Err(); err != nil {
		componentLogger.Warn().Err(err).Str("redis_address", cfg.Addr).Msg("Redis unreachable at startup; continuing without cache.")
	} else {
		componentLogger.Info().Str("redis_address", cfg.Addr).Msg("Successfully connected to Redis.")
	}

	return &RedisSnapshotCache{
		redisClient: rdb,
		logger:      componentLogger,
		ttl:         cfg.CacheTTL,
	}
}

// Fetch reads the snapshot. A redis.Nil error is a normal miss; any other
// error, including a corrupt payload, is reported as Unavailable.
func (c *RedisSnapshotCache) Fetch(ctx context.Context) Lookup {
	cachedData, err := c.redisClient.Get(ctx, snapshotKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			c.logger.Debug().Str("key", snapshotKey).Msg("Cache miss.")
			return Miss()
		}
		c.logger.Error().Err(err).Str("key", snapshotKey).Msg("Unexpected Redis error during fetch.")
		return Unavailable(err)
	}

	var products []models.Product
	if err := json.Unmarshal([]byte(cachedData), &products); err != nil {
		c.logger.Error().Err(err).Str("key", snapshotKey).Msg("Failed to unmarshal cached snapshot.")
		return Unavailable(fmt.Errorf("failed to unmarshal snapshot: %w", err))
	}

	c.logger.Debug().Str("key", snapshotKey).Msg("Cache hit.")
	return Hit(products)
}

// Store overwrites the snapshot with the configured TTL.
func (c *RedisSnapshotCache) Store(ctx context.Context, products []models.Product) error {
	jsonData, err := json.Marshal(products)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	if err := c.redisClient.Set(ctx, snapshotKey, jsonData, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set snapshot in redis: %w", err)
	}

	c.logger.Debug().Str("key", snapshotKey).Int("products", len(products)).Msg("Stored snapshot in cache.")
	return nil
}

// Delete removes the snapshot key.
func (c *RedisSnapshotCache) Delete(ctx context.Context) error {
	if err := c.redisClient.Del(ctx, snapshotKey).Err(); err != nil {
		return fmt.Errorf("failed to delete snapshot from redis: %w", err)
	}
	return nil
}

// Close closes the Redis client connection.
func (c *RedisSnapshotCache) Close() error {
	if c.redisClient != nil {
		c.logger.Info().Msg("Closing Redis client connection...")
		return c.redisClient.Close()
	}
	return nil
}
