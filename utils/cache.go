// File: utils/cache.go
package utils

import (
	"context"
	"time"

	"turnopro-backend/config"

	"github.com/go-redis/redis/v8"
)

// CacheClient is the generic cache client. Nil when no Redis is configured;
// callers skip caching in that case.
var CacheClient *redis.Client

// InitCache initializes the Redis cache client when REDIS_ADDR is set.
func InitCache() {
	if config.AppConfig.RedisAddr == "" {
		GetLogger().Info("redis not configured, availability cache disabled")
		return
	}
	CacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisCacheDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := CacheClient.Ping(ctx).Result(); err != nil {
		GetLogger().Warn("redis unreachable, availability cache disabled")
		CacheClient = nil
	}
}

// GetCacheClient returns the cache client, nil when caching is disabled.
func GetCacheClient() *redis.Client {
	return CacheClient
}
