package services

import (
	"context"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

// Cache keys for list payloads. Mutation paths delete these; list endpoints
// repopulate them on the next read.
const (
	CacheKeyProperties = "properties:all"
	CacheKeyRooms      = "rooms:all"
	CacheKeyUsers      = "users:all"
)

// GetFromRedis loads a cached value into target. A missing key is not an
// error; target is left untouched.
func GetFromRedis(ctx context.Context, rdb *redis.Client, key string, target interface{}) error {
	cachedData, err := rdb.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil
	}
	if err != nil {
		return err
	}

	if err := json.Unmarshal([]byte(cachedData), target); err != nil {
		return err
	}
	return nil
}

// SetToRedis stores a value under key with a TTL
func SetToRedis(ctx context.Context, rdb *redis.Client, key string, value interface{}, ttl time.Duration) error {
	dataJSON, err := json.Marshal(value)
	if err != nil {
		return err
	}

	if err := rdb.Set(ctx, key, dataJSON, ttl).Err(); err != nil {
		return err
	}
	return nil
}

// DeleteFromRedis drops cached keys
func DeleteFromRedis(ctx context.Context, rdb *redis.Client, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := rdb.Del(ctx, keys...).Err(); err != nil {
		return err
	}
	return nil
}
