package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// KeyPrefix namespaces response keys in a shared Redis.
const KeyPrefix = "nfl-data:resp:"

// Redis stores responses in Redis so every API instance shares them. Expiry
// is left to Redis.
type Redis struct {
	client *redis.Client
}

// NewRedis connects to redisURL and verifies the connection.
func NewRedis(ctx context.Context, redisURL string) (*Redis, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &Redis{client: client}, nil
}

// Close closes the Redis connection.
func (r *Redis) Close() error {
	return r.client.Close()
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, string, bool) {
	data, err := r.client.Get(ctx, KeyPrefix+key).Bytes()
	if err != nil {
		return nil, "", false
	}
	return data, ComputeETag(data), true
}

func (r *Redis) Set(ctx context.Context, key string, data []byte, ttl time.Duration) string {
	// A failed write only costs a miss on the next request.
	_ = r.client.Set(ctx, KeyPrefix+key, data, ttl).Err()
	return ComputeETag(data)
}

func (r *Redis) Evict(context.Context) int { return 0 }

func (r *Redis) keys(ctx context.Context) ([]string, error) {
	var keys []string
	iter := r.client.Scan(ctx, 0, KeyPrefix+"*", 500).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	return keys, iter.Err()
}

func (r *Redis) Clear(ctx context.Context) error {
	keys, err := r.keys(ctx)
	if err != nil {
		return fmt.Errorf("scan response keys: %w", err)
	}
	for len(keys) > 0 {
		n := min(len(keys), 500)
		if err := r.client.Del(ctx, keys[:n]...).Err(); err != nil && !errors.Is(err, redis.Nil) {
			return fmt.Errorf("delete response keys: %w", err)
		}
		keys = keys[n:]
	}
	return nil
}

func (r *Redis) Stats(ctx context.Context) map[string]any {
	stats := map[string]any{"backend": "redis", "enabled": true}
	keys, err := r.keys(ctx)
	if err != nil {
		stats["error"] = err.Error()
		return stats
	}
	stats["total_keys"] = len(keys)
	return stats
}

func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
