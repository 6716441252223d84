package config

import (
	"context"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
)

var (
	redisClient *redis.Client
	redisMu     sync.Mutex
)

// ConnectRedis returns the shared client. It returns nil, nil when REDIS_URL is not set,
// in which case callers fall back to in-process stores.
func ConnectRedis(ctx context.Context, env Env) (*redis.Client, error) {
	redisMu.Lock()
	defer redisMu.Unlock()

	if redisClient != nil {
		return redisClient, nil
	}
	if env.RedisURL == "" {
		return nil, nil
	}

	opt, err := redis.ParseURL(env.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	redisClient = client
	return redisClient, nil
}

func CloseRedis() {
	redisMu.Lock()
	defer redisMu.Unlock()

	if redisClient != nil {
		_ = redisClient.Close()
		redisClient = nil
	}
}
