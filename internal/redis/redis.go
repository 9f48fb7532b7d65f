package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"socialmall/internal/config"
	"socialmall/pkg/log"
)

var client *redis.Client

// Init initializes the Redis client. Redis backs the auth token
// blacklist and refresh-token store; it holds no order or ledger state.
func Init(cfg *config.Config) error {
	client = redis.NewClient(&redis.Options{
		Addr:         cfg.Redis.GetAddr(),
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to connect redis: %w", err)
	}

	log.Info("Redis connected successfully")
	return nil
}

// GetClient get redis client
func GetClient() *redis.Client {
	return client
}

// Close close redis connection
func Close() error {
	if client == nil {
		return nil
	}
	return client.Close()
}
