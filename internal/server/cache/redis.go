// Package cache — подключение к Redis и всё, что на нём держится
// (сейчас только rate limit).
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/IvanChernomyrdin/go-places/internal/server/config"
)

// Cache оборачивает клиента Redis.
type Cache struct {
	client *redis.Client
}

// New подключается к Redis по cfg.URL и проверяет соединение.
func New(ctx context.Context, cfg config.RedisConfig) (*Cache, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	opts.PoolSize = 10
	if cfg.PoolSize > 0 {
		opts.PoolSize = cfg.PoolSize
	}
	opts.MinIdleConns = 2
	if cfg.MinIdleConns > 0 {
		opts.MinIdleConns = cfg.MinIdleConns
	}
	if cfg.DialTimeout > 0 {
		opts.DialTimeout = cfg.DialTimeout
	}
	opts.PoolTimeout = 4 * time.Second
	opts.ConnMaxIdleTime = 5 * time.Minute

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return &Cache{client: client}, nil
}

// NewFromClient — для тестов и случаев, когда клиент уже создан.
func NewFromClient(client *redis.Client) *Cache {
	return &Cache{client: client}
}

// Ping проверяет доступность Redis (используется в /health).
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close закрывает пул соединений.
func (c *Cache) Close() error {
	return c.client.Close()
}
