package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"quote-api/internal/store"
)

// Key prefix shared by all cached listings; Invalidate scans on it.
const keyPrefix = "quote-api:"

type RedisCache struct {
	client *redis.Client
}

// NewRedisCache creates a Redis cache client and verifies connectivity.
func NewRedisCache(addr, password string) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	return &RedisCache{client: client}, nil
}

func (c *RedisCache) GetQuotes(ctx context.Context, key string) ([]store.Quote, error) {
	data, err := c.client.Get(ctx, keyPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, nil // Cache miss
	}
	if err != nil {
		return nil, err
	}

	var quotes []store.Quote
	if err := json.Unmarshal(data, &quotes); err != nil {
		return nil, err
	}
	return quotes, nil
}

func (c *RedisCache) SetQuotes(ctx context.Context, key string, quotes []store.Quote, ttl time.Duration) error {
	data, err := json.Marshal(quotes)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, keyPrefix+key, data, ttl).Err()
}

// Invalidate removes every cached listing. Listings share a single prefix
// so a SCAN plus pipelined deletes is enough.
func (c *RedisCache) Invalidate(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, keyPrefix+"*", 0).Iterator()

	pipe := c.client.Pipeline()
	count := 0
	for iter.Next(ctx) {
		pipe.Del(ctx, iter.Val())
		count++
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if count > 0 {
		_, err := pipe.Exec(ctx)
		return err
	}
	return nil
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}
