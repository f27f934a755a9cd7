package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/strutynskyi/movie-catalog/internal/domain"
)

// RedisDirectorCache stores director details as JSON strings with a TTL.
type RedisDirectorCache struct {
	client redis.UniversalClient
	ttl    time.Duration
}

func NewRedisDirectorCache(client redis.UniversalClient, ttl time.Duration) *RedisDirectorCache {
	return &RedisDirectorCache{
		client: client,
		ttl:    ttl,
	}
}

func directorKey(id int) string {
	return fmt.Sprintf("director:%d", id)
}

func (c *RedisDirectorCache) Get(ctx context.Context, id int) (*domain.Director, error) {
	data, err := c.client.Get(ctx, directorKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrRecordNotFound
		}
		return nil, err
	}

	var director domain.Director

	err = json.Unmarshal(data, &director)
	if err != nil {
		return nil, fmt.Errorf("decode cached director %d: %w", id, err)
	}

	return &director, nil
}

func (c *RedisDirectorCache) Set(ctx context.Context, director *domain.Director) error {
	data, err := json.Marshal(director)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, directorKey(director.ID), data, c.ttl).Err()
}

func (c *RedisDirectorCache) Evict(ctx context.Context, id int) error {
	return c.client.Del(ctx, directorKey(id)).Err()
}

// NoopDirectorCache is used when no Redis server is configured. Every lookup
// is a miss.
type NoopDirectorCache struct{}

func (NoopDirectorCache) Get(context.Context, int) (*domain.Director, error) {
	return nil, domain.ErrRecordNotFound
}

func (NoopDirectorCache) Set(context.Context, *domain.Director) error {
	return nil
}

func (NoopDirectorCache) Evict(context.Context, int) error {
	return nil
}
