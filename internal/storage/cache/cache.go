// Package cache keeps serialized page documents close to the handlers.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"nonprofit_cms/internal/storage"

	gocache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

type DocumentCache interface {
	// Get returns storage.ErrCacheMiss when page is not cached.
	Get(ctx context.Context, page string) ([]byte, error)
	Set(ctx context.Context, page string, raw []byte) error
	Delete(ctx context.Context, page string) error
}

func documentKey(page string) string {
	return "content:page:" + page
}

type RedisCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewRedisCache(client redis.Cmdable, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func (c *RedisCache) Get(ctx context.Context, page string) ([]byte, error) {
	const op = "cache.RedisCache.Get"

	val, err := c.client.Get(ctx, documentKey(page)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, storage.ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return val, nil
}

func (c *RedisCache) Set(ctx context.Context, page string, raw []byte) error {
	const op = "cache.RedisCache.Set"

	if err := c.client.Set(ctx, documentKey(page), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (c *RedisCache) Delete(ctx context.Context, page string) error {
	const op = "cache.RedisCache.Delete"

	if err := c.client.Del(ctx, documentKey(page)).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// MemoryCache is the in-process driver for single-instance deployments.
type MemoryCache struct {
	c *gocache.Cache
}

func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{c: gocache.New(ttl, 2*ttl)}
}

func (m *MemoryCache) Get(_ context.Context, page string) ([]byte, error) {
	v, ok := m.c.Get(documentKey(page))
	if !ok {
		return nil, storage.ErrCacheMiss
	}

	raw, ok := v.([]byte)
	if !ok {
		return nil, storage.ErrCacheMiss
	}

	return append([]byte(nil), raw...), nil
}

func (m *MemoryCache) Set(_ context.Context, page string, raw []byte) error {
	m.c.SetDefault(documentKey(page), append([]byte(nil), raw...))
	return nil
}

func (m *MemoryCache) Delete(_ context.Context, page string) error {
	m.c.Delete(documentKey(page))
	return nil
}

// NopCache never stores anything.
type NopCache struct{}

func (NopCache) Get(context.Context, string) ([]byte, error) { return nil, storage.ErrCacheMiss }
func (NopCache) Set(context.Context, string, []byte) error   { return nil }
func (NopCache) Delete(context.Context, string) error        { return nil }
