// Copyright (c) 2026 Paras Comic. All rights reserved.
// Author: Troon Technologies LLC

package storage

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// RedisCache implements [Cache] on a go-redis client.
type RedisCache struct {
	client redis.Cmdable
}

// NewRedisCache constructs a [RedisCache].
func NewRedisCache(client redis.Cmdable) *RedisCache {
	return &RedisCache{client: client}
}

// Get returns the cached value; found is false on a miss.
func (cache *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := cache.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrapf(err, "storage: redis get %s", key)
	}
	return value, true, nil
}

// Set stores value under key for ttl.
func (cache *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := cache.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return errors.Wrapf(err, "storage: redis set %s", key)
	}
	return nil
}
