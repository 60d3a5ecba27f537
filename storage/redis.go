package storage

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	goredis "github.com/redis/go-redis/v9"
)

// Redis is a key-value store backed by a Redis server.
type Redis struct {
	client goredis.UniversalClient
}

// NewRedis returns a key-value store that uses the given Redis client.
func NewRedis(client goredis.UniversalClient) *Redis {
	return &Redis{client: client}
}

// Get returns the value stored under the given key.
func (r *Redis) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := r.client.Get(ctx, key).Result()
	if err == goredis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.Wrap(err, fmt.Sprintf("unable to get `%s` from redis", key))
	}
	return value, true, nil
}

// Set stores a value under the given key with no expiration.
func (r *Redis) Set(ctx context.Context, key, value string) error {
	if err := r.client.Set(ctx, key, value, 0).Err(); err != nil {
		return errors.Wrap(err, fmt.Sprintf("unable to set `%s` in redis", key))
	}
	return nil
}

// Close closes the Redis client.
func (r *Redis) Close() error {
	return r.client.Close()
}
