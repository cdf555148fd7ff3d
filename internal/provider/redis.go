package provider

import (
	"context"
	stderrors "errors"

	"github.com/jmgilman/go/errors"
	"github.com/redis/go-redis/v9"

	"github.com/Alex-Alec/Project2-LRUCache/internal/cache"
)

// Redis resolves string keys with GET prefix+key.
type Redis struct {
	client redis.UniversalClient
	prefix string
}

// NewRedis returns a provider reading from client. The prefix is prepended
// to every key; it may be empty.
func NewRedis(client redis.UniversalClient, prefix string) *Redis {
	return &Redis{client: client, prefix: prefix}
}

// Get implements cache.Provider. A missing key maps to cache.NotFound and
// any transport failure to errors.CodeNetwork, which is retryable.
func (r *Redis) Get(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, r.prefix+key).Result()
	if stderrors.Is(err, redis.Nil) {
		return "", cache.NotFound(key)
	}
	if err != nil {
		return "", errors.Wrapf(err, errors.CodeNetwork, "redis get %q", key)
	}
	return val, nil
}

// Put stores a value; used to seed the backing store.
func (r *Redis) Put(ctx context.Context, key, value string) error {
	if err := r.client.Set(ctx, r.prefix+key, value, 0).Err(); err != nil {
		return errors.Wrapf(err, errors.CodeNetwork, "redis set %q", key)
	}
	return nil
}

// Ping checks connectivity.
func (r *Redis) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return errors.Wrap(err, errors.CodeNetwork, "redis ping")
	}
	return nil
}
