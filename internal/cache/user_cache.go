package cache

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// tombstone marks a deleted user. Reads treat it as a miss and writes never
// replace it, so a slow read-through cannot bring a deleted user back.
var tombstone = []byte("\x00deleted")

const defaultTombstoneTTL = 10 * time.Minute

// UserCache stores serialized users by id. A miss is (nil, nil).
type UserCache interface {
	GetByID(ctx context.Context, id int64) ([]byte, error)
	// Set stores the result of a write. It is a no-op on a deleted user.
	Set(ctx context.Context, id int64, data []byte, ttl time.Duration) error
	// Fill stores the result of a read only when the key is empty, so it
	// loses against any concurrent Set or Invalidate. Reports whether it stored.
	Fill(ctx context.Context, id int64, data []byte, ttl time.Duration) (bool, error)
	// Invalidate marks the user as deleted.
	Invalidate(ctx context.Context, id int64) error
}

// setUnlessDeleted overwrites KEYS[1] unless it holds the tombstone.
var setUnlessDeleted = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[2] then
	return 0
end
redis.call("SET", KEYS[1], ARGV[1], "PX", ARGV[3])
return 1
`)

type userCache struct {
	client       *RedisClient
	prefix       string
	tombstoneTTL time.Duration
}

func NewUserCache(redisClient *RedisClient, tombstoneTTL time.Duration) UserCache {
	if tombstoneTTL <= 0 {
		tombstoneTTL = defaultTombstoneTTL
	}
	return &userCache{
		client:       redisClient,
		prefix:       "user:",
		tombstoneTTL: tombstoneTTL,
	}
}

func (c *userCache) key(id int64) string {
	return fmt.Sprintf("%s%d", c.prefix, id)
}

func (c *userCache) GetByID(ctx context.Context, id int64) ([]byte, error) {
	data, err := c.client.client.Get(ctx, c.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil // cache miss
		}
		return nil, err
	}
	if bytes.Equal(data, tombstone) {
		return nil, nil
	}
	return data, nil
}

func (c *userCache) Set(ctx context.Context, id int64, data []byte, ttl time.Duration) error {
	return setUnlessDeleted.Run(ctx, c.client.client,
		[]string{c.key(id)},
		data, tombstone, ttl.Milliseconds(),
	).Err()
}

func (c *userCache) Fill(ctx context.Context, id int64, data []byte, ttl time.Duration) (bool, error) {
	return c.client.client.SetNX(ctx, c.key(id), data, ttl).Result()
}

func (c *userCache) Invalidate(ctx context.Context, id int64) error {
	return c.client.client.Set(ctx, c.key(id), tombstone, c.tombstoneTTL).Err()
}

// NoopUserCache always misses. Used when caching is disabled.
type NoopUserCache struct{}

func (NoopUserCache) GetByID(context.Context, int64) ([]byte, error)           { return nil, nil }
func (NoopUserCache) Set(context.Context, int64, []byte, time.Duration) error { return nil }
func (NoopUserCache) Fill(context.Context, int64, []byte, time.Duration) (bool, error) {
	return false, nil
}
func (NoopUserCache) Invalidate(context.Context, int64) error { return nil }
