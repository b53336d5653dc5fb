package store

import (
	"context"
	"time"

	"github.com/ncobase/blogclient/cache"
	"github.com/ncobase/blogclient/structs"
	"github.com/redis/go-redis/v9"
)

const defaultRedisKey = "session"

// Redis stores tokens in redis so several processes can share a login.
// Entries expire with the refresh window.
type Redis struct {
	rc    *redis.Client
	cache *cache.Cache[structs.Tokens]
	key   string
	ttl   time.Duration
}

// NewRedis connects lazily to the configured server.
func NewRedis(c *RedisConfig) *Redis {
	rc := redis.NewClient(&redis.Options{
		Addr:     c.Addr,
		Username: c.Username,
		Password: c.Password,
		DB:       c.DB,
	})
	return NewRedisWithClient(rc, c.Key)
}

// NewRedisWithClient uses an existing client.
func NewRedisWithClient(rc *redis.Client, key string) *Redis {
	if key == "" {
		key = defaultRedisKey
	}
	return &Redis{
		rc:    rc,
		cache: cache.NewCache[structs.Tokens](rc, "blog"),
		key:   key,
		ttl:   30 * 24 * time.Hour,
	}
}

func (r *Redis) Load(ctx context.Context) (*structs.Tokens, error) {
	return r.cache.Get(ctx, r.key)
}

func (r *Redis) Save(ctx context.Context, tokens *structs.Tokens) error {
	if tokens == nil {
		return r.Clear(ctx)
	}
	return r.cache.Set(ctx, r.key, tokens, r.ttl)
}

func (r *Redis) Clear(ctx context.Context) error {
	return r.cache.Delete(ctx, r.key)
}

// Close releases the connection.
func (r *Redis) Close() error { return r.rc.Close() }
