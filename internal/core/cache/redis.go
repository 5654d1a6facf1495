// Package cache is a read-through redis cache.
package cache

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

type Options struct {
	Addr     string
	Password string
	DB       int
	Prefix   string // namespace for every key, joined with ":"
}

type Cache struct {
	RDB    *redis.Client
	prefix string
	sf     singleflight.Group
}

func New(o Options) *Cache {
	return &Cache{
		RDB:    redis.NewClient(&redis.Options{Addr: o.Addr, Password: o.Password, DB: o.DB}),
		prefix: o.Prefix,
	}
}

// Key returns the redis key used for k.
func (c *Cache) Key(k string) string {
	if c.prefix == "" {
		return k
	}
	return c.prefix + ":" + k
}

// GetOrLoad reads key, and on a miss runs load once per key across
// concurrent callers and stores the result for ttl. Redis errors count as a
// miss; load errors are returned.
func (c *Cache) GetOrLoad(ctx context.Context, key string, ttl time.Duration, load func(context.Context) ([]byte, error)) ([]byte, error) {
	k := c.Key(key)
	if b, err := c.RDB.Get(ctx, k).Bytes(); err == nil {
		return b, nil
	}
	v, err, _ := c.sf.Do(k, func() (any, error) {
		b, e := load(ctx)
		if e != nil {
			return nil, e
		}
		_ = c.RDB.Set(ctx, k, b, ttl).Err()
		return b, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

// Delete drops keys after the underlying rows change.
func (c *Cache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = c.Key(k)
	}
	return errors.Wrap(c.RDB.Del(ctx, full...).Err(), "cache delete")
}

func (c *Cache) Close() error { return c.RDB.Close() }
