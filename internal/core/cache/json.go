package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/cockroachdb/errors"
)

// GetOrLoadJSON is GetOrLoad for values stored as JSON. An entry that no
// longer decodes into T is dropped and loaded again.
func GetOrLoadJSON[T any](ctx context.Context, c *Cache, key string, ttl time.Duration, load func(context.Context) (T, error)) (T, error) {
	encode := func(ctx context.Context) ([]byte, error) {
		v, err := load(ctx)
		if err != nil {
			return nil, err
		}
		return json.Marshal(v)
	}

	var out T
	b, err := c.GetOrLoad(ctx, key, ttl, encode)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(b, &out); err == nil {
		return out, nil
	}

	if err := c.Delete(ctx, key); err != nil {
		return out, err
	}
	if b, err = c.GetOrLoad(ctx, key, ttl, encode); err != nil {
		return out, err
	}
	var fresh T
	if err := json.Unmarshal(b, &fresh); err != nil {
		return fresh, errors.Wrapf(err, "decode cached %s", key)
	}
	return fresh, nil
}
