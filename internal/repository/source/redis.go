package source

import (
	"context"
	"errors"
	"fmt"

	"github.com/kailas-cloud/dinedash/internal/db"
	"github.com/kailas-cloud/dinedash/internal/domain/restaurant"
)

// kvStore is the consumer interface for the redis source (ISP).
type kvStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Redis reads the data resource stored as one string value.
type Redis struct {
	store kvStore
	key   string
}

// NewRedis creates a redis source reading key.
func NewRedis(s kvStore, key string) *Redis {
	return &Redis{store: s, key: key}
}

// Name identifies the source in logs and metrics.
func (r *Redis) Name() string { return "redis" }

// Load reads and decodes the document at the configured key.
func (r *Redis) Load(ctx context.Context) ([]restaurant.Record, error) {
	data, err := r.store.Get(ctx, r.key)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return nil, &Error{Source: r.Name(), Err: fmt.Errorf("key %q: %w", r.key, err)}
		}
		return nil, &Error{Source: r.Name(), Err: err}
	}
	records, err := Decode(data)
	if err != nil {
		return nil, &Error{Source: r.Name(), Err: err}
	}
	return records, nil
}

// Seed writes records to the configured key, replacing any previous document.
func (r *Redis) Seed(ctx context.Context, records []restaurant.Record) error {
	data, err := Encode(records)
	if err != nil {
		return err
	}
	if err := r.store.Set(ctx, r.key, data); err != nil {
		return &Error{Source: r.Name(), Err: fmt.Errorf("seed key %q: %w", r.key, err)}
	}
	return nil
}

// jsonStore is the consumer interface for the RedisJSON source.
type jsonStore interface {
	JSONGet(ctx context.Context, key string, paths ...string) ([]byte, error)
	JSONSet(ctx context.Context, key, path string, data []byte) error
}

// RedisJSON reads the data resource stored as a RedisJSON document.
type RedisJSON struct {
	store jsonStore
	key   string
}

// NewRedisJSON creates a RedisJSON source reading key.
func NewRedisJSON(s jsonStore, key string) *RedisJSON {
	return &RedisJSON{store: s, key: key}
}

// Name identifies the source in logs and metrics.
func (r *RedisJSON) Name() string { return "redis-json" }

// Load reads the whole document at the root path and decodes it.
func (r *RedisJSON) Load(ctx context.Context) ([]restaurant.Record, error) {
	data, err := r.store.JSONGet(ctx, r.key)
	if err != nil {
		return nil, &Error{Source: r.Name(), Err: fmt.Errorf("key %q: %w", r.key, err)}
	}
	records, err := Decode(data)
	if err != nil {
		return nil, &Error{Source: r.Name(), Err: err}
	}
	return records, nil
}

// Seed writes records as the root document at the configured key.
func (r *RedisJSON) Seed(ctx context.Context, records []restaurant.Record) error {
	data, err := Encode(records)
	if err != nil {
		return err
	}
	if err := r.store.JSONSet(ctx, r.key, "$", data); err != nil {
		return &Error{Source: r.Name(), Err: fmt.Errorf("seed key %q: %w", r.key, err)}
	}
	return nil
}
